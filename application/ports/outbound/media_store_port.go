package outbound

import "context"

type StoreMediaParams struct {
	StoryID     string
	Name        string
	ContentType string
	Content     []byte
}

type MediaStorePort interface {
	Save(ctx context.Context, params StoreMediaParams) (string, error)
}
