package config

import (
	"fmt"
	"os"
)

// The media archive is optional: a nil config disables it.
type S3Config struct {
	BucketName string
	Region     string
}

func GetS3Config() (*S3Config, error) {
	bucketName := os.Getenv("BUCKET_NAME")
	if bucketName == "" {
		return nil, nil
	}

	region := os.Getenv("REGION")
	if region == "" {
		return nil, fmt.Errorf("REGION must be set when BUCKET_NAME is set")
	}

	return &S3Config{
		BucketName: bucketName,
		Region:     region,
	}, nil
}
