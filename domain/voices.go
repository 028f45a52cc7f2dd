package domain

type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const DefaultVoiceID = "pNInz6obpgDQGcFmaJgB"

var voiceCatalog = []Voice{
	{ID: "pNInz6obpgDQGcFmaJgB", Name: "Adam - Warm Male"},
	{ID: "EXAVITQu4vr4xnSDxMaL", Name: "Bella - Gentle Female"},
	{ID: "21m00Tcm4TlvDq8ikWAM", Name: "Rachel - Storyteller"},
	{ID: "ErXwobaYiN019PkySvjV", Name: "Antoni - Deep Male"},
	{ID: "AZnzlk1XvdvUeBnXmlld", Name: "Domi - Cheerful Female"},
}

func Voices() []Voice {
	out := make([]Voice, len(voiceCatalog))
	copy(out, voiceCatalog)
	return out
}

func LookupVoice(id string) (Voice, bool) {
	for _, v := range voiceCatalog {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}
