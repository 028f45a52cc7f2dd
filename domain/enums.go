package domain

import "fmt"

type Theme string

const (
	ThemeNone       Theme = ""
	ThemeAdventure  Theme = "adventure"
	ThemeAnimals    Theme = "animals"
	ThemeMagic      Theme = "magic"
	ThemeSpace      Theme = "space"
	ThemeOcean      Theme = "ocean"
	ThemeForest     Theme = "forest"
	ThemeCastle     Theme = "castle"
	ThemeFriendship Theme = "friendship"
)

var themes = map[Theme]bool{
	ThemeNone:       true,
	ThemeAdventure:  true,
	ThemeAnimals:    true,
	ThemeMagic:      true,
	ThemeSpace:      true,
	ThemeOcean:      true,
	ThemeForest:     true,
	ThemeCastle:     true,
	ThemeFriendship: true,
}

func ParseTheme(raw string) (Theme, error) {
	theme := Theme(raw)
	if !themes[theme] {
		return ThemeNone, fmt.Errorf("unknown theme %q", raw)
	}
	return theme, nil
}

func Themes() []Theme {
	return []Theme{
		ThemeAdventure,
		ThemeAnimals,
		ThemeMagic,
		ThemeSpace,
		ThemeOcean,
		ThemeForest,
		ThemeCastle,
		ThemeFriendship,
	}
}

type ImageModel string

const (
	ImageModelDallE2 ImageModel = "dall-e-2"
	ImageModelDallE3 ImageModel = "dall-e-3"
)

func ParseImageModel(raw string, fallback ImageModel) (ImageModel, error) {
	if raw == "" {
		return fallback, nil
	}
	model := ImageModel(raw)
	if model != ImageModelDallE2 && model != ImageModelDallE3 {
		return "", fmt.Errorf("unknown image model %q", raw)
	}
	return model, nil
}
