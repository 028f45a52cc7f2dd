package config

import (
	"fmt"
	"strconv"
)

type StoryConfig struct {
	MinWords       int
	MaxWords       int
	MaxPromptRunes int
	MaxNameRunes   int
	SceneCount     int
	WordsPerMinute int
}

func GetStoryConfig() (*StoryConfig, error) {
	minWords, err := strconv.Atoi(envOr("STORY_MIN_WORDS", "400"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse STORY_MIN_WORDS: %w", err)
	}

	maxWords, err := strconv.Atoi(envOr("STORY_MAX_WORDS", "600"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse STORY_MAX_WORDS: %w", err)
	}

	if minWords <= 0 || maxWords < minWords {
		return nil, fmt.Errorf("invalid story word band %d-%d", minWords, maxWords)
	}

	maxPromptRunes, err := strconv.Atoi(envOr("STORY_MAX_PROMPT_RUNES", "500"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse STORY_MAX_PROMPT_RUNES: %w", err)
	}

	maxNameRunes, err := strconv.Atoi(envOr("STORY_MAX_NAME_RUNES", "50"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse STORY_MAX_NAME_RUNES: %w", err)
	}

	sceneCount, err := strconv.Atoi(envOr("STORY_SCENE_COUNT", "3"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse STORY_SCENE_COUNT: %w", err)
	}

	wordsPerMinute, err := strconv.Atoi(envOr("STORY_WORDS_PER_MINUTE", "150"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse STORY_WORDS_PER_MINUTE: %w", err)
	}

	return &StoryConfig{
		MinWords:       minWords,
		MaxWords:       maxWords,
		MaxPromptRunes: maxPromptRunes,
		MaxNameRunes:   maxNameRunes,
		SceneCount:     sceneCount,
		WordsPerMinute: wordsPerMinute,
	}, nil
}
