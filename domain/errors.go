package domain

import "fmt"

type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("story generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type NarrationError struct {
	Err error
}

func (e *NarrationError) Error() string {
	return fmt.Sprintf("narration failed: %v", e.Err)
}

func (e *NarrationError) Unwrap() error {
	return e.Err
}

type IllustrationError struct {
	Err error
}

func (e *IllustrationError) Error() string {
	return fmt.Sprintf("illustration failed: %v", e.Err)
}

func (e *IllustrationError) Unwrap() error {
	return e.Err
}
