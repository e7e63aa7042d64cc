package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNoSource          = errors.New("no source loaded")
	ErrSourceDrained     = errors.New("source played to completion")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrOutputUnavailable = errors.New("audio output unavailable")
	ErrEmptyQueue        = errors.New("queue is empty")
	ErrLibraryNotFound   = errors.New("library path not found")
	ErrNoAudioFiles      = errors.New("no audio files found")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// CadenceError wraps an error with a user-friendly suggestion.
type CadenceError struct {
	Err        error
	Suggestion string
}

func (e *CadenceError) Error() string {
	return e.Err.Error()
}

func (e *CadenceError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &CadenceError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var cErr *CadenceError
	if errors.As(err, &cErr) && cErr.Suggestion != "" {
		return cErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrUnsupportedFormat) || strings.Contains(errStr, "unsupported") {
		return "Supported formats are mp3, flac, ogg and wav"
	}

	if errors.Is(err, ErrOutputUnavailable) || strings.Contains(errStr, "output") ||
		strings.Contains(errStr, "device busy") {
		return "Another application may be holding the audio device. Close it and try again"
	}

	if errors.Is(err, ErrEmptyQueue) || errors.Is(err, ErrNoAudioFiles) {
		return "Run 'cadence scan' to see what your library contains, then 'cadence play <path>'"
	}

	if errors.Is(err, ErrLibraryNotFound) || strings.Contains(errStr, "no such file") {
		return "Check library.paths in your config, or pass an existing path"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Run 'cadence config init' to create a configuration"
	}

	if strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
