// Package speech holds the audio collaborators of the quiz engines: a
// text-to-speech speaker and a spoken-transcript recognizer. Both are plain
// interfaces so the listening quiz degrades to a disabled control when no
// implementation is configured.
package speech

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable means no speech capability is configured in this
	// environment. Callers disable the feature instead of failing.
	ErrUnavailable = errors.New("speech: capability unavailable")
	// ErrNoSpeech means the recognizer ran but detected no usable speech
	ErrNoSpeech = errors.New("speech: no speech detected")
)

// Language tags used by the two fixed languages of the application
const (
	LangSpanish = "es-ES"
	LangEnglish = "en-US"
)

// Speaker synthesizes speech for a text in the given language
type Speaker interface {
	Speak(ctx context.Context, text, languageTag string) ([]byte, error)
}

// Recognizer turns recorded speech into a transcript
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte, languageTag string) (string, error)
}

// Disabled is the implementation used when no speech backend is configured
type Disabled struct{}

// Speak implements Speaker
func (Disabled) Speak(context.Context, string, string) ([]byte, error) {
	return nil, ErrUnavailable
}

// Recognize implements Recognizer
func (Disabled) Recognize(context.Context, []byte, string) (string, error) {
	return "", ErrUnavailable
}
