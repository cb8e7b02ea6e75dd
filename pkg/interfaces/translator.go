package interfaces

import "context"

// Translator translates text from the configured source to target language
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}
