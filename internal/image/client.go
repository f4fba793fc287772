package image

import "context"

// Client generates an image for a text prompt and returns its URL.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
