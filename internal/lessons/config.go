package lessons

import "time"

// Config holds lesson generation settings.
type Config struct {
	StandardMaxTokens int
	GlobalMaxTokens   int
	UploadMaxTokens   int
	Temperature       float64

	// Timeout bounds a single provider call when the provider is not
	// already wrapped with a timeout.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		StandardMaxTokens: 4096,
		GlobalMaxTokens:   8192,
		UploadMaxTokens:   512,
		Temperature:       0.7,
		Timeout:           60 * time.Second,
	}
}

func (c Config) maxTokens(v Variant) int {
	if v.IsGlobal() {
		return c.GlobalMaxTokens
	}
	return c.StandardMaxTokens
}
