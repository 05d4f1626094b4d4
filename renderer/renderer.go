// Package renderer provides a way to render issues and decoded programs in different formats.
package renderer

import (
	"fmt"
	"io"

	"github.com/ChainSafe/mipsdec/analyzer"
	"github.com/ChainSafe/mipsdec/profile"
)

// Renderer defines the interface for rendering analysis results in different formats.
type Renderer interface {
	// Render takes a list of issues and outputs them in the desired format to the provided writer.
	Render(issues []*analyzer.Issue, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}

// New returns the issue renderer for format.
func New(format string, prof *profile.VMProfile) (Renderer, error) {
	switch format {
	case "", "text":
		return NewTextRenderer(prof), nil
	case "json":
		return NewJSONRenderer(), nil
	case "json-pretty":
		return NewIndentedJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}
