package renderer

import (
	"encoding/json"
	"io"

	"github.com/ChainSafe/mipsdec/analyzer"
)

// JSONRenderer renders issues as a JSON array.
type JSONRenderer struct {
	indent bool
}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

// NewIndentedJSONRenderer renders issues as indented JSON.
func NewIndentedJSONRenderer() Renderer {
	return &JSONRenderer{indent: true}
}

func (r *JSONRenderer) Render(issues []*analyzer.Issue, output io.Writer) error {
	if issues == nil {
		issues = []*analyzer.Issue{}
	}
	enc := json.NewEncoder(output)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(issues)
}

func (r *JSONRenderer) Format() string {
	if r.indent {
		return "json-pretty"
	}
	return "json"
}
