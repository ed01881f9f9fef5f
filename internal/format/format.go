package format

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Formatter abstracts output formatting.
type Formatter interface {
	Write(w io.Writer, payload any) error
}

// JSONFormatter writes JSON output.
type JSONFormatter struct{}

// Write writes JSON payload to a writer.
func (f JSONFormatter) Write(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(payload)
}

// YAMLFormatter writes YAML output with two-space indentation.
type YAMLFormatter struct{}

func (f YAMLFormatter) Write(w io.Writer, payload any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	return enc.Close()
}

// Select returns the structured formatter requested by the output flags, or
// nil when plain text output should be used. JSON wins when both are set.
func Select(jsonOutput, yamlOutput bool) Formatter {
	switch {
	case jsonOutput:
		return JSONFormatter{}
	case yamlOutput:
		return YAMLFormatter{}
	default:
		return nil
	}
}
