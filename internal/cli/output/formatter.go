// Package output provides output formatting utilities for the warrant CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format string

const (
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatEnv prints shell export statements for the issued tokens.
	FormatEnv Format = "env"
)

// Tokens is the printable view of an authentication result.
type Tokens struct {
	AccessToken  string `json:"access_token" yaml:"access_token"`
	IDToken      string `json:"id_token" yaml:"id_token"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	TokenType    string `json:"token_type" yaml:"token_type"`
	ExpiresIn    int    `json:"expires_in" yaml:"expires_in"`
}

// WriteTokens formats t and writes it to w.
func WriteTokens(w io.Writer, t Tokens, format Format) error {
	var (
		s   string
		err error
	)

	switch format {
	case FormatYAML:
		s, err = formatYAML(t)
	case FormatJSON:
		s, err = formatJSON(t)
	case FormatEnv:
		s = formatEnv(t)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, s)
	return err
}

func formatYAML(data any) (string, error) {
	bytes, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to format as YAML: %w", err)
	}
	return string(bytes), nil
}

func formatJSON(data any) (string, error) {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format as JSON: %w", err)
	}
	return string(bytes) + "\n", nil
}

func formatEnv(t Tokens) string {
	s := fmt.Sprintf("export WARRANT_ACCESS_TOKEN=%q\nexport WARRANT_ID_TOKEN=%q\n", t.AccessToken, t.IDToken)
	if t.RefreshToken != "" {
		s += fmt.Sprintf("export WARRANT_REFRESH_TOKEN=%q\n", t.RefreshToken)
	}
	return s
}

// ParseFormat parses a format string into a Format value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "env":
		return FormatEnv, nil
	default:
		return "", fmt.Errorf("invalid output format '%s': must be 'yaml', 'json' or 'env'", s)
	}
}
