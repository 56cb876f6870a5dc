// Package config loads YAML configuration trees and feeds them, as raw
// documents, into the model layer. It owns no validation logic itself: the
// structure it yields is handed to entity schemas through package document.
//
// Environment variables referenced as ${NAME} (or $NAME) inside loaded
// trees are substituted recursively before the tree is returned; this is
// the permissive configuration-level expansion, distinct from the strict
// {NAME} path expansion in package validate.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/depictio/depictio-models/document"
	"github.com/depictio/depictio-models/schema"
)

// Load reads a YAML file, substitutes environment variables, and returns
// the resulting document tree. If logger is nil, slog.Default() is used.
func Load(path string, logger *slog.Logger) (document.Document, error) {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	logger.Debug("loaded configuration", "path", path, "keys", len(doc))
	return doc, nil
}

// Parse decodes YAML bytes into a document tree with environment variables
// substituted.
func Parse(data []byte) (document.Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return Substitute(document.Document(raw)), nil
}

// Substitute recursively replaces ${NAME} and $NAME references in every
// string value of the tree from the process environment. Unset variables
// expand to the empty string; strict expansion for path fields happens
// later, in the field validators.
func Substitute(doc document.Document) document.Document {
	return substituteValue(doc).(document.Document)
}

func substituteValue(value any) any {
	switch v := value.(type) {
	case document.Document:
		out := make(document.Document, len(v))
		for key, item := range v {
			out[key] = substituteValue(item)
		}
		return out
	case map[string]any:
		out := make(document.Document, len(v))
		for key, item := range v {
			out[key] = substituteValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = substituteValue(item)
		}
		return out
	case string:
		return os.ExpandEnv(v)
	default:
		return value
	}
}

// Validate loads a configuration tree through an entity schema, returning
// the normalized field map. It is the single entry point CLI-side code uses
// to turn a YAML file into a validated record.
func Validate(doc document.Document, s *schema.Schema) (document.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("config: configuration must be a mapping")
	}
	return s.Validate(doc)
}
