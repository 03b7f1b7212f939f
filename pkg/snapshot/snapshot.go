// Package snapshot reads and writes the versioned project file. The document
// shape is {"version":1,"graph":{...},"settings":{...}}; imports are
// validated strictly so a bad file never replaces good in-memory state.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"trialflow/pkg/model"
)

// Version is the only document version this build reads and writes.
const Version = 1

// ErrInvalidSnapshot marks any import rejection: wrong version, missing or
// non-object graph/settings, or a graph that fails validation.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Document is the on-disk shape.
type Document struct {
	Version  int            `json:"version"`
	Graph    *model.Graph   `json:"graph"`
	Settings model.Settings `json:"settings"`
}

// Encode renders the graph and settings as an indented snapshot document.
func Encode(g *model.Graph, s model.Settings) ([]byte, error) {
	doc := Document{Version: Version, Graph: g, Settings: s}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses and validates a snapshot document. The returned graph is
// freshly allocated; on any error the caller's state is untouched.
func Decode(data []byte) (*model.Graph, model.Settings, error) {
	var raw struct {
		Version  *int            `json:"version"`
		Graph    json.RawMessage `json:"graph"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, model.Settings{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if raw.Version == nil || *raw.Version != Version {
		return nil, model.Settings{}, fmt.Errorf("%w: version must be %d", ErrInvalidSnapshot, Version)
	}
	if !isJSONObject(raw.Graph) {
		return nil, model.Settings{}, fmt.Errorf("%w: graph must be an object", ErrInvalidSnapshot)
	}
	if !isJSONObject(raw.Settings) {
		return nil, model.Settings{}, fmt.Errorf("%w: settings must be an object", ErrInvalidSnapshot)
	}

	var g model.Graph
	if err := json.Unmarshal(raw.Graph, &g); err != nil {
		return nil, model.Settings{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	var s model.Settings
	if err := json.Unmarshal(raw.Settings, &s); err != nil {
		return nil, model.Settings{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	if err := g.Validate(); err != nil {
		return nil, model.Settings{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, model.Settings{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	return &g, s, nil
}

// isJSONObject reports whether raw holds a JSON object literal.
func isJSONObject(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return c == '{'
		}
	}
	return false
}

// Load reads and decodes a snapshot file.
func Load(path string) (*model.Graph, model.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.Settings{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return Decode(data)
}

// Save encodes the graph and settings and writes them to path.
func Save(path string, g *model.Graph, s model.Settings) error {
	data, err := Encode(g, s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}
