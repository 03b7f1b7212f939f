// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// Entity prefixes keep ids self-describing in snapshots and error messages.
const (
	NodePrefix     = "n-"
	IntervalPrefix = "iv-"
	ReasonPrefix   = "r-"
	PhasePrefix    = "ph-"
)

// Generate returns a new unique ID with the given prefix.
func Generate(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// Node returns a new node id.
func Node() (string, error) { return Generate(NodePrefix) }

// Interval returns a new interval id.
func Interval() (string, error) { return Generate(IntervalPrefix) }

// Reason returns a new exclusion-reason id.
func Reason() (string, error) { return Generate(ReasonPrefix) }

// Phase returns a new phase id.
func Phase() (string, error) { return Generate(PhasePrefix) }
