// Package content holds the read-only records shown by the tab switcher
// and the policy that turns a record into an identity key.
package content

import (
	"errors"
	"fmt"
	"strconv"
)

// Record is one tab's content. Records are never mutated after loading.
type Record struct {
	ID      string `toml:"id,omitempty" yaml:"id,omitempty"`
	Summary string `toml:"summary" yaml:"summary"`
	Details string `toml:"details" yaml:"details"`
}

// KeyPolicy selects which field of a record identifies it.
type KeyPolicy string

const (
	// KeySummary uses the summary text. Two records with the same summary
	// collide.
	KeySummary KeyPolicy = "summary"
	// KeyID uses Record.ID, which loaders always fill.
	KeyID KeyPolicy = "id"
	// KeyIndex uses the record's position in the list.
	KeyIndex KeyPolicy = "index"
)

// ErrUnknownPolicy is returned by ParseKeyPolicy.
var ErrUnknownPolicy = errors.New("unknown key policy")

// ParseKeyPolicy converts s into a KeyPolicy. The empty string selects
// KeySummary.
func ParseKeyPolicy(s string) (KeyPolicy, error) {
	switch KeyPolicy(s) {
	case "", KeySummary:
		return KeySummary, nil
	case KeyID:
		return KeyID, nil
	case KeyIndex:
		return KeyIndex, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Key derives the identity key for the record at index.
func (p KeyPolicy) Key(rec Record, index int) string {
	switch p {
	case KeyID:
		if rec.ID != "" {
			return rec.ID
		}
	case KeyIndex:
		return strconv.Itoa(index)
	}
	return rec.Summary
}

// Collision is a set of record indices sharing one derived key.
type Collision struct {
	Key     string
	Indices []int
}

// Duplicates returns every key that more than one record maps to under p,
// in order of first appearance.
func (p KeyPolicy) Duplicates(records []Record) []Collision {
	seen := make(map[string]int)
	var out []Collision
	for i, rec := range records {
		k := p.Key(rec, i)
		if at, ok := seen[k]; ok {
			out[at].Indices = append(out[at].Indices, i)
			continue
		}
		seen[k] = len(out)
		out = append(out, Collision{Key: k, Indices: []int{i}})
	}

	dups := out[:0]
	for _, c := range out {
		if len(c.Indices) > 1 {
			dups = append(dups, c)
		}
	}
	return dups
}

// DefaultRecords returns the built-in tab content.
func DefaultRecords() []Record {
	return []Record{
		{
			ID:      "library",
			Summary: "React is a library for building UIs",
			Details: "Dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.",
		},
		{
			ID:      "state",
			Summary: "State management is like giving state a home",
			Details: "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.",
		},
		{
			ID:      "props",
			Summary: "We can think of props as the component API",
			Details: "Fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum. Duis aute irure dolor in reprehenderit.",
		},
	}
}
