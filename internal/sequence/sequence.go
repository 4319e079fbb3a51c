// Package sequence puts collected images into their playback order.
//
// Ordering is a pure function of the entry set and the chosen mode: it never
// touches the filesystem and never mutates its input, and ties are always
// broken so the result is a total order.
package sequence

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"snapmotion/internal/collect"
	"snapmotion/internal/failure"
)

// Mode selects the sort key.
type Mode string

const (
	ByName Mode = "by_name"
	ByDate Mode = "by_date"
)

// ParseSortMode accepts the config spellings and the wizard's menu numbers.
// An empty value selects ByName.
func ParseSortMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "1", "name", "by_name", "filename":
		return ByName, nil
	case "2", "date", "by_date", "time", "mtime":
		return ByDate, nil
	default:
		return "", fmt.Errorf("invalid sort order %q (expected by_name or by_date)", value)
	}
}

// Option adjusts how names are compared.
type Option func(*orderer)

// WithCollation compares names using the collation rules of tag instead of
// plain byte order. Names the collator considers equal still fall back to
// byte order so the result stays deterministic.
func WithCollation(tag language.Tag) Option {
	return func(o *orderer) {
		o.collator = collate.New(tag)
	}
}

type orderer struct {
	collator *collate.Collator
}

func (o *orderer) compareNames(a, b collect.ImageEntry) int {
	if o.collator != nil {
		if c := o.collator.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.Path, b.Path)
}

// Order returns a sorted copy of entries.
func Order(entries []collect.ImageEntry, mode Mode, opts ...Option) ([]collect.ImageEntry, error) {
	o := &orderer{}
	for _, opt := range opts {
		opt(o)
	}

	var cmp func(a, b collect.ImageEntry) int
	switch mode {
	case ByName:
		cmp = o.compareNames
	case ByDate:
		cmp = func(a, b collect.ImageEntry) int {
			if c := a.ModTime.Compare(b.ModTime); c != 0 {
				return c
			}
			return o.compareNames(a, b)
		}
	default:
		return nil, failure.Wrap(failure.ErrConfiguration, failure.StageSequence, "order", fmt.Sprintf("unknown sort mode %q", mode), nil)
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, cmp)
	return sorted, nil
}
