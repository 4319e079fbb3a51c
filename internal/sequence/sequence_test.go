package sequence_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"golang.org/x/text/language"

	"snapmotion/internal/collect"
	"snapmotion/internal/failure"
	"snapmotion/internal/sequence"
)

func entry(name string, mod time.Time) collect.ImageEntry {
	return collect.ImageEntry{Path: "/photos/" + name, Name: name, ModTime: mod}
}

func names(entries []collect.ImageEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func equalNames(t *testing.T, got []collect.ImageEntry, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestOrderByNameIsByteWise(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := []collect.ImageEntry{
		entry("b.jpg", base),
		entry("A.jpg", base),
		entry("a.jpg", base),
		entry("img10.png", base),
		entry("img2.png", base),
	}
	got, err := sequence.Order(in, sequence.ByName)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	equalNames(t, got, "A.jpg", "a.jpg", "b.jpg", "img10.png", "img2.png")

	again, err := sequence.Order(got, sequence.ByName)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	equalNames(t, again, names(got)...)
}

func TestOrderDoesNotMutateInput(t *testing.T) {
	base := time.Now()
	in := []collect.ImageEntry{entry("c.jpg", base), entry("a.jpg", base), entry("b.jpg", base)}
	if _, err := sequence.Order(in, sequence.ByName); err != nil {
		t.Fatalf("Order: %v", err)
	}
	equalNames(t, in, "c.jpg", "a.jpg", "b.jpg")
}

func TestOrderByDateBreaksTiesByName(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)
	in := []collect.ImageEntry{
		entry("z.jpg", t0),
		entry("late.jpg", t1.Add(time.Hour)),
		entry("m.jpg", t1),
		entry("a.jpg", t1),
		entry("b.jpg", t0),
	}
	got, err := sequence.Order(in, sequence.ByDate)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	equalNames(t, got, "b.jpg", "z.jpg", "a.jpg", "m.jpg", "late.jpg")
	for i := 1; i < len(got); i++ {
		if got[i].ModTime.Before(got[i-1].ModTime) {
			t.Fatalf("mod times not monotonic at %d: %v", i, names(got))
		}
	}
}

func TestOrderIsPermutationForAnyInputOrder(t *testing.T) {
	base := time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC)
	var in []collect.ImageEntry
	for i, n := range []string{"e.jpg", "d.jpg", "c.png", "b.jpeg", "a.jpg", "f.JPG"} {
		in = append(in, entry(n, base.Add(time.Duration(i%3)*time.Second)))
	}
	rng := rand.New(rand.NewSource(7))

	for _, mode := range []sequence.Mode{sequence.ByName, sequence.ByDate} {
		reference, err := sequence.Order(in, mode)
		if err != nil {
			t.Fatalf("Order: %v", err)
		}
		for round := 0; round < 20; round++ {
			shuffled := append([]collect.ImageEntry(nil), in...)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			got, err := sequence.Order(shuffled, mode)
			if err != nil {
				t.Fatalf("Order: %v", err)
			}
			equalNames(t, got, names(reference)...)

			seen := map[string]int{}
			for _, e := range got {
				seen[e.Path]++
			}
			if len(seen) != len(in) {
				t.Fatalf("expected %d unique entries, got %d", len(in), len(seen))
			}
			for path, count := range seen {
				if count != 1 {
					t.Fatalf("entry %s appears %d times", path, count)
				}
			}
		}
	}
}

func TestOrderWithCollation(t *testing.T) {
	base := time.Now()
	in := []collect.ImageEntry{entry("b.jpg", base), entry("Z.jpg", base), entry("a.jpg", base), entry("A.jpg", base)}

	got, err := sequence.Order(in, sequence.ByName, sequence.WithCollation(language.English))
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	// collation groups letters regardless of case; byte order would put Z first
	if got[len(got)-1].Name != "Z.jpg" {
		t.Fatalf("expected Z.jpg last with collation, got %v", names(got))
	}
	again, err := sequence.Order(in, sequence.ByName, sequence.WithCollation(language.English))
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	equalNames(t, again, names(got)...)
}

func TestOrderUnknownMode(t *testing.T) {
	_, err := sequence.Order(nil, sequence.Mode("random"))
	if !errors.Is(err, failure.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestParseSortMode(t *testing.T) {
	cases := []struct {
		in   string
		want sequence.Mode
		ok   bool
	}{
		{"", sequence.ByName, true},
		{"1", sequence.ByName, true},
		{" by_name ", sequence.ByName, true},
		{"NAME", sequence.ByName, true},
		{"2", sequence.ByDate, true},
		{"by_date", sequence.ByDate, true},
		{"date", sequence.ByDate, true},
		{"3", "", false},
		{"size", "", false},
	}
	for _, tc := range cases {
		got, err := sequence.ParseSortMode(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseSortMode(%q) error: %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseSortMode(%q) expected error", tc.in)
		}
		if got != tc.want {
			t.Fatalf("ParseSortMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
