// Package search provides exact and fuzzy queries over a history snapshot.
//
// All functions are stateless and operate on a value-copy snapshot; they
// never touch the live store and are safe to run concurrently with inserts.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/MegoCs/clipboard-history/internal/content"
)

// Match is an exact-search hit. Index is the entry's position in the
// snapshot the search ran against (0 = newest), not a stable identity.
type Match struct {
	Index int
	Entry content.Entry
}

// ScoredMatch is a fuzzy-search hit with its match score (higher is better).
type ScoredMatch struct {
	Index int
	Entry content.Entry
	Score int
}

// Exact returns entries whose display text contains query,
// case-insensitively, preserving the snapshot's newest-first order.
func Exact(snapshot []content.Entry, query string) []Match {
	q := strings.ToLower(query)
	var out []Match
	for i, e := range snapshot {
		if strings.Contains(strings.ToLower(e.DisplayText()), q) {
			out = append(out, Match{Index: i, Entry: e})
		}
	}
	return out
}

// displaySource adapts a snapshot to fuzzy.Source, matching against each
// entry's display text.
type displaySource []content.Entry

func (s displaySource) String(i int) string { return s[i].DisplayText() }
func (s displaySource) Len() int            { return len(s) }

// Fuzzy returns entries whose display text fuzzy-matches query, sorted by
// score descending. Ties keep their original newest-first relative order;
// entries with no match are excluded. An empty query matches nothing.
func Fuzzy(snapshot []content.Entry, query string) []ScoredMatch {
	if query == "" {
		return nil
	}
	matches := fuzzy.FindFrom(query, displaySource(snapshot))
	out := make([]ScoredMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, ScoredMatch{Index: m.Index, Entry: snapshot[m.Index], Score: m.Score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// Unified runs both searches and returns both result sets. Callers decide
// precedence; the console UI shows fuzzy results when non-empty and falls
// back to exact otherwise.
func Unified(snapshot []content.Entry, query string) (exact []Match, fuzzyMatches []ScoredMatch) {
	return Exact(snapshot, query), Fuzzy(snapshot, query)
}
