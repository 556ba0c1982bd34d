// Package match resolves free-text ingredient and dish names against a
// reference catalog. Names arrive with inconsistent casing, spacing, word
// order and pluralization, so lookup runs a tiered strategy: exact match,
// synonym group, substring containment, then edit-distance similarity.
// The first tier that produces a hit wins and later tiers are never
// consulted, which keeps every resolution deterministic and explainable.
package match

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/samber/lo"
)

// DefaultThreshold is the minimum similarity ratio accepted by the
// edit-distance tier.
const DefaultThreshold = 0.6

// Confidence values reported per tier. Containment is a flat score
// regardless of how much of the longer string is covered; treat it as a
// tunable rather than a derived quantity.
const (
	ExactConfidence    = 1.0
	SynonymConfidence  = 0.95
	ContainsConfidence = 0.8
)

// Result describes one lookup. Matched is the winning candidate in its
// original spelling, or "" when nothing reached the threshold. Results are
// ephemeral; they are never persisted.
type Result struct {
	Query      string
	Matched    string
	Confidence float64
}

// Found reports whether the lookup produced a usable candidate.
func (r Result) Found() bool {
	return r.Matched != ""
}

// Matcher resolves query names against candidate lists using a fixed
// synonym table. The zero value matches without synonyms.
type Matcher struct {
	synonyms *Synonyms
}

// NewMatcher returns a Matcher backed by the given synonym table. A nil
// table disables the synonym tier.
func NewMatcher(synonyms *Synonyms) *Matcher {
	return &Matcher{synonyms: synonyms}
}

// Match resolves query against candidates, trying tiers in order and
// returning on the first hit. Candidate order is significant: within the
// containment and similarity tiers, ties go to the earlier candidate.
// An empty candidate list or a query that normalizes to "" never matches.
func (m *Matcher) Match(query string, candidates []string, threshold float64) Result {
	result := Result{Query: query}
	queryNorm := Normalize(query)
	if queryNorm == "" || len(candidates) == 0 {
		return result
	}

	normalized := make([]string, len(candidates))
	for i, candidate := range candidates {
		normalized[i] = Normalize(candidate)
	}

	for i, candidateNorm := range normalized {
		if queryNorm == candidateNorm {
			result.Matched = candidates[i]
			result.Confidence = ExactConfidence
			return result
		}
	}

	if m != nil && m.synonyms != nil {
		queryGroup := m.synonyms.SynonymsOf(queryNorm)
		for i, candidateNorm := range normalized {
			if candidateNorm == "" {
				continue
			}
			if lo.Contains(queryGroup, candidateNorm) || lo.Contains(m.synonyms.SynonymsOf(candidateNorm), queryNorm) {
				result.Matched = candidates[i]
				result.Confidence = SynonymConfidence
				return result
			}
		}
	}

	for i, candidateNorm := range normalized {
		if candidateNorm == "" {
			continue
		}
		if strings.Contains(candidateNorm, queryNorm) || strings.Contains(queryNorm, candidateNorm) {
			result.Matched = candidates[i]
			result.Confidence = ContainsConfidence
			return result
		}
	}

	bestRatio := 0.0
	bestIndex := -1
	for i, candidateNorm := range normalized {
		if candidateNorm == "" {
			continue
		}
		if ratio := similarity(queryNorm, candidateNorm); ratio > bestRatio {
			bestRatio = ratio
			bestIndex = i
		}
	}
	if bestIndex >= 0 && bestRatio >= threshold {
		result.Matched = candidates[bestIndex]
		result.Confidence = bestRatio
	}
	return result
}

// similarity scores two normalized strings in [0,1] using Levenshtein
// distance over runes: 1.0 means identical.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}
