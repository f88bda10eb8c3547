package domain

import (
	"encoding/json"
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// Tier identifies the strategy that produced a result. Every result
// carries exactly one tier tag.
type Tier string

const (
	// TierExact marks a result served from the exact cache.
	TierExact Tier = "exact"
	// TierFuzzy marks a result served from a near-duplicate cache entry.
	TierFuzzy Tier = "fuzzy"
	// TierPattern marks a result produced by the deterministic extractors.
	TierPattern Tier = "pattern"
	// TierFallback marks a result produced by the slow generative fallback.
	TierFallback Tier = "fallback"
)

// Confidence indicates whether a result is complete or degraded.
type Confidence string

const (
	// ConfidenceFull marks a complete result.
	ConfidenceFull Confidence = "full"
	// ConfidencePartial marks a degraded result produced without the
	// fallback tier (for example after a fallback timeout).
	ConfidencePartial Confidence = "partial"
)

// Priority is the ordered task priority.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

var priorityNames = map[Priority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
	PriorityUrgent: "urgent",
}

// String returns the lower-case priority name.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "medium"
}

// ParsePriority maps a priority name to its value.
func ParsePriority(s string) (Priority, error) {
	for p, name := range priorityNames {
		if name == s {
			return p, nil
		}
	}
	return PriorityMedium, zerr.With(zerr.New("unknown priority"), "priority", s)
}

// MarshalJSON encodes the priority as its name.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a priority name. Unknown names default to medium
// so a loose fallback-service answer never fails the whole parse.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		*p = PriorityMedium
		return nil
	}
	*p = parsed
	return nil
}

// ParsedResult is a structured task record extracted from raw text.
type ParsedResult struct {
	// Title is the input text cleaned of all matched syntax.
	Title string `json:"title"`
	// Due is the extracted due/scheduled instant, if any.
	Due *time.Time `json:"due,omitempty"`
	// Priority defaults to medium when no marker was present.
	Priority Priority `json:"priority"`
	// PriorityExplicit records whether a priority marker was matched,
	// as opposed to the medium default.
	PriorityExplicit bool `json:"priority_explicit,omitempty"`
	// Tags is the sorted, deduplicated tag set.
	Tags []string `json:"tags,omitempty"`
	// Tier is the strategy that produced this result.
	Tier Tier `json:"tier"`
	// Confidence is full for complete results, partial for degraded ones.
	Confidence Confidence `json:"confidence"`
}

// FieldCount returns the number of non-title fields that were extracted.
// Used by the sufficiency heuristic.
func (r ParsedResult) FieldCount() int {
	n := 0
	if r.Due != nil {
		n++
	}
	if len(r.Tags) > 0 {
		n++
	}
	if r.PriorityExplicit {
		n++
	}
	return n
}

// Clone returns a deep copy, so cached results can be handed out without
// sharing mutable state with the cache.
func (r ParsedResult) Clone() ParsedResult {
	out := r
	if r.Due != nil {
		due := *r.Due
		out.Due = &due
	}
	out.Tags = slices.Clone(r.Tags)
	return out
}

// SameFields reports whether two results extracted the same task fields,
// ignoring the tier tag and confidence.
func (r ParsedResult) SameFields(other ParsedResult) bool {
	if r.Title != other.Title || r.Priority != other.Priority {
		return false
	}
	if (r.Due == nil) != (other.Due == nil) {
		return false
	}
	if r.Due != nil && !r.Due.Equal(*other.Due) {
		return false
	}
	return slices.Equal(r.Tags, other.Tags)
}
