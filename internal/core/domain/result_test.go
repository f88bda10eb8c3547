package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.jot.dev/jot/internal/core/domain"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Priority
	}{
		{"low", domain.PriorityLow},
		{"medium", domain.PriorityMedium},
		{"high", domain.PriorityHigh},
		{"urgent", domain.PriorityUrgent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParsePriority(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParsePriority_Unknown(t *testing.T) {
	got, err := domain.ParsePriority("critical")
	require.Error(t, err)
	assert.Equal(t, domain.PriorityMedium, got)
}

func TestPriority_UnmarshalJSON_UnknownDefaultsToMedium(t *testing.T) {
	var p domain.Priority
	require.NoError(t, json.Unmarshal([]byte(`"whatever"`), &p))
	assert.Equal(t, domain.PriorityMedium, p)
}

func TestPriority_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(domain.PriorityUrgent)
	require.NoError(t, err)
	assert.Equal(t, `"urgent"`, string(data))

	var p domain.Priority
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, domain.PriorityUrgent, p)
}

func TestParsedResult_FieldCount(t *testing.T) {
	due := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, domain.ParsedResult{Title: "just a title"}.FieldCount())
	assert.Equal(t, 1, domain.ParsedResult{Due: &due}.FieldCount())
	assert.Equal(t, 2, domain.ParsedResult{Due: &due, Tags: []string{"work"}}.FieldCount())
	assert.Equal(t, 3, domain.ParsedResult{
		Due:              &due,
		Tags:             []string{"work"},
		PriorityExplicit: true,
	}.FieldCount())
}

func TestParsedResult_Clone_Independent(t *testing.T) {
	due := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	original := domain.ParsedResult{
		Title: "submit report",
		Due:   &due,
		Tags:  []string{"work", "urgent"},
	}

	clone := original.Clone()
	*clone.Due = clone.Due.Add(time.Hour)
	clone.Tags[0] = "changed"

	assert.Equal(t, due, *original.Due)
	assert.Equal(t, "work", original.Tags[0])
}

func TestParsedResult_SameFields(t *testing.T) {
	due := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	a := domain.ParsedResult{
		Title:      "submit report",
		Due:        &due,
		Priority:   domain.PriorityHigh,
		Tags:       []string{"work"},
		Tier:       domain.TierPattern,
		Confidence: domain.ConfidenceFull,
	}

	// Tier and confidence differences do not matter.
	b := a.Clone()
	b.Tier = domain.TierExact
	b.Confidence = domain.ConfidencePartial
	assert.True(t, a.SameFields(b))

	c := a.Clone()
	c.Title = "different"
	assert.False(t, a.SameFields(c))

	d := a.Clone()
	d.Due = nil
	assert.False(t, a.SameFields(d))

	e := a.Clone()
	e.Tags = []string{"home"}
	assert.False(t, a.SameFields(e))
}
