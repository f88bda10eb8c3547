package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.jot.dev/jot/internal/core/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.NormalizedKey
	}{
		{
			name:  "lowercases",
			input: "Submit Report Tomorrow",
			want:  "submit report tomorrow",
		},
		{
			name:  "collapses internal whitespace",
			input: "submit   report\t\ttomorrow",
			want:  "submit report tomorrow",
		},
		{
			name:  "trims leading and trailing whitespace",
			input: "  submit report  ",
			want:  "submit report",
		},
		{
			name:  "mixed case and spacing normalize to the same key",
			input: "SUBMIT\treport   Tomorrow",
			want:  "submit report tomorrow",
		},
		{
			name:  "preserves punctuation and markers",
			input: "Fix bug !! #backend",
			want:  "fix bug !! #backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_EquivalentInputsShareKey(t *testing.T) {
	a, err := domain.Normalize("Buy milk tomorrow")
	require.NoError(t, err)
	b, err := domain.Normalize("  buy   MILK\ttomorrow ")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestNormalize_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := domain.Normalize(input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
}

func TestNormalize_InvalidUTF8(t *testing.T) {
	_, err := domain.Normalize("caf\xc3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestFingerprint_DiffersForDifferentKeys(t *testing.T) {
	a, err := domain.Normalize("buy milk")
	require.NoError(t, err)
	b, err := domain.Normalize("buy eggs")
	require.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
