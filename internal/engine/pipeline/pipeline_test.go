package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.jot.dev/jot/internal/adapters/cache"
	"go.jot.dev/jot/internal/adapters/extract"
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.jot.dev/jot/internal/core/ports/mocks"
	"go.jot.dev/jot/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

// Wednesday, 2026-03-11 10:00 UTC.
var testNow = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

type fixture struct {
	exact    *cache.Exact
	pipeline ports.Parser
	client   *mocks.MockFallbackClient
	log      *mocks.MockLogger
}

func newFixture(t *testing.T, withClient bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	exact := cache.NewExact(100)
	matcher := cache.NewFuzzy(0.85)
	engine := extract.NewEngine(20).WithClock(func() time.Time { return testNow })

	var client ports.FallbackClient
	var mockClient *mocks.MockFallbackClient
	if withClient {
		mockClient = mocks.NewMockFallbackClient(ctrl)
		client = mockClient
	}

	return &fixture{
		exact:    exact,
		pipeline: pipeline.BuildDefault(exact, matcher, engine, client, log),
		client:   mockClient,
		log:      log,
	}
}

func TestParse_PatternThenExact(t *testing.T) {
	f := newFixture(t, false)

	first, err := f.pipeline.Parse(context.Background(), "Submit report tomorrow at 3pm #work !!")
	require.NoError(t, err)

	assert.Equal(t, "Submit report", first.Title)
	require.NotNil(t, first.Due)
	assert.Equal(t, time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC), *first.Due)
	assert.Equal(t, []string{"work"}, first.Tags)
	assert.Equal(t, domain.PriorityHigh, first.Priority)
	assert.Equal(t, domain.TierPattern, first.Tier)
	assert.Equal(t, domain.ConfidenceFull, first.Confidence)

	// The exact same text resolves from the cache with identical fields.
	second, err := f.pipeline.Parse(context.Background(), "Submit report tomorrow at 3pm #work !!")
	require.NoError(t, err)
	assert.Equal(t, domain.TierExact, second.Tier)
	assert.True(t, first.SameFields(second))
}

func TestParse_NormalizationUnifiesRepeats(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.pipeline.Parse(context.Background(), "Buy milk and eggs #groceries")
	require.NoError(t, err)

	// Different casing and spacing, same normalized key.
	got, err := f.pipeline.Parse(context.Background(), "  buy MILK   and eggs #groceries ")
	require.NoError(t, err)
	assert.Equal(t, domain.TierExact, got.Tier)
}

func TestParse_FuzzyPromotionCreatesAlias(t *testing.T) {
	f := newFixture(t, false)

	first, err := f.pipeline.Parse(context.Background(), "Submit quarterly report tomorrow at 3pm #work")
	require.NoError(t, err)
	require.Equal(t, domain.TierPattern, first.Tier)
	assert.Equal(t, 1, f.exact.Len())

	// A near-duplicate misses the exact cache but matches fuzzily.
	typo, err := f.pipeline.Parse(context.Background(), "Submit quarterly reports tomorrow at 3pm #work")
	require.NoError(t, err)
	assert.Equal(t, domain.TierFuzzy, typo.Tier)
	assert.True(t, first.SameFields(typo))

	// Write-back created an alias entry under the new key.
	assert.Equal(t, 2, f.exact.Len())
	again, err := f.pipeline.Parse(context.Background(), "Submit quarterly reports tomorrow at 3pm #work")
	require.NoError(t, err)
	assert.Equal(t, domain.TierExact, again.Tier)
}

func TestParse_DistantInputDoesNotMatchFuzzily(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.pipeline.Parse(context.Background(), "Submit quarterly report tomorrow at 3pm #work")
	require.NoError(t, err)

	got, err := f.pipeline.Parse(context.Background(), "Walk the dog tomorrow")
	require.NoError(t, err)
	assert.Equal(t, domain.TierPattern, got.Tier)
	assert.Equal(t, "Walk the dog", got.Title)
}

func TestParse_DegradedWithoutClient(t *testing.T) {
	f := newFixture(t, false)

	// No extractable fields and a short title: pattern is insufficient and
	// there is no fallback client to ask.
	got, err := f.pipeline.Parse(context.Background(), "hm ok")
	require.NoError(t, err)

	assert.Equal(t, "hm ok", got.Title)
	assert.Equal(t, domain.ConfidencePartial, got.Confidence)
}

func TestParse_FallbackTimeoutDegrades(t *testing.T) {
	f := newFixture(t, true)

	f.client.EXPECT().
		Interpret(gomock.Any(), "hm ok").
		Return(domain.ParsedResult{}, domain.ErrFallbackTimeout)

	got, err := f.pipeline.Parse(context.Background(), "hm ok")
	require.NoError(t, err)

	assert.Equal(t, "hm ok", got.Title)
	assert.Equal(t, domain.ConfidencePartial, got.Confidence)
}

func TestParse_FallbackAnswerMergesOverPartial(t *testing.T) {
	f := newFixture(t, true)

	due := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	f.client.EXPECT().
		Interpret(gomock.Any(), "something ambiguous").
		Return(domain.ParsedResult{
			Title:      "Something ambiguous",
			Due:        &due,
			Priority:   domain.PriorityMedium,
			Tier:       domain.TierFallback,
			Confidence: domain.ConfidenceFull,
		}, nil)

	got, err := f.pipeline.Parse(context.Background(), "something ambiguous")
	require.NoError(t, err)

	assert.Equal(t, domain.TierFallback, got.Tier)
	assert.Equal(t, domain.ConfidenceFull, got.Confidence)
	assert.Equal(t, "Something ambiguous", got.Title)
	require.NotNil(t, got.Due)
	assert.Equal(t, due, *got.Due)

	// The fallback answer is cached like any other resolution.
	again, err := f.pipeline.Parse(context.Background(), "something ambiguous")
	require.NoError(t, err)
	assert.Equal(t, domain.TierExact, again.Tier)
	assert.True(t, got.SameFields(again))
}

func TestParse_FallbackKeepsPartialFieldsWhereSilent(t *testing.T) {
	f := newFixture(t, true)

	// The service answers without a title; the merge must keep the
	// pattern engine's cleaned input instead of blanking it.
	due := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	f.client.EXPECT().
		Interpret(gomock.Any(), gomock.Any()).
		Return(domain.ParsedResult{
			Due:        &due,
			Priority:   domain.PriorityMedium,
			Tier:       domain.TierFallback,
			Confidence: domain.ConfidenceFull,
		}, nil)

	got, err := f.pipeline.Parse(context.Background(), "hm right")
	require.NoError(t, err)
	assert.Equal(t, domain.TierFallback, got.Tier)
	assert.Equal(t, "hm right", got.Title)
	require.NotNil(t, got.Due)
	assert.Equal(t, due, *got.Due)
}

func TestParse_InvalidInput(t *testing.T) {
	f := newFixture(t, false)

	for _, input := range []string{"", "   ", "\xff\xfe"} {
		_, err := f.pipeline.Parse(context.Background(), input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
}

func TestParse_TierErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	boom := errors.New("boom")
	tier := mocks.NewMockTier(ctrl)
	tier.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(domain.ParsedResult{}, boom)
	tier.EXPECT().Name().Return(domain.TierPattern).AnyTimes()

	p := pipeline.New(cache.NewExact(10), []ports.Tier{tier}, log)

	_, err := p.Parse(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestParse_AllTiersMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	tier := mocks.NewMockTier(ctrl)
	tier.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(domain.ParsedResult{}, domain.ErrNoMatch)

	p := pipeline.New(cache.NewExact(10), []ports.Tier{tier}, log)

	_, err := p.Parse(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoMatch))
}
