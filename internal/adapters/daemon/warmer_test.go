package daemon_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.jot.dev/jot/internal/adapters/cache"
	"go.jot.dev/jot/internal/adapters/daemon"
	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func warmEntry(key domain.NormalizedKey, title string) domain.CacheEntry {
	return domain.CacheEntry{
		Key: key,
		Result: domain.ParsedResult{
			Title:      title,
			Priority:   domain.PriorityMedium,
			Tier:       domain.TierPattern,
			Confidence: domain.ConfidenceFull,
		},
	}
}

func TestWarmer_PreloadsCacheMostFrequentFirst(t *testing.T) {
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	store := mocks.NewMockTaskStore(ctrl)
	store.EXPECT().TopEntries(gomock.Any(), 10).Return([]domain.CacheEntry{
		warmEntry("most frequent", "a"),
		warmEntry("second", "b"),
		warmEntry("third", "c"),
	}, nil)

	client := mocks.NewMockFallbackClient(ctrl)
	client.EXPECT().Healthy(gomock.Any()).Return(true)
	client.EXPECT().Warm(gomock.Any()).Return(nil)

	exact := cache.NewExact(10)
	daemon.NewWarmer(client, store, exact, 10, log).Run(context.Background())

	assert.Equal(t, 3, exact.Len())
	snapshot := exact.Snapshot()
	assert.Equal(t, domain.NormalizedKey("most frequent"), snapshot[0].Key)
}

func TestWarmer_StoreFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).Times(1)

	store := mocks.NewMockTaskStore(ctrl)
	store.EXPECT().TopEntries(gomock.Any(), gomock.Any()).Return(nil, zerr.New("db locked"))

	client := mocks.NewMockFallbackClient(ctrl)
	client.EXPECT().Healthy(gomock.Any()).Return(true)
	client.EXPECT().Warm(gomock.Any()).Return(nil)

	exact := cache.NewExact(10)
	daemon.NewWarmer(client, store, exact, 10, log).Run(context.Background())

	assert.Equal(t, 0, exact.Len())
}

func TestWarmer_ModelFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).Times(1)

	client := mocks.NewMockFallbackClient(ctrl)
	client.EXPECT().Healthy(gomock.Any()).Return(true)
	client.EXPECT().Warm(gomock.Any()).Return(zerr.Wrap(domain.ErrFallbackUnavailable, "down"))

	daemon.NewWarmer(client, nil, cache.NewExact(10), 10, log).Run(context.Background())
}

func TestWarmer_UnhealthyServiceSkipsWarmup(t *testing.T) {
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	// An unreachable service must not be warmed; the degraded mode is
	// logged once instead.
	client := mocks.NewMockFallbackClient(ctrl)
	client.EXPECT().Healthy(gomock.Any()).Return(false)

	daemon.NewWarmer(client, nil, cache.NewExact(10), 10, log).Run(context.Background())
}

func TestWarmer_NilCollaboratorsSkipSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	// No store, no client: nothing to do, nothing logged.
	daemon.NewWarmer(nil, nil, cache.NewExact(10), 10, log).Run(context.Background())
}
