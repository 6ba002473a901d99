package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentvsbuy/domain"
)

func TestSimulationRepositoryMemory_RecentNewestFirst(t *testing.T) {

	repo := NewSimulationRepositoryMemory(10)

	for i := 1; i <= 3; i++ {
		err := repo.Save(
			domain.SimulationParameters{HorizonYears: i},
			domain.SimulationResult{Months: i * 12},
		)
		require.NoError(t, err)
	}

	records := repo.Recent(2)
	require.Len(t, records, 2)
	assert.Equal(t, 36, records[0].Result.Months)
	assert.Equal(t, 24, records[1].Result.Months)

	assert.Len(t, repo.Recent(0), 3)
}

func TestSimulationRepositoryMemory_EvictsOldest(t *testing.T) {

	repo := NewSimulationRepositoryMemory(2)

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Save(
			domain.SimulationParameters{HorizonYears: i},
			domain.SimulationResult{Months: i * 12},
		))
	}

	records := repo.Recent(10)
	require.Len(t, records, 2)
	assert.Equal(t, 60, records[0].Result.Months)
	assert.Equal(t, 48, records[1].Result.Months)
}

func TestMockCache_RoundTrip(t *testing.T) {

	cache := NewMockCache()

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	require.NoError(t, cache.Set("k", "v"))
	val, ok := cache.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
	assert.Equal(t, 1, cache.Len())
}
