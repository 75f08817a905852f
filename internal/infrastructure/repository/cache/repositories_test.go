package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obhl/rinkside/internal/domain/team"
	"github.com/obhl/rinkside/internal/infrastructure/repository/memory"
	basecache "github.com/obhl/rinkside/internal/platform/cache"
)

func TestTeamRepository_ListServesFromCache(t *testing.T) {
	ctx := context.Background()
	next := memory.NewTeamRepository([]team.Team{
		{ID: "ice-hawks", Name: "Ice Hawks", Short: "HWK", Division: "north"},
	})
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Write behind the decorator's back; the cached list keeps serving
	// until an invalidating write goes through the decorator.
	require.NoError(t, next.Create(ctx, team.Team{ID: "river-rats", Name: "River Rats", Short: "RAT", Division: "south"}))

	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestTeamRepository_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	next := memory.NewTeamRepository([]team.Team{
		{ID: "ice-hawks", Name: "Ice Hawks", Short: "HWK", Division: "north"},
	})
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	got, found, err := repo.GetByID(ctx, "ice-hawks")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ice Hawks", got.Name)

	updated := got
	updated.Name = "Mighty Ice Hawks"
	require.NoError(t, repo.Update(ctx, updated))

	got, found, err = repo.GetByID(ctx, "ice-hawks")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Mighty Ice Hawks", got.Name)
}

func TestTeamRepository_GetByIDCachesMiss(t *testing.T) {
	ctx := context.Background()
	next := memory.NewTeamRepository(nil)
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	_, found, err := repo.GetByID(ctx, "ghost-team")
	require.NoError(t, err)
	assert.False(t, found)

	// A create through the decorator clears the cached miss.
	require.NoError(t, repo.Create(ctx, team.Team{ID: "ghost-team", Name: "Ghost Team", Short: "GST", Division: "north"}))

	_, found, err = repo.GetByID(ctx, "ghost-team")
	require.NoError(t, err)
	assert.True(t, found)
}
