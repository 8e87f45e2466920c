package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lateshow-api/internal/model"
	"github.com/iliyamo/lateshow-api/internal/repository"
	"github.com/iliyamo/lateshow-api/internal/testsupport"
)

func TestEpisodeCreateAndGet(t *testing.T) {
	db := testsupport.OpenDB(t)
	repo := repository.NewEpisodeRepo(db)
	ctx := context.Background()

	e := &model.Episode{Date: "2/2/02", Number: 7}
	require.NoError(t, repo.Create(ctx, e))
	require.NotZero(t, e.ID)

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2/2/02", got.Date)
	assert.Equal(t, 7, got.Number)
	assert.Nil(t, got.Appearances)

	_, err = repo.GetByID(ctx, e.ID+100)
	assert.ErrorIs(t, err, repository.ErrEpisodeNotFound)
}

func TestEpisodeGetWithAppearances(t *testing.T) {
	db := testsupport.OpenSeededDB(t)
	repo := repository.NewEpisodeRepo(db)
	ctx := context.Background()

	e, err := repo.GetWithAppearances(ctx, 1)
	require.NoError(t, err)
	require.Len(t, e.Appearances, 2)
	first := e.Appearances[0]
	assert.Equal(t, 4, first.Rating)
	assert.Equal(t, uint64(1), first.EpisodeID)
	require.NotNil(t, first.Guest)
	assert.Equal(t, "Michael J. Fox", first.Guest.Name)
	assert.Nil(t, first.Episode)

	e, err = repo.GetWithAppearances(ctx, 5)
	require.NoError(t, err)
	assert.NotNil(t, e.Appearances)
	assert.Empty(t, e.Appearances)

	_, err = repo.GetWithAppearances(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrEpisodeNotFound)
}

func TestEpisodeDeleteCascades(t *testing.T) {
	db := testsupport.OpenSeededDB(t)
	episodes := repository.NewEpisodeRepo(db)
	appearances := repository.NewAppearanceRepo(db)
	ctx := context.Background()

	require.NoError(t, episodes.DeleteByID(ctx, 1))

	_, err := episodes.GetByID(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrEpisodeNotFound)

	all, err := appearances.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	for _, a := range all {
		assert.NotEqual(t, uint64(1), a.EpisodeID)
	}

	assert.ErrorIs(t, episodes.DeleteByID(ctx, 1), repository.ErrEpisodeNotFound)
}

func TestGuestGetWithAppearances(t *testing.T) {
	db := testsupport.OpenSeededDB(t)
	repo := repository.NewGuestRepo(db)
	ctx := context.Background()

	g, err := repo.GetWithAppearances(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Tracey Ullman", g.Name)
	require.Len(t, g.Appearances, 2)
	for _, a := range g.Appearances {
		require.NotNil(t, a.Episode)
		assert.Equal(t, a.EpisodeID, a.Episode.ID)
		assert.Nil(t, a.Guest)
	}

	_, err = repo.GetWithAppearances(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrGuestNotFound)
}

func TestGuestDeleteCascades(t *testing.T) {
	db := testsupport.OpenSeededDB(t)
	guests := repository.NewGuestRepo(db)
	episodes := repository.NewEpisodeRepo(db)
	ctx := context.Background()

	require.NoError(t, guests.DeleteByID(ctx, 2))

	list, err := guests.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	e, err := episodes.GetWithAppearances(ctx, 1)
	require.NoError(t, err)
	require.Len(t, e.Appearances, 1)
	assert.Equal(t, uint64(1), e.Appearances[0].GuestID)

	assert.ErrorIs(t, guests.DeleteByID(ctx, 2), repository.ErrGuestNotFound)
}

func TestAppearanceCreateLoadsRelations(t *testing.T) {
	db := testsupport.OpenSeededDB(t)
	repo := repository.NewAppearanceRepo(db)
	ctx := context.Background()

	a, err := model.NewAppearance(5, 2, 3)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))

	assert.Equal(t, uint64(7), a.ID)
	require.NotNil(t, a.Episode)
	require.NotNil(t, a.Guest)
	assert.Equal(t, 2, a.Episode.Number)
	assert.Equal(t, "Tracey Ullman", a.Guest.Name)
}

func TestAppearanceCreateRejectsMissingReferences(t *testing.T) {
	db := testsupport.OpenSeededDB(t)
	repo := repository.NewAppearanceRepo(db)
	ctx := context.Background()

	for _, tc := range []struct {
		name           string
		episode, guest uint64
	}{
		{"missing episode", 999, 1},
		{"missing guest", 1, 999},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, err := model.NewAppearance(3, tc.episode, tc.guest)
			require.NoError(t, err)
			assert.ErrorIs(t, repo.Create(ctx, a), repository.ErrInvalidReference)
		})
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestAppearanceCreateValidatesRating(t *testing.T) {
	db := testsupport.OpenSeededDB(t)
	repo := repository.NewAppearanceRepo(db)

	err := repo.Create(context.Background(), &model.Appearance{Rating: 9, EpisodeID: 1, GuestID: 1})
	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))
}
