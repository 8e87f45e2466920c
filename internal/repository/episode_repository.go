// Package repository contains data access logic separated from HTTP handlers.
// This file holds the episode queries, including the cascading delete that
// removes an episode's appearances together with the episode itself.
package repository

import (
	"context"      // context carries deadlines and cancellation to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/iliyamo/lateshow-api/internal/model"
)

// ErrEpisodeNotFound is returned when an episode cannot be found in the DB.
var ErrEpisodeNotFound = errors.New("episode not found")

var episodeColumns = []string{"id", "date", "number"}

// EpisodeRepo encapsulates all database queries related to episodes.
type EpisodeRepo struct {
	db *sql.DB // db is the shared database handle
}

// NewEpisodeRepo constructs an EpisodeRepo with the provided DB handle.
func NewEpisodeRepo(db *sql.DB) *EpisodeRepo {
	return &EpisodeRepo{db: db}
}

// Create inserts a new episode.  On success e.ID holds the assigned id.
func (r *EpisodeRepo) Create(ctx context.Context, e *model.Episode) error {
	q, args, err := sq.Insert("episodes").
		Columns("date", "number").
		Values(e.Date, e.Number).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("insert episode: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID fetches an episode without its appearances.  It returns
// ErrEpisodeNotFound if no row is found.
func (r *EpisodeRepo) GetByID(ctx context.Context, id uint64) (*model.Episode, error) {
	return getEpisode(ctx, r.db, id)
}

// GetWithAppearances fetches an episode together with its appearances, each
// carrying the guest that appeared.  Appearances are ordered by id and the
// slice is never nil for an existing episode.
func (r *EpisodeRepo) GetWithAppearances(ctx context.Context, id uint64) (*model.Episode, error) {
	e, err := getEpisode(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	q, args, err := sq.Select("a.id", "a.rating", "a.episode_id", "a.guest_id", "g.id", "g.name", "g.occupation").
		From("appearances a").
		Join("guests g ON g.id = a.guest_id").
		Where(sq.Eq{"a.episode_id": id}).
		OrderBy("a.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	e.Appearances = make([]model.Appearance, 0)
	for rows.Next() {
		var a model.Appearance
		g := new(model.Guest)
		if err := rows.Scan(&a.ID, &a.Rating, &a.EpisodeID, &a.GuestID, &g.ID, &g.Name, &g.Occupation); err != nil {
			return nil, err
		}
		a.Guest = g
		e.Appearances = append(e.Appearances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

// ListAll returns every episode ordered by id, without appearances.
func (r *EpisodeRepo) ListAll(ctx context.Context) ([]*model.Episode, error) {
	q, args, err := sq.Select(episodeColumns...).From("episodes").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Episode, 0)
	for rows.Next() {
		e := new(model.Episode)
		if err := rows.Scan(&e.ID, &e.Date, &e.Number); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID removes an episode and every appearance that references it
// within a single transaction.  ErrEpisodeNotFound is returned when the
// episode does not exist; nothing is deleted in that case.
func (r *EpisodeRepo) DeleteByID(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	if _, err = getEpisode(ctx, tx, id); err != nil {
		return err
	}
	// Cascade: dependents first so the foreign key never dangles.
	if err = execDelete(ctx, tx, sq.Delete("appearances").Where(sq.Eq{"episode_id": id})); err != nil {
		return err
	}
	return execDelete(ctx, tx, sq.Delete("episodes").Where(sq.Eq{"id": id}))
}

// DeleteAll empties the episodes table, taking every appearance with it.
func (r *EpisodeRepo) DeleteAll(ctx context.Context) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	if err = execDelete(ctx, tx, sq.Delete("appearances")); err != nil {
		return err
	}
	return execDelete(ctx, tx, sq.Delete("episodes"))
}

func getEpisode(ctx context.Context, db queryer, id uint64) (*model.Episode, error) {
	q, args, err := sq.Select(episodeColumns...).From("episodes").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var e model.Episode
	if err := db.QueryRowContext(ctx, q, args...).Scan(&e.ID, &e.Date, &e.Number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEpisodeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func execDelete(ctx context.Context, db queryer, b sq.DeleteBuilder) error {
	q, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, q, args...)
	return err
}
