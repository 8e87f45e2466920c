package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/iliyamo/lateshow-api/internal/model"
)

// appearanceJoin selects an appearance with its episode and guest.
func appearanceJoin() sq.SelectBuilder {
	return sq.Select(
		"a.id", "a.rating", "a.episode_id", "a.guest_id",
		"e.id", "e.date", "e.number",
		"g.id", "g.name", "g.occupation",
	).
		From("appearances a").
		Join("episodes e ON e.id = a.episode_id").
		Join("guests g ON g.id = a.guest_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppearance(row rowScanner) (*model.Appearance, error) {
	a := &model.Appearance{Episode: new(model.Episode), Guest: new(model.Guest)}
	err := row.Scan(
		&a.ID, &a.Rating, &a.EpisodeID, &a.GuestID,
		&a.Episode.ID, &a.Episode.Date, &a.Episode.Number,
		&a.Guest.ID, &a.Guest.Name, &a.Guest.Occupation,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// AppearanceRepo encapsulates queries on the appearances join table.
type AppearanceRepo struct {
	db *sql.DB
}

// NewAppearanceRepo constructs an AppearanceRepo with the provided DB handle.
func NewAppearanceRepo(db *sql.DB) *AppearanceRepo {
	return &AppearanceRepo{db: db}
}

// Create inserts a validated appearance and, in the same transaction, reads
// it back with its episode and guest so a.Episode and a.Guest are populated.
// ErrInvalidReference is returned when the episode or guest does not exist.
func (r *AppearanceRepo) Create(ctx context.Context, a *model.Appearance) (err error) {
	if err := model.ValidateRating(a.Rating); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	q, args, err := sq.Insert("appearances").
		Columns("rating", "episode_id", "guest_id").
		Values(a.Rating, a.EpisodeID, a.GuestID).
		ToSql()
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return fmt.Errorf("insert appearance: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	q, args, err = appearanceJoin().Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return err
	}
	stored, err := scanAppearance(tx.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The insert went through but the join lost a side.
			return ErrInvalidReference
		}
		return err
	}
	*a = *stored
	return nil
}

// ListAll returns every appearance with its episode and guest, ordered by id.
func (r *AppearanceRepo) ListAll(ctx context.Context) ([]*model.Appearance, error) {
	q, args, err := appearanceJoin().OrderBy("a.id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Appearance, 0)
	for rows.Next() {
		a, err := scanAppearance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAll removes every appearance.
func (r *AppearanceRepo) DeleteAll(ctx context.Context) error {
	return execDelete(ctx, r.db, sq.Delete("appearances"))
}
