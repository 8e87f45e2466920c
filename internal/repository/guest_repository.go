package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/iliyamo/lateshow-api/internal/model"
)

// ErrGuestNotFound is returned when a guest lookup fails.
var ErrGuestNotFound = errors.New("guest not found")

var guestColumns = []string{"id", "name", "occupation"}

// GuestRepo provides methods to create, read and delete guests.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the given DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo {
	return &GuestRepo{db: db}
}

// Create inserts a new guest and sets g.ID.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	q, args, err := sq.Insert("guests").
		Columns("name", "occupation").
		Values(g.Name, g.Occupation).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("insert guest: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID retrieves a guest by id.  It returns ErrGuestNotFound when no row
// is found.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	return getGuest(ctx, r.db, id)
}

// GetWithAppearances retrieves a guest together with its appearances, each
// carrying the episode it happened on.
func (r *GuestRepo) GetWithAppearances(ctx context.Context, id uint64) (*model.Guest, error) {
	g, err := getGuest(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	q, args, err := sq.Select("a.id", "a.rating", "a.episode_id", "a.guest_id", "e.id", "e.date", "e.number").
		From("appearances a").
		Join("episodes e ON e.id = a.episode_id").
		Where(sq.Eq{"a.guest_id": id}).
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

	g.Appearances = make([]model.Appearance, 0)
	for rows.Next() {
		var a model.Appearance
		e := new(model.Episode)
		if err := rows.Scan(&a.ID, &a.Rating, &a.EpisodeID, &a.GuestID, &e.ID, &e.Date, &e.Number); err != nil {
			return nil, err
		}
		a.Episode = e
		g.Appearances = append(g.Appearances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// ListAll returns every guest ordered by id.
func (r *GuestRepo) ListAll(ctx context.Context) ([]*model.Guest, error) {
	q, args, err := sq.Select(guestColumns...).From("guests").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Guest, 0)
	for rows.Next() {
		g := new(model.Guest)
		if err := rows.Scan(&g.ID, &g.Name, &g.Occupation); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID removes a guest and its appearances in one transaction.
// Returns ErrGuestNotFound when the guest does not exist.
func (r *GuestRepo) DeleteByID(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	if _, err = getGuest(ctx, tx, id); err != nil {
		return err
	}
	if err = execDelete(ctx, tx, sq.Delete("appearances").Where(sq.Eq{"guest_id": id})); err != nil {
		return err
	}
	return execDelete(ctx, tx, sq.Delete("guests").Where(sq.Eq{"id": id}))
}

// DeleteAll empties the guests table along with every appearance.
func (r *GuestRepo) DeleteAll(ctx context.Context) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer finishTx(tx, &err)

	if err = execDelete(ctx, tx, sq.Delete("appearances")); err != nil {
		return err
	}
	return execDelete(ctx, tx, sq.Delete("guests"))
}

func getGuest(ctx context.Context, db queryer, id uint64) (*model.Guest, error) {
	q, args, err := sq.Select(guestColumns...).From("guests").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var g model.Guest
	if err := db.QueryRowContext(ctx, q, args...).Scan(&g.ID, &g.Name, &g.Occupation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}
