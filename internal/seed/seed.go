// Package seed fills an empty catalog with sample data, either from
// episodes.csv / guests.csv or from a built-in fallback set.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/database"
	"github.com/iliyamo/lateshow-api/internal/model"
	"github.com/iliyamo/lateshow-api/internal/repository"
)

// File names looked up in the seed directory.
const (
	EpisodesFile = "episodes.csv"
	GuestsFile   = "guests.csv"
)

var fallbackEpisodes = []model.Episode{
	{Date: "1/11/99", Number: 1},
	{Date: "1/12/99", Number: 2},
	{Date: "1/13/99", Number: 3},
	{Date: "1/14/99", Number: 4},
	{Date: "1/15/99", Number: 5},
}

var fallbackGuests = []model.Guest{
	{Name: "Michael J. Fox", Occupation: "actor"},
	{Name: "Sandra Bernhard", Occupation: "Comedian"},
	{Name: "Tracey Ullman", Occupation: "television actress"},
	{Name: "Gillian Anderson", Occupation: "film actress"},
	{Name: "David Duchovny", Occupation: "television actor"},
}

// sampleLink ties the n-th seeded episode to the n-th seeded guest.
type sampleLink struct {
	rating  int
	episode int
	guest   int
}

var sampleAppearances = []sampleLink{
	{4, 0, 0},
	{5, 0, 1},
	{3, 1, 1},
	{4, 1, 2},
	{5, 2, 0},
	{4, 2, 2},
}

// Result counts what a seed run inserted.
type Result struct {
	Episodes    int
	Guests      int
	Appearances int
}

// Seeder wipes and repopulates the catalog.
type Seeder struct {
	db          *sql.DB
	driver      string
	log         *zap.Logger
	episodes    *repository.EpisodeRepo
	guests      *repository.GuestRepo
	appearances *repository.AppearanceRepo
}

// New builds a Seeder over db.  driver is the config.Driver* value db was
// opened with.
func New(db *sql.DB, driver string, log *zap.Logger) *Seeder {
	return &Seeder{
		db:          db,
		driver:      driver,
		log:         log,
		episodes:    repository.NewEpisodeRepo(db),
		guests:      repository.NewGuestRepo(db),
		appearances: repository.NewAppearanceRepo(db),
	}
}

// Run clears all three tables and seeds them again.  CSV files in dir are
// used when present; a missing file selects the fallback data for that
// table.  The sample appearances always link the first three episodes and
// guests, so fewer than three of either is an error.
func (s *Seeder) Run(ctx context.Context, dir string) (Result, error) {
	var res Result

	s.log.Info("clearing existing data")
	if err := s.appearances.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("clear appearances: %w", err)
	}
	if err := s.episodes.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("clear episodes: %w", err)
	}
	if err := s.guests.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("clear guests: %w", err)
	}
	if err := database.ResetSequences(ctx, s.db, s.driver); err != nil {
		return res, err
	}

	episodes, err := s.loadEpisodes(dir)
	if err != nil {
		return res, err
	}
	for i := range episodes {
		if err := s.episodes.Create(ctx, &episodes[i]); err != nil {
			return res, err
		}
	}
	res.Episodes = len(episodes)

	guests, err := s.loadGuests(dir)
	if err != nil {
		return res, err
	}
	for i := range guests {
		if err := s.guests.Create(ctx, &guests[i]); err != nil {
			return res, err
		}
	}
	res.Guests = len(guests)

	if len(episodes) < 3 || len(guests) < 3 {
		return res, fmt.Errorf("sample appearances need at least 3 episodes and 3 guests, have %d and %d", len(episodes), len(guests))
	}
	s.log.Info("creating sample appearances")
	for _, link := range sampleAppearances {
		a, err := model.NewAppearance(link.rating, episodes[link.episode].ID, guests[link.guest].ID)
		if err != nil {
			return res, err
		}
		if err := s.appearances.Create(ctx, a); err != nil {
			return res, err
		}
		res.Appearances++
	}

	s.log.Info("database seeded",
		zap.Int("episodes", res.Episodes),
		zap.Int("guests", res.Guests),
		zap.Int("appearances", res.Appearances))
	return res, nil
}

func (s *Seeder) loadEpisodes(dir string) ([]model.Episode, error) {
	path := filepath.Join(dir, EpisodesFile)
	episodes, err := ReadEpisodes(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Info("csv file not found, using fallback data", zap.String("file", path))
		return append([]model.Episode(nil), fallbackEpisodes...), nil
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("reading episodes from csv", zap.String("file", path))
	return episodes, nil
}

func (s *Seeder) loadGuests(dir string) ([]model.Guest, error) {
	path := filepath.Join(dir, GuestsFile)
	guests, err := ReadGuests(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Info("csv file not found, using fallback data", zap.String("file", path))
		return append([]model.Guest(nil), fallbackGuests...), nil
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("reading guests from csv", zap.String("file", path))
	return guests, nil
}
