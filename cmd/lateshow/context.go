package main

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/iliyamo/lateshow-api/internal/config"
	"github.com/iliyamo/lateshow-api/internal/database"
	"github.com/iliyamo/lateshow-api/internal/logging"
)

// commandContext carries what every subcommand needs.  The database is
// opened lazily so commands that never touch it (events tail) work without
// a reachable store.
type commandContext struct {
	cfg config.Config
	log *zap.Logger
	db  *sql.DB
}

func (c *commandContext) load() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logging.New(cfg.Env, cfg.LogLevel)
	return nil
}

func (c *commandContext) database() (*sql.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	db, err := database.Open(c.cfg)
	if err != nil {
		return nil, err
	}
	c.db = db
	return db, nil
}

func (c *commandContext) close() error {
	var err error
	if c.db != nil {
		err = c.db.Close()
		c.db = nil
	}
	if c.log != nil {
		_ = c.log.Sync()
	}
	return err
}
