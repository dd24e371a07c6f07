package main

import (
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"holdem-server/internal/config"
	"holdem-server/pkg/db"
)

var dialect = flag.String("dialect", "postgres", "postgres or sqlite3")

func main() {
	flag.Parse()

	cfg := config.Instance()
	d := waitForDB(db.Dialect(*dialect), dsn(cfg))
	defer d.Close()

	path := cfg.MigrationsPath + "/postgres"
	if d.Dialect == db.SQLite {
		path = cfg.MigrationsPath + "/sqlite"
	}

	if err := d.Migrate(path); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.WithField("dialect", d.Dialect).Info("migrations complete")
}

func dsn(cfg config.Config) string {
	if db.Dialect(*dialect) == db.SQLite {
		return cfg.Store.SQLitePath
	}

	return cfg.Store.PGDSN
}

func waitForDB(dialect db.Dialect, dsn string) *db.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			d, err := db.Open(dialect, dsn)
			if err == nil {
				return d
			}

			logrus.WithError(err).Debug("waiting for database")
			time.Sleep(time.Millisecond * 500)
		}
	}
}
