package main

import (
	"database/sql"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	_ "github.com/lib/pq"
)

const (
	dialect             = "postgres"
	defaultMigrationDir = "./db/migrations"
)

func main() {
	// Load .env if present, don't fail if missing
	_ = godotenv.Load()

	var (
		downFlag   = flag.Bool("down", false, "Roll back the latest settings table migration")
		statusFlag = flag.Bool("status", false, "Print the migration status and exit")
		dirFlag    = flag.String("dir", defaultMigrationDir, "Directory holding the goose migrations")
		dbConn     = os.Getenv("DB_CONN")
	)
	flag.Parse()

	if dbConn == "" {
		logrus.Fatal("DB_CONN environment variable is required")
	}

	db, err := sql.Open(dialect, dbConn)
	if err != nil {
		logrus.Fatalf("cannot open %s db connection: %v", dialect, err)
	}
	defer db.Close()

	if err = runMigrations(db, *dirFlag, *downFlag, *statusFlag); err != nil {
		logrus.Fatalf("Migration failed: %+v", err)
	}
}

func runMigrations(db *sql.DB, dir string, migrateDown, statusOnly bool) error {
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Errorf("cannot set %s dialect: %v", dialect, err)
	}

	switch {
	case statusOnly:
		if err := goose.Status(db, dir); err != nil {
			return errors.Wrap(err, "goose.Status")
		}
		return nil

	case migrateDown:
		if err := goose.Down(db, dir); err != nil {
			return errors.Errorf("cannot down %s migrations: %v", dialect, err)
		}
		logrus.Info("Migrations rolled back successfully")
		return nil
	}

	if err := goose.Up(db, dir, goose.WithAllowMissing()); err != nil {
		return errors.Errorf("cannot up %s migrations: %v", dialect, err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return errors.Wrap(err, "goose.GetDBVersion")
	}
	logrus.Infof("Migrations applied successfully, settings schema at version %d", version)

	return nil
}
