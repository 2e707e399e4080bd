package repository

import "github.com/jmoiron/sqlx"

// DBRepository is the Postgres settings store.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{
		db: db,
	}
}
