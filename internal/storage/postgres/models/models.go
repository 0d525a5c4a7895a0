package models

import (
	"context"
	"errors"
	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/storage"
	"cinerate/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Models struct {
	Movie     *MovieModel
	Review    *ReviewModel
	Watchlist *WatchlistModel
	Aggregate *AggregateModel
}

func New(db *postgres.PostgresDB) *Models {
	return &Models{
		Movie:     &MovieModel{db.Conn},
		Review:    &ReviewModel{db.Conn},
		Watchlist: &WatchlistModel{db.Conn},
		Aggregate: &AggregateModel{db.Conn},
	}
}

// mapWriteErr turns constraint violations into storage errors.
// A missing foreign key means the referenced movie does not exist.
func mapWriteErr(err error) error {
	var pgxErr *pgconn.PgError
	switch {
	case errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode:
		return storage.ErrConflict
	case errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrForeignKeyCode:
		return storage.ErrNotFound
	case errors.Is(err, pgx.ErrNoRows):
		return storage.ErrNotFound
	}
	return err
}

// totalFor resolves the total row count when a page came back empty
// and count(*) OVER() had no row to ride on.
func totalFor(ctx context.Context, db *pgxpool.Pool, f filters.Filters, countQuery string, args ...any) (int, error) {
	if f.Offset() == 0 {
		return 0, nil
	}
	var total int
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
