package models

import (
	"context"
	"errors"
	"fmt"
	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const watchlistColumns = `id, user_id, movie_id, created_at`

type WatchlistModel struct {
	DB *pgxpool.Pool
}

func (m *WatchlistModel) Insert(ctx context.Context, userID, movieID int64) (*models.WatchlistEntry, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO watchlist (user_id, movie_id) VALUES ($1, $2) RETURNING `+watchlistColumns,
		userID,
		movieID,
	)
	entry, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.WatchlistEntry])
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return &entry, nil
}

func (m *WatchlistModel) Get(ctx context.Context, userID, movieID int64) (*models.WatchlistEntry, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT `+watchlistColumns+` FROM watchlist WHERE user_id = $1 AND movie_id = $2`,
		userID,
		movieID,
	)
	if err != nil {
		return nil, err
	}
	entry, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.WatchlistEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (m *WatchlistModel) Delete(ctx context.Context, userID, movieID int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM watchlist WHERE user_id = $1 AND movie_id = $2", userID, movieID)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *WatchlistModel) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := m.DB.QueryRow(ctx, `SELECT count(*) FROM watchlist WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (m *WatchlistModel) List(ctx context.Context, userID int64, f filters.Filters) ([]models.WatchlistItem, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER(),
		m.id, m.title, m.year, m.runtime, m.genres, m.version,
		m.average_rating, m.total_reviews, m.created_at,
		w.created_at AS added_at
	FROM watchlist w
	JOIN movies m ON m.id = w.movie_id
	WHERE w.user_id = $1
	ORDER BY %s %s, m.id ASC
	LIMIT $2 OFFSET $3
	`, f.SortColumn(), f.SortDirection())
	rows, _ := m.DB.Query(ctx, query, userID, f.Limit(), f.Offset())
	type row struct {
		Count int `db:"count"`
		models.WatchlistItem
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		total, err := totalFor(ctx, m.DB, f, `SELECT count(*) FROM watchlist WHERE user_id = $1`, userID)
		return []models.WatchlistItem{}, total, err
	}
	items := make([]models.WatchlistItem, 0, len(outputRows))
	for _, row := range outputRows {
		items = append(items, row.WatchlistItem)
	}
	return items, outputRows[0].Count, nil
}
