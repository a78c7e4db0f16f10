package repository

import (
	"context"

	"minesweeper/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameHistoryRepository struct {
	db *pgxpool.Pool
}

func NewGameHistoryRepository(db *pgxpool.Pool) *GameHistoryRepository {
	return &GameHistoryRepository{db: db}
}

// Create stores a finished game
func (r *GameHistoryRepository) Create(ctx context.Context, rec *domain.GameRecord) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO game_history
			(session_id, width, height, mines, result, elapsed_seconds, revealed_cells, flags_placed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		rec.SessionID,
		rec.Width,
		rec.Height,
		rec.Mines,
		rec.Result,
		rec.ElapsedSeconds,
		rec.RevealedCells,
		rec.FlagsPlaced,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// Recent returns the latest finished games, newest first
func (r *GameHistoryRepository) Recent(ctx context.Context, limit int) ([]*domain.GameRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, width, height, mines, result, elapsed_seconds,
				revealed_cells, flags_placed, created_at
		 FROM game_history
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// BySession returns every finished game of one session, newest first
func (r *GameHistoryRepository) BySession(ctx context.Context, sessionID string) ([]*domain.GameRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, width, height, mines, result, elapsed_seconds,
				revealed_cells, flags_placed, created_at
		 FROM game_history
		 WHERE session_id = $1
		 ORDER BY created_at DESC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// Stats aggregates all recorded games
func (r *GameHistoryRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{}
	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE result = 'win'),
			COUNT(*) FILTER (WHERE result = 'lose'),
			MIN(elapsed_seconds) FILTER (WHERE result = 'win')
		 FROM game_history`,
	).Scan(&stats.TotalGames, &stats.Wins, &stats.Losses, &stats.BestWinSeconds)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *GameHistoryRepository) scanRows(rows pgx.Rows) ([]*domain.GameRecord, error) {
	var res []*domain.GameRecord
	for rows.Next() {
		rec := &domain.GameRecord{}
		if err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.Width,
			&rec.Height,
			&rec.Mines,
			&rec.Result,
			&rec.ElapsedSeconds,
			&rec.RevealedCells,
			&rec.FlagsPlaced,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
