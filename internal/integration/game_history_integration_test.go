package integration

import (
	"context"
	"testing"

	"minesweeper/internal/domain"
	"minesweeper/internal/repository"

	"github.com/google/uuid"
)

func TestGameHistoryRepository_CreateAndQuery(t *testing.T) {
	db := connect(t)
	repo := repository.NewGameHistoryRepository(db)
	ctx := context.Background()

	sessionID := uuid.NewString()
	win := &domain.GameRecord{
		SessionID:      sessionID,
		Width:          9,
		Height:         9,
		Mines:          10,
		Result:         domain.GameResultWin,
		ElapsedSeconds: 42,
		RevealedCells:  71,
		FlagsPlaced:    10,
	}
	lose := &domain.GameRecord{
		SessionID:      sessionID,
		Width:          9,
		Height:         9,
		Mines:          10,
		Result:         domain.GameResultLose,
		ElapsedSeconds: 7,
		RevealedCells:  12,
	}

	before, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	for _, rec := range []*domain.GameRecord{win, lose} {
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("create: %v", err)
		}
		if rec.ID == 0 || rec.CreatedAt.IsZero() {
			t.Fatalf("create did not fill id/created_at: %+v", rec)
		}
	}

	games, err := repo.BySession(ctx, sessionID)
	if err != nil {
		t.Fatalf("by session: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games for session, got %d", len(games))
	}

	recent, err := repo.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent game, got %d", len(recent))
	}

	after, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if after.TotalGames != before.TotalGames+2 || after.Wins != before.Wins+1 || after.Losses != before.Losses+1 {
		t.Fatalf("stats did not move: before %+v after %+v", before, after)
	}
	if after.BestWinSeconds == nil || *after.BestWinSeconds > 42 {
		t.Fatalf("best win = %v; want <= 42", after.BestWinSeconds)
	}
}
