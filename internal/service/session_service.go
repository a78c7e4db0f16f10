package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"minesweeper/internal/domain"
	"minesweeper/internal/game"
	"minesweeper/internal/logger"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// HistoryRecorder persists finished games.
type HistoryRecorder interface {
	Create(ctx context.Context, rec *domain.GameRecord) error
}

// ChangeNotifier is told about every successful board change. It is called
// with the session lock held, so notifications arrive in mutation order and
// must not block.
type ChangeNotifier interface {
	Broadcast(sessionID string, snap game.Snapshot)
}

// SessionConfig holds limits for SessionService
type SessionConfig struct {
	MaxWidth  int
	MaxHeight int
	TTL       time.Duration
	// BoardOptions are applied to every new board.
	BoardOptions []game.Option
}

// Session is one player's board. The board is single-threaded, so every
// access goes through mu.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	board    *game.Board
	lastSeen time.Time
}

// SessionService manages in-memory game sessions
type SessionService struct {
	sessions map[string]*Session
	mu       sync.RWMutex

	history  HistoryRecorder
	notifier ChangeNotifier
	cfg      SessionConfig
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionService creates the service and starts idle-session cleanup.
// history may be nil.
func NewSessionService(history HistoryRecorder, cfg SessionConfig) *SessionService {
	s := newSessionService(history, cfg, time.Now)
	go s.cleanupLoop()
	return s
}

func newSessionService(history HistoryRecorder, cfg SessionConfig, now func() time.Time) *SessionService {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &SessionService{
		sessions: make(map[string]*Session),
		history:  history,
		cfg:      cfg,
		now:      now,
		stop:     make(chan struct{}),
	}
}

// TTL is how long an idle session is kept.
func (s *SessionService) TTL() time.Duration {
	return s.cfg.TTL
}

// Create starts a new Fresh board
func (s *SessionService) Create(ctx context.Context, width, height, mines int) (*Session, game.Snapshot, error) {
	if (s.cfg.MaxWidth > 0 && width > s.cfg.MaxWidth) || (s.cfg.MaxHeight > 0 && height > s.cfg.MaxHeight) {
		return nil, game.Snapshot{}, fmt.Errorf("%w: board %dx%d exceeds %dx%d", game.ErrInvalidConfiguration, width, height, s.cfg.MaxWidth, s.cfg.MaxHeight)
	}

	board, err := game.NewBoard(width, height, mines, s.cfg.BoardOptions...)
	if err != nil {
		return nil, game.Snapshot{}, err
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		board:     board,
		lastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	ActiveSessions.Set(float64(n))

	logger.WithContext(ctx).Info("session created", "session_id", sess.ID, "width", width, "height", height, "mines", mines)
	return sess, board.Snapshot(), nil
}

// SetNotifier installs the change notifier. Call it before serving requests.
func (s *SessionService) SetNotifier(n ChangeNotifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

func (s *SessionService) getNotifier() ChangeNotifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifier
}

// Get returns a session by id
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// View reads the board without changing it
func (s *SessionService) View(id string) (game.Snapshot, error) {
	sess, err := s.Get(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.board.Snapshot(), nil
}

// LeftClick reveals a cell
func (s *SessionService) LeftClick(ctx context.Context, id string, col, row int) (game.Snapshot, error) {
	Clicks.WithLabelValues("left").Inc()
	return s.mutate(ctx, id, func(b *game.Board) error {
		return b.LeftClick(col, row)
	})
}

// RightClick toggles a flag
func (s *SessionService) RightClick(ctx context.Context, id string, col, row int) (game.Snapshot, error) {
	Clicks.WithLabelValues("right").Inc()
	return s.mutate(ctx, id, func(b *game.Board) error {
		return b.RightClick(col, row)
	})
}

// Restart resets a session to a Fresh board of the same shape
func (s *SessionService) Restart(ctx context.Context, id string) (game.Snapshot, error) {
	return s.mutate(ctx, id, func(b *game.Board) error {
		b.Restart()
		return nil
	})
}

func (s *SessionService) mutate(ctx context.Context, id string, fn func(*game.Board) error) (game.Snapshot, error) {
	sess, err := s.Get(id)
	if err != nil {
		return game.Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lastSeen = s.now()
	before := sess.board.Phase()
	if err := fn(sess.board); err != nil {
		return sess.board.Snapshot(), err
	}
	after := sess.board.Phase()

	if before != after {
		log := logger.WithContext(ctx).With("session_id", sess.ID)
		log.Debug("phase changed", "from", before.String(), "to", after.String())
		if before == game.Fresh && after != game.Fresh {
			GamesStarted.Inc()
		}
		if !before.Over() && after.Over() {
			s.recordResult(sess)
		}
	}

	snap := sess.board.Snapshot()
	if n := s.getNotifier(); n != nil {
		n.Broadcast(sess.ID, snap)
	}
	return snap, nil
}

// recordResult writes a finished game to history. Caller holds sess.mu.
func (s *SessionService) recordResult(sess *Session) {
	b := sess.board
	result := domain.GameResultLose
	if b.Phase() == game.Won {
		result = domain.GameResultWin
	}
	GamesFinished.WithLabelValues(string(result)).Inc()
	logger.Info("game finished", "session_id", sess.ID, "result", result, "elapsed_seconds", b.ElapsedSeconds())

	if s.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec := &domain.GameRecord{
		SessionID:      sess.ID,
		Width:          b.Width(),
		Height:         b.Height(),
		Mines:          b.Mines(),
		Result:         result,
		ElapsedSeconds: b.ElapsedSeconds(),
		RevealedCells:  b.RevealedCount(),
		FlagsPlaced:    b.FlagsPlaced(),
	}
	if err := s.history.Create(ctx, rec); err != nil {
		logger.Error("failed to record game", "session_id", sess.ID, "error", err)
	}
}

// Delete drops a session
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	ActiveSessions.Set(float64(n))
	return nil
}

// ActiveCount returns the number of sessions in memory
func (s *SessionService) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the cleanup goroutine
func (s *SessionService) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionService) cleanupLoop() {
	interval := s.cfg.TTL / 12
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.evictIdle(); n > 0 {
				logger.Info("evicted idle sessions", "count", n)
			}
		case <-s.stop:
			return
		}
	}
}

// evictIdle removes sessions not touched within the TTL. Session locks are
// taken outside the service lock, so a session busy writing history does not
// stall lookups of the others.
func (s *SessionService) evictIdle() int {
	now := s.now()

	s.mu.RLock()
	all := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.mu.RUnlock()

	var stale []*Session
	for _, sess := range all {
		sess.mu.Lock()
		idle := now.Sub(sess.lastSeen)
		sess.mu.Unlock()
		if idle > s.cfg.TTL {
			stale = append(stale, sess)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for _, sess := range stale {
		if s.sessions[sess.ID] == sess {
			delete(s.sessions, sess.ID)
			evicted++
		}
	}
	ActiveSessions.Set(float64(len(s.sessions)))
	return evicted
}
