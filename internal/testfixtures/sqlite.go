package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence/sqlite"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// storage instance for integration-style persistence tests.
type SQLiteHarness struct {
	Storage       *sqlite.Storage
	Events        persistence.EventRepository
	Venues        persistence.VenueRepository
	Sessions      persistence.SessionRepository
	Presentations persistence.PresentationRepository
	Participants  persistence.ParticipantRepository
	Reader        scheduling.Reader
	Transactor    persistence.Transactor

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// will also register a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "program.db")

	storage, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Storage:       storage,
		Events:        sqlite.NewEventRepository(storage),
		Venues:        sqlite.NewVenueRepository(storage),
		Sessions:      sqlite.NewSessionRepository(storage),
		Presentations: sqlite.NewPresentationRepository(storage),
		Participants:  sqlite.NewParticipantRepository(storage),
		Reader:        sqlite.NewProgramReader(storage),
		Transactor:    storage,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
