package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/order-intake/internal/entity"
)

// SQLiteTranscripts implements TranscriptRepository using SQLite. ULID
// message ids make per-customer append order explicit and sortable; the
// monotonic entropy source keeps ids minted within the same millisecond in
// mint order, so sorting by id is sorting by append order.
type SQLiteTranscripts struct {
	db *sql.DB

	mu      sync.Mutex // guards entropy, which is not safe for concurrent use
	entropy *ulid.MonotonicEntropy
}

// NewSQLiteTranscripts opens or creates a SQLite database at the given path.
func NewSQLiteTranscripts(dbPath string) (*SQLiteTranscripts, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteTranscripts{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteTranscripts) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteTranscripts) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id          TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		direction   TEXT NOT NULL,
		text        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_customer ON messages(customer_id, id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one turn. The ULID primary key is the ordering key.
func (s *SQLiteTranscripts) Append(ctx context.Context, customerID string, direction entity.Direction, text string) (entity.Turn, error) {
	now := time.Now().UTC()
	turn := entity.Turn{
		ID:        s.newID(),
		Direction: direction,
		Text:      text,
		Timestamp: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, customer_id, direction, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		turn.ID, customerID, string(turn.Direction), turn.Text, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return entity.Turn{}, fmt.Errorf("append message: %w", err)
	}
	return turn, nil
}

// ReadAll returns the transcript ascending by message id.
func (s *SQLiteTranscripts) ReadAll(ctx context.Context, customerID string) ([]entity.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, direction, text, created_at FROM messages WHERE customer_id = ? ORDER BY id ASC`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	defer rows.Close()

	var turns []entity.Turn
	for rows.Next() {
		var t entity.Turn
		var dir, created string
		if err := rows.Scan(&t.ID, &dir, &t.Text, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		t.Direction = entity.Direction(dir)
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			t.Timestamp = ts
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Clear deletes a customer's transcript.
func (s *SQLiteTranscripts) Clear(ctx context.Context, customerID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE customer_id = ?`, customerID)
	if err != nil {
		return fmt.Errorf("clear transcript: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteTranscripts) Close() error {
	return s.db.Close()
}
