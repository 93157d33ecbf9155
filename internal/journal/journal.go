// Package journal appends every processed request to a SQLite table.
// Game state is not restored from it; on start it only reports the last
// request it holds.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/pixil98/go-realms/internal/server"
)

const defaultBuffer = 256

// Record is one journal row.
type Record struct {
	Id      int64  `db:"id"`
	At      int64  `db:"at"`
	Client  string `db:"client"`
	Request string `db:"request"`
	Outcome string `db:"outcome"`
	Reason  string `db:"reason"`
}

func (r Record) Time() time.Time {
	return time.Unix(0, r.At).UTC()
}

type Journal struct {
	db      *sqlx.DB
	entries chan server.AuditEntry
}

type JournalOpt func(*Journal)

// WithBuffer sets how many entries may wait to be written. Entries beyond
// it are dropped.
func WithBuffer(n int) JournalOpt {
	return func(j *Journal) {
		j.entries = make(chan server.AuditEntry, n)
	}
}

// Open opens or creates the journal database at path.
func Open(path string, opts ...JournalOpt) (*Journal, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	j := &Journal{
		db:      db,
		entries: make(chan server.AuditEntry, defaultBuffer),
	}
	for _, opt := range opts {
		opt(j)
	}

	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		at INTEGER NOT NULL,
		client TEXT NOT NULL,
		request TEXT NOT NULL,
		outcome TEXT NOT NULL,
		reason TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_client ON requests(client);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Notify queues e for writing without blocking the caller.
func (j *Journal) Notify(ctx context.Context, e server.AuditEntry) {
	select {
	case j.entries <- e:
	default:
		slog.WarnContext(ctx, "journal full, dropping entry", "request", e.Request)
	}
}

// Start writes queued entries until ctx is canceled, then flushes what is
// left and closes the database.
func (j *Journal) Start(ctx context.Context) error {
	defer j.db.Close()

	if last, err := j.Recent(ctx, 1); err == nil && len(last) > 0 {
		slog.InfoContext(ctx, "journal resumed", "last_request", last[0].Request, "at", last[0].Time())
	}

	for {
		select {
		case e := <-j.entries:
			j.write(ctx, e)
		case <-ctx.Done():
			for {
				select {
				case e := <-j.entries:
					j.write(ctx, e)
				default:
					return nil
				}
			}
		}
	}
}

func (j *Journal) write(ctx context.Context, e server.AuditEntry) {
	if err := j.Append(context.WithoutCancel(ctx), e); err != nil {
		slog.WarnContext(ctx, "writing journal entry", "error", err)
	}
}

// Append writes e immediately.
func (j *Journal) Append(ctx context.Context, e server.AuditEntry) error {
	_, err := j.db.NamedExecContext(ctx,
		`INSERT INTO requests (at, client, request, outcome, reason)
		 VALUES (:at, :client, :request, :outcome, :reason)`,
		Record{
			At:      e.At.UnixNano(),
			Client:  e.Client.String(),
			Request: e.Request,
			Outcome: string(e.Outcome),
			Reason:  e.Reason,
		})
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// Recent returns up to n of the newest records, oldest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Record, error) {
	var records []Record
	err := j.db.SelectContext(ctx, &records,
		`SELECT id, at, client, request, outcome, reason FROM (
			SELECT * FROM requests ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, n)
	if err != nil {
		return nil, fmt.Errorf("select requests: %w", err)
	}
	return records, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}
