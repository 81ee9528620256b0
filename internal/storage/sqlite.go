package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"tabtime/internal/memo"
	"tabtime/internal/task"
	"tabtime/internal/timelog"
	"tabtime/internal/todo"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every collection in one database file. Rows carry a
// position column so the in-memory order survives a round trip.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSQLiteStore(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, logger: logger.With().Str("store", "sqlite").Logger()}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) init() error {
	queries := []string{`
	CREATE TABLE IF NOT EXISTS tasks (
		position INTEGER NOT NULL,
		name TEXT PRIMARY KEY,
		color TEXT NOT NULL DEFAULT ''
	)`, `
	CREATE TABLE IF NOT EXISTS time_logs (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		task TEXT NOT NULL,
		started_at TEXT NOT NULL,
		stopped_at TEXT NOT NULL,
		focus_score INTEGER NOT NULL DEFAULT 0,
		break_activities TEXT NOT NULL DEFAULT '[]'
	)`, `
	CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		text TEXT NOT NULL,
		done INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`, `
	CREATE TABLE IF NOT EXISTS memos (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		content TEXT NOT NULL,
		pinned INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) LoadTasks(ctx context.Context) []task.Task {
	rows, err := s.db.QueryContext(ctx, "SELECT name, color FROM tasks ORDER BY position")
	if err != nil {
		s.loadFailed("tasks", err)
		return []task.Task{}
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.Name, &t.Color); err != nil {
			s.loadFailed("tasks", err)
			return []task.Task{}
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []task.Task) error {
	return s.replace(ctx, "tasks", func(tx *sql.Tx) error {
		for i, t := range tasks {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO tasks (position, name, color) VALUES (?, ?, ?)",
				i, t.Name, t.Color,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadTimeLogs(ctx context.Context) []timelog.Entry {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, task, started_at, stopped_at, focus_score, break_activities FROM time_logs ORDER BY position",
	)
	if err != nil {
		s.loadFailed("time_logs", err)
		return []timelog.Entry{}
	}
	defer rows.Close()

	entries := []timelog.Entry{}
	for rows.Next() {
		var e timelog.Entry
		var startedAt, stoppedAt, breaks string
		if err := rows.Scan(&e.ID, &e.Task, &startedAt, &stoppedAt, &e.FocusScore, &breaks); err != nil {
			s.loadFailed("time_logs", err)
			return []timelog.Entry{}
		}
		e.Start, _ = time.Parse(time.RFC3339Nano, startedAt)
		e.End, _ = time.Parse(time.RFC3339Nano, stoppedAt)
		_ = json.Unmarshal([]byte(breaks), &e.BreakActivities)
		entries = append(entries, e)
	}
	return entries
}

func (s *SQLiteStore) SaveTimeLogs(ctx context.Context, entries []timelog.Entry) error {
	return s.replace(ctx, "time_logs", func(tx *sql.Tx) error {
		for i, e := range entries {
			breaks, err := json.Marshal(e.BreakActivities)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO time_logs (id, position, task, started_at, stopped_at, focus_score, break_activities) VALUES (?, ?, ?, ?, ?, ?, ?)",
				e.ID, i, e.Task,
				e.Start.Format(time.RFC3339Nano),
				e.End.Format(time.RFC3339Nano),
				e.FocusScore, string(breaks),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadTodos(ctx context.Context) []todo.Item {
	rows, err := s.db.QueryContext(ctx, "SELECT id, text, done, created_at FROM todos ORDER BY position")
	if err != nil {
		s.loadFailed("todos", err)
		return []todo.Item{}
	}
	defer rows.Close()

	items := []todo.Item{}
	for rows.Next() {
		var it todo.Item
		var done int
		var createdAt string
		if err := rows.Scan(&it.ID, &it.Text, &done, &createdAt); err != nil {
			s.loadFailed("todos", err)
			return []todo.Item{}
		}
		it.Done = done == 1
		it.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		items = append(items, it)
	}
	return items
}

func (s *SQLiteStore) SaveTodos(ctx context.Context, items []todo.Item) error {
	return s.replace(ctx, "todos", func(tx *sql.Tx) error {
		for i, it := range items {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO todos (id, position, text, done, created_at) VALUES (?, ?, ?, ?, ?)",
				it.ID, i, it.Text, boolInt(it.Done), it.CreatedAt.Format(time.RFC3339Nano),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) LoadMemos(ctx context.Context) []memo.Memo {
	rows, err := s.db.QueryContext(ctx, "SELECT id, content, pinned, created_at FROM memos ORDER BY position")
	if err != nil {
		s.loadFailed("memos", err)
		return []memo.Memo{}
	}
	defer rows.Close()

	memos := []memo.Memo{}
	for rows.Next() {
		var m memo.Memo
		var pinned int
		var createdAt string
		if err := rows.Scan(&m.ID, &m.Content, &pinned, &createdAt); err != nil {
			s.loadFailed("memos", err)
			return []memo.Memo{}
		}
		m.Pinned = pinned == 1
		m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		memos = append(memos, m)
	}
	return memos
}

func (s *SQLiteStore) SaveMemos(ctx context.Context, memos []memo.Memo) error {
	return s.replace(ctx, "memos", func(tx *sql.Tx) error {
		for i, m := range memos {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO memos (id, position, content, pinned, created_at) VALUES (?, ?, ?, ?, ?)",
				m.ID, i, m.Content, boolInt(m.Pinned), m.CreatedAt.Format(time.RFC3339Nano),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// replace clears table and refills it inside one transaction. table is
// always one of the constant names above.
func (s *SQLiteStore) replace(ctx context.Context, table string, fill func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	if err := fill(tx); err != nil {
		return fmt.Errorf("failed to write %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}

func (s *SQLiteStore) loadFailed(table string, err error) {
	s.logger.Warn().Err(err).Str("table", table).Msg("failed to load, starting empty")
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
