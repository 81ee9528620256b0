// Package storage persists tasks, time logs, todos and memos. Loads never
// fail: missing or unreadable data comes back as an empty collection and the
// problem is logged. Saves always write the whole collection.
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"tabtime/internal/memo"
	"tabtime/internal/settings"
	"tabtime/internal/task"
	"tabtime/internal/timelog"
	"tabtime/internal/todo"
)

type TaskService interface {
	LoadTasks(ctx context.Context) []task.Task
	SaveTasks(ctx context.Context, tasks []task.Task) error
}

type TimeLogService interface {
	LoadTimeLogs(ctx context.Context) []timelog.Entry
	SaveTimeLogs(ctx context.Context, entries []timelog.Entry) error
}

type TodoService interface {
	LoadTodos(ctx context.Context) []todo.Item
	SaveTodos(ctx context.Context, items []todo.Item) error
}

type MemoService interface {
	LoadMemos(ctx context.Context) []memo.Memo
	SaveMemos(ctx context.Context, memos []memo.Memo) error
}

// Store bundles every collection service behind one backend.
type Store interface {
	TaskService
	TimeLogService
	TodoService
	MemoService
	Close() error
}

// File names inside the data directory.
const (
	SettingsFile = "settings.json"
	TasksFile    = "tasks.json"
	TimeLogsFile = "timelogs.json"
	TodosFile    = "todos.json"
	MemosFile    = "memos.json"
	DatabaseFile = "tabtime.db"
)

// Open returns the store for the named backend rooted at dir.
func Open(backend, dir string, logger zerolog.Logger) (Store, error) {
	switch backend {
	case "", settings.BackendJSON:
		return NewJSONStore(dir, logger), nil
	case settings.BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, DatabaseFile), logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
