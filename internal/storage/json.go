package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"tabtime/internal/fsutil"
	"tabtime/internal/memo"
	"tabtime/internal/task"
	"tabtime/internal/timelog"
	"tabtime/internal/todo"
)

// JSONStore keeps one indented JSON document per collection.
type JSONStore struct {
	dir    string
	logger zerolog.Logger
}

func NewJSONStore(dir string, logger zerolog.Logger) *JSONStore {
	return &JSONStore{dir: dir, logger: logger.With().Str("store", "json").Logger()}
}

func (s *JSONStore) Dir() string {
	return s.dir
}

func (s *JSONStore) LoadTasks(ctx context.Context) []task.Task {
	return loadDocument[task.Task](s, TasksFile)
}

func (s *JSONStore) SaveTasks(ctx context.Context, tasks []task.Task) error {
	return saveDocument(s, TasksFile, tasks)
}

func (s *JSONStore) LoadTimeLogs(ctx context.Context) []timelog.Entry {
	return loadDocument[timelog.Entry](s, TimeLogsFile)
}

func (s *JSONStore) SaveTimeLogs(ctx context.Context, entries []timelog.Entry) error {
	return saveDocument(s, TimeLogsFile, entries)
}

func (s *JSONStore) LoadTodos(ctx context.Context) []todo.Item {
	return loadDocument[todo.Item](s, TodosFile)
}

func (s *JSONStore) SaveTodos(ctx context.Context, items []todo.Item) error {
	return saveDocument(s, TodosFile, items)
}

func (s *JSONStore) LoadMemos(ctx context.Context) []memo.Memo {
	return loadDocument[memo.Memo](s, MemosFile)
}

func (s *JSONStore) SaveMemos(ctx context.Context, memos []memo.Memo) error {
	return saveDocument(s, MemosFile, memos)
}

func (s *JSONStore) Close() error {
	return nil
}

// loadDocument decodes a JSON array. A corrupt file is treated as empty; it
// will be overwritten by the next save.
func loadDocument[T any](s *JSONStore, name string) []T {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", path).Msg("failed to read document, starting empty")
		}
		return []T{}
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("corrupt document, starting empty")
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func saveDocument[T any](s *JSONStore, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return fsutil.WriteFileAtomic(filepath.Join(s.dir, name), data, 0o644)
}
