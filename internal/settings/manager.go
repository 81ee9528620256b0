package settings

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Store persists a Settings document.
type Store interface {
	Load() *Settings
	Save(*Settings) error
}

// FileStore keeps settings in a JSON file.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load() *Settings {
	return Load(f.path, f.logger)
}

func (f *FileStore) Save(s *Settings) error {
	return Save(f.path, s)
}

// Manager owns the live settings object and the list of components that
// want to hear about changes.
type Manager struct {
	mu      sync.Mutex
	store   Store
	current *Settings
	subs    map[int]func(*Settings)
	nextID  int
	logger  zerolog.Logger
}

func NewManager(store Store, logger zerolog.Logger) *Manager {
	return &Manager{
		store:   store,
		current: store.Load(),
		subs:    make(map[int]func(*Settings)),
		logger:  logger,
	}
}

// Current returns a copy of the live settings.
func (m *Manager) Current() *Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// Subscribe registers fn to receive a copy of the settings after every
// change. The returned func removes the subscription.
func (m *Manager) Subscribe(fn func(*Settings)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Update applies fn to a copy, persists it and notifies subscribers. The
// in-memory settings change even if saving fails.
func (m *Manager) Update(fn func(*Settings)) error {
	m.mu.Lock()
	next := m.current.Clone()
	fn(next)
	m.current = next
	m.mu.Unlock()

	err := m.store.Save(next)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to save settings")
		err = fmt.Errorf("failed to save settings: %w", err)
	}
	m.notify(next)
	return err
}

// Reload re-reads the store and notifies subscribers.
func (m *Manager) Reload() {
	s := m.store.Load()
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	m.notify(s)
}

func (m *Manager) notify(s *Settings) {
	m.mu.Lock()
	fns := make([]func(*Settings), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(s.Clone())
	}
}
