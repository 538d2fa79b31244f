package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/wricardo/christmas-fun/game/engine"
	"github.com/wricardo/christmas-fun/game/service"
)

// CarolsFile is the catalog document name inside a content directory
const CarolsFile = "carols.json"

var ErrContentNotFound = errors.New("content directory not found")

// Manager loads the carol catalog once and serves it from memory
type Manager struct {
	fsys   fs.FS
	carols []*engine.Carol
	byID   map[string]*engine.Carol
	mu     sync.RWMutex
}

// NewManager loads and validates carols.json from fsys
func NewManager(fsys fs.FS) (*Manager, error) {
	m := &Manager{fsys: fsys}
	if err := m.Refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewManagerFromDir loads the catalog from a directory on disk
func NewManagerFromDir(dir string) (*Manager, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, dir)
	}
	return NewManager(os.DirFS(dir))
}

// Carols returns the catalog in file order
func (m *Manager) Carols() []*engine.Carol {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.carols
}

// LoadCarol returns a carol by id (case-insensitive)
func (m *Manager) LoadCarol(id string) (*engine.Carol, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	carol, ok := m.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", engine.ErrCarolNotFound, id)
	}
	return carol, nil
}

// ListCarols returns a summary of every carol
func (m *Manager) ListCarols() ([]*service.CarolInfo, error) {
	carols := m.Carols()
	infos := make([]*service.CarolInfo, 0, len(carols))
	for _, carol := range carols {
		infos = append(infos, service.NewCarolInfo(carol))
	}
	return infos, nil
}

// Refresh reloads the catalog. On failure the previous catalog stays.
func (m *Manager) Refresh() error {
	carols, err := engine.LoadCarols(m.fsys, CarolsFile)
	if err != nil {
		return err
	}

	byID := make(map[string]*engine.Carol, len(carols))
	for _, carol := range carols {
		byID[strings.ToLower(carol.ID)] = carol
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.carols = carols
	m.byID = byID
	return nil
}
