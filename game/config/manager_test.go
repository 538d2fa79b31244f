package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/wricardo/christmas-fun/game/engine"
)

const testCarols = `[
  {"id": "jingle-bells", "title": "Jingle Bells", "difficulty": "easy",
   "lyrics": [
     {"line": "Dashing through the snow", "time": 3000, "blank": "snow"},
     {"line": "", "time": 500, "blank": null},
     {"line": "Jingle bells, jingle bells", "time": 2500, "blank": "bells"}
   ]},
  {"id": "silent-night", "title": "Silent Night", "difficulty": "medium",
   "lyrics": [{"line": "Silent night, holy night", "time": 4000, "blank": "holy"}]}
]`

func createTestFS(carols string) fstest.MapFS {
	return fstest.MapFS{CarolsFile: {Data: []byte(carols)}}
}

func TestNewManager(t *testing.T) {
	m, err := NewManager(createTestFS(testCarols))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	carols := m.Carols()
	if len(carols) != 2 {
		t.Fatalf("Expected 2 carols, got %d", len(carols))
	}
	if carols[0].ID != "jingle-bells" || carols[1].ID != "silent-night" {
		t.Errorf("Expected file order to be kept, got %s, %s", carols[0].ID, carols[1].ID)
	}
}

func TestNewManager_InvalidData(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"missing":   {},
		"malformed": createTestFS(`{"id": 1}`),
		"invalid":   createTestFS(`[{"id": "x", "title": "X", "difficulty": "easy", "lyrics": [{"line": "a", "time": 0}]}]`),
	}

	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewManager(fsys); err == nil {
				t.Errorf("Expected %s catalog to fail loading", name)
			}
		})
	}
}

func TestManager_LoadCarol(t *testing.T) {
	m, _ := NewManager(createTestFS(testCarols))

	carol, err := m.LoadCarol(" Silent-Night ")
	if err != nil {
		t.Fatalf("Failed to load carol: %v", err)
	}
	if carol.Title != "Silent Night" {
		t.Errorf("Expected Silent Night, got %s", carol.Title)
	}

	if _, err := m.LoadCarol("frosty"); !errors.Is(err, engine.ErrCarolNotFound) {
		t.Errorf("Expected ErrCarolNotFound, got %v", err)
	}
}

func TestManager_ListCarols(t *testing.T) {
	m, _ := NewManager(createTestFS(testCarols))

	infos, err := m.ListCarols()
	if err != nil {
		t.Fatalf("Failed to list carols: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 infos, got %d", len(infos))
	}

	first := infos[0]
	if first.Lines != 3 || first.Blanks != 2 || first.DurationMs != 6000 {
		t.Errorf("Unexpected summary: %+v", first)
	}
	if first.Difficulty != engine.DifficultyEasy {
		t.Errorf("Expected easy, got %s", first.Difficulty)
	}
}

func TestManager_RefreshKeepsOldCatalogOnError(t *testing.T) {
	fsys := createTestFS(testCarols)
	m, _ := NewManager(fsys)

	fsys[CarolsFile] = &fstest.MapFile{Data: []byte(`not json`)}
	if err := m.Refresh(); err == nil {
		t.Fatal("Expected refresh to fail")
	}
	if len(m.Carols()) != 2 {
		t.Errorf("Expected previous catalog to survive a failed refresh")
	}
}

func TestNewManagerFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CarolsFile), []byte(testCarols), 0644); err != nil {
		t.Fatalf("Failed to write carols: %v", err)
	}

	m, err := NewManagerFromDir(dir)
	if err != nil {
		t.Fatalf("Failed to load from dir: %v", err)
	}
	if len(m.Carols()) != 2 {
		t.Errorf("Expected 2 carols, got %d", len(m.Carols()))
	}

	if _, err := NewManagerFromDir(filepath.Join(dir, "nope")); !errors.Is(err, ErrContentNotFound) {
		t.Errorf("Expected ErrContentNotFound, got %v", err)
	}
}

func TestManager_ConcurrentReads(t *testing.T) {
	m, _ := NewManager(createTestFS(testCarols))
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := m.LoadCarol("jingle-bells"); err != nil {
				t.Errorf("LoadCarol failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			_ = m.Refresh()
		}()
	}
	wg.Wait()
}
