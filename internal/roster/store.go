package roster

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/monster"
)

// Fixed save names.
const (
	AutoSave   = "_auto" // before destructive commands
	ManualSave = "_save" // "save" with no name
	LoadBackup = "_load" // the roster replaced by "load"
	QuitSave   = "_quit"
)

// Extension is the save-file extension.
const Extension = ".sav"

// Store keeps save files in one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the save directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file a save name maps to.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, strings.TrimSuffix(name, Extension)+Extension)
}

// Save writes a roster under name and returns the path written. The file is
// replaced atomically.
func (s *Store) Save(name string, r *Roster) (string, error) {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, fmt.Errorf("create save directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return path, err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return path, fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return path, fmt.Errorf("write save: %w", err)
	}

	logger.Debug("Saved roster", "path", path, "entries", len(r.Entries))
	return path, nil
}

// Resolve finds the file for a name: the store path first, then the name as
// a literal path.
func (s *Store) Resolve(name string) (string, bool) {
	for _, path := range []string{s.Path(name), name} {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Exists reports whether a save can be loaded under name.
func (s *Store) Exists(name string) bool {
	_, ok := s.Resolve(name)
	return ok
}

// Load reads the roster saved under name.
func (s *Store) Load(name string, catalog *monster.Catalog, sp Spawner) (*Roster, error) {
	path, ok := s.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("cannot load file: %s: %w", name, os.ErrNotExist)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load file: %w", err)
	}
	defer f.Close()

	r, err := Decode(f, catalog, sp)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	logger.Info("Loaded roster", "path", path, "entries", len(r.Entries), "xp", r.XP)
	return r, nil
}
