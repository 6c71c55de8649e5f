package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// File is a Store backed by a YAML document of integer keys.
// Every File on the same path shares one lock, and each call re-reads the
// document, so concurrent sessions of one player merge instead of
// overwriting each other's keys.
type File struct {
	mu   *sync.Mutex
	path string
}

var pathLocks sync.Map // cleaned path -> *sync.Mutex

func lockFor(path string) *sync.Mutex {
	mu, _ := pathLocks.LoadOrStore(path, new(sync.Mutex))
	return mu.(*sync.Mutex)
}

// Open returns the store at path. A missing file is an empty store; a file
// that is not a valid store is an error.
func Open(path string) (*File, error) {
	path = filepath.Clean(path)
	f := &File{mu: lockFor(path), path: path}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the backing file.
func (f *File) Path() string { return f.path }

func (f *File) Get(key string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return 0, err
	}
	v, ok := values[key]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func (f *File) Set(key string, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *File) load() (map[string]int, error) {
	values := make(map[string]int)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", f.path, err)
	}
	if values == nil {
		values = make(map[string]int)
	}
	return values, nil
}

// save writes to a uniquely named temp file and renames it over the store.
func (f *File) save(values map[string]int) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// PathFor returns the store file for a player inside dir.
// The name is reduced to letters, digits, '-' and '_'.
func PathFor(dir, player string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, player)
	if clean == "" {
		clean = "anonymous"
	}
	return filepath.Join(dir, clean+".yaml")
}
