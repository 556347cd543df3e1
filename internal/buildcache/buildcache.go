package buildcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// BuildCache is the in-memory map from module descriptor (its dotted name)
// to ModuleCache, optionally persisted under a directory on disk. Reads
// never block writes to other keys: each key gets its own mutex rather than
// a single coarse lock, giving the "at most one writer per key, readers
// elsewhere unblocked" promise the original gets from dashmap::DashMap.
type BuildCache struct {
	mu      sync.RWMutex
	entries map[string]*ModuleCache
	locks   map[string]*sync.Mutex

	directory string // empty means "don't persist"
	writable  bool
}

// New builds an empty BuildCache. directory may be empty, meaning this
// cache never reads or writes to disk (e.g. in-memory test runs); writable
// false means entries are tracked in memory but Insert never touches disk,
// mirroring the original's read-only build mode.
func New(directory string, writable bool) *BuildCache {
	return &BuildCache{
		entries:   map[string]*ModuleCache{},
		locks:     map[string]*sync.Mutex{},
		directory: directory,
		writable:  writable,
	}
}

// Get returns the cached entry for module, if any.
func (b *BuildCache) Get(module string) (*ModuleCache, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.entries[module]
	return c, ok
}

// Len reports how many modules currently have an entry.
func (b *BuildCache) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

func (b *BuildCache) lockFor(module string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.locks[module]
	if !ok {
		l = &sync.Mutex{}
		b.locks[module] = l
	}
	return l
}

// Insert records moduleCache under module, saving it to disk only if it
// represents a change from whatever was cached before — matching
// build_cache.rs's insert, which skips the write entirely when the new
// value Eq's the old one.
func (b *BuildCache) Insert(module string, moduleCache *ModuleCache) error {
	lock := b.lockFor(module)
	lock.Lock()
	defer lock.Unlock()

	b.mu.RLock()
	old, existed := b.entries[module]
	b.mu.RUnlock()

	if existed && old.Equal(moduleCache) {
		return nil
	}

	if err := b.save(module, moduleCache); err != nil {
		return err
	}

	b.mu.Lock()
	b.entries[module] = moduleCache
	b.mu.Unlock()
	return nil
}

// save writes moduleCache's YAML form to <directory>/<dotted.path>.yaml,
// creating intermediate directories as needed, atomically (write to a temp
// file in the same directory, then rename). A no-op if the cache isn't
// writable or has no backing directory, mirroring build_cache.rs's save.
func (b *BuildCache) save(module string, moduleCache *ModuleCache) error {
	if !b.writable || b.directory == "" {
		return nil
	}

	parts := strings.Split(module, ".")
	if len(parts) == 0 {
		return nil
	}
	last := parts[len(parts)-1]
	dir := b.directory
	for _, part := range parts[:len(parts)-1] {
		dir = filepath.Join(dir, part)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("buildcache: creating %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(moduleCache)
	if err != nil {
		return fmt.Errorf("buildcache: marshaling %s: %w", module, err)
	}

	path := filepath.Join(dir, last+".yaml")
	tmp, err := os.CreateTemp(dir, last+".yaml.tmp-*")
	if err != nil {
		return fmt.Errorf("buildcache: creating temp file for %s: %w", module, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("buildcache: writing %s: %w", module, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("buildcache: closing %s: %w", module, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("buildcache: renaming into place for %s: %w", module, err)
	}
	return nil
}

// Load reads a module's cache file from disk, if the cache has a backing
// directory and the file exists. A missing file is not an error: it just
// means the module has never built successfully before.
func (b *BuildCache) Load(module string) (*ModuleCache, error) {
	if b.directory == "" {
		return nil, nil
	}
	parts := strings.Split(module, ".")
	if len(parts) == 0 {
		return nil, nil
	}
	path := filepath.Join(append([]string{b.directory}, parts...)...) + ".yaml"

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buildcache: reading %s: %w", path, err)
	}

	var cache ModuleCache
	if err := yaml.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("buildcache: parsing %s: %w", path, err)
	}

	b.mu.Lock()
	b.entries[module] = &cache
	b.mu.Unlock()
	return &cache, nil
}
