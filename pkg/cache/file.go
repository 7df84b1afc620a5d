package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fileEntryExt = ".entry"

var errCorruptEntry = errors.New("corrupt cache entry")

// FileCache keeps conversion results on disk, one file per key. Files are
// sharded by the first two hex digits of the key hash and replaced
// atomically, so a concurrent CLI run never reads a half-written entry.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileRecord is the on-disk form of one entry. Key is stored so that a
// record found under the wrong hash is never served.
type fileRecord struct {
	Key     string     `json:"key"`
	Payload []byte     `json:"payload"`
	Expires *time.Time `json:"expires,omitempty"`
}

func (r *fileRecord) expired(now time.Time) bool {
	return r.Expires != nil && now.After(*r.Expires)
}

// FileStats summarizes what a [FileCache] holds.
type FileStats struct {
	Entries int
	Expired int
	Bytes   int64
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the payload stored under key. Unreadable, foreign or expired
// records are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	name := c.path(key)
	rec, err := readRecord(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case errors.Is(err, errCorruptEntry):
		_ = os.Remove(name)
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	if rec.Key != key || rec.expired(time.Now()) {
		_ = os.Remove(name)
		return nil, false, nil
	}
	return rec.Payload, true, nil
}

// Set writes data under key. A zero ttl keeps the entry until it is
// deleted or the cache is cleared.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	rec := fileRecord{Key: key, Payload: data}
	if ttl > 0 {
		at := time.Now().Add(ttl)
		rec.Expires = &at
	}
	encoded, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	name := c.path(key)
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), "*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), name)
}

// Delete removes key. A missing entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every entry and any leftover temp files, then prunes the
// empty shard directories. It returns the number of entries removed.
func (c *FileCache) Clear() (int, error) {
	removed := 0
	var shards []string
	err := c.walk(func(name string, d fs.DirEntry) {
		switch {
		case d.IsDir():
			shards = append(shards, name)
		case strings.HasSuffix(name, fileEntryExt):
			if os.Remove(name) == nil {
				removed++
			}
		case strings.HasSuffix(name, ".tmp"):
			_ = os.Remove(name)
		}
	})
	for _, shard := range shards {
		_ = os.Remove(shard)
	}
	return removed, err
}

// Stats counts the entries on disk and their total size. Expired entries
// are counted separately and left in place.
func (c *FileCache) Stats() (FileStats, error) {
	var st FileStats
	now := time.Now()
	err := c.walk(func(name string, d fs.DirEntry) {
		if d.IsDir() || !strings.HasSuffix(name, fileEntryExt) {
			return
		}
		if info, err := d.Info(); err == nil {
			st.Bytes += info.Size()
		}
		if rec, err := readRecord(name); err == nil && rec.expired(now) {
			st.Expired++
			return
		}
		st.Entries++
	})
	return st, err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+fileEntryExt)
}

// walk visits everything below the cache directory, skipping the root and
// unreadable paths.
func (c *FileCache) walk(visit func(name string, d fs.DirEntry)) error {
	err := filepath.WalkDir(c.dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil || name == c.dir {
			return nil
		}
		visit(name, d)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func readRecord(name string) (*fileRecord, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var rec fileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errCorruptEntry, filepath.Base(name), err)
	}
	return &rec, nil
}

var _ Cache = (*FileCache)(nil)
