package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tyir/internal/hir"
	"tyir/internal/source"
	"tyir/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// CacheKey identifies one lowered file: sha256 of its content plus both schema versions.
type CacheKey [32]byte

func (k CacheKey) String() string { return hex.EncodeToString(k[:]) }

// DiskCache хранит результаты lowering по хэшу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached file: every alias with its lowered type.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	// tyir version that wrote the entry; see version.Compatible
	ToolVersion string

	Path    string
	Aliases []CachedAlias
}

// CachedAlias is a LoweredAlias without its syntax tree.
type CachedAlias struct {
	Name  string
	Start uint32
	End   uint32
	Type  hir.TypeNode
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKeyFor: H(content || disk schema || IR schema).
func CacheKeyFor(content []byte) CacheKey {
	h := sha256.New()
	_, _ = h.Write(content)
	var ver [4]byte
	binary.LittleEndian.PutUint16(ver[0:2], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint16(ver[2:4], hir.SchemaVersion)
	_, _ = h.Write(ver[:])
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key CacheKey) string {
	// Для удобства чистки - подкаталог "ir".
	return filepath.Join(c.dir, "ir", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. Missing entries
// report (false, nil); entries written by another schema or an incompatible
// tool version are treated as missing.
func (c *DiskCache) Get(key CacheKey, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if payload.Schema != diskCacheSchemaVersion || !version.Compatible(payload.ToolVersion) {
		return false, nil
	}
	*out = payload
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// aliasesToPayload converts lowered aliases to DiskPayload for caching
func aliasesToPayload(path string, aliases []LoweredAlias) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		ToolVersion: version.Version,
		Path:        path,
		Aliases:     make([]CachedAlias, len(aliases)),
	}
	for i, a := range aliases {
		payload.Aliases[i] = CachedAlias{
			Name:  a.Name,
			Start: a.Span.Start,
			End:   a.Span.End,
			Type:  hir.Encode(a.Type),
		}
	}
	return payload
}

// payloadToAliases restores aliases; Syntax stays nil, it is not cached.
func payloadToAliases(payload *DiskPayload, file source.FileID) []LoweredAlias {
	if payload == nil {
		return nil
	}
	out := make([]LoweredAlias, len(payload.Aliases))
	for i, a := range payload.Aliases {
		out[i] = LoweredAlias{
			Name: a.Name,
			Span: source.Span{File: file, Start: a.Start, End: a.End},
			Type: hir.Decode(a.Type),
		}
	}
	return out
}
