package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/project"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит диагностики файлов на диске, ключ - cacheKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what a check leaves behind for an unchanged file. Spans are
// stored as bare ranges; the file id is supplied on the way out.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema      uint16             `msgpack:"schema"`
	Lang        string             `msgpack:"lang"`
	Facts       Facts              `msgpack:"facts"`
	Diagnostics []cachedDiagnostic `msgpack:"diagnostics"`
}

type cachedRange struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
}

type cachedNote struct {
	Range cachedRange `msgpack:"range"`
	Msg   string      `msgpack:"msg"`
}

type cachedEdit struct {
	Range   cachedRange `msgpack:"range"`
	NewText string      `msgpack:"new"`
	OldText string      `msgpack:"old,omitempty"`
}

type cachedFix struct {
	Title         string       `msgpack:"title"`
	Applicability uint8        `msgpack:"applicability"`
	Edits         []cachedEdit `msgpack:"edits"`
}

type cachedDiagnostic struct {
	Severity uint8        `msgpack:"severity"`
	Code     uint16       `msgpack:"code"`
	Message  string       `msgpack:"message"`
	Range    cachedRange  `msgpack:"range"`
	Notes    []cachedNote `msgpack:"notes,omitempty"`
	Fixes    []cachedFix  `msgpack:"fixes,omitempty"`
}

// OpenDiskCache creates dir if needed and returns a cache rooted there.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir is the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// два уровня, чтобы каталоги не разрастались
	return filepath.Join(c.dir, "diags", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	// after a successful rename the temp file is gone and Remove fails quietly
	defer func() { _ = os.Remove(tmp) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. A missing entry
// is (false, nil).
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
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
	defer func() { _ = f.Close() }()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return true, nil
}

// DropAll invalidates the cache.
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

func cacheSalt() string {
	return version.Version + "/" + strconv.Itoa(int(diskCacheSchemaVersion))
}

// encodeKeyPart serialises grammar options for the cache key. msgpack
// writes struct fields in declaration order, so equal options give equal
// bytes.
func encodeKeyPart(v any) []byte {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return []byte(fmt.Sprintf("%+v", v))
	}
	return data
}

func toCachedRange(r source.TextRange) cachedRange {
	return cachedRange{Start: r.Start, End: r.End}
}

func (r cachedRange) span(file source.FileID) source.Span {
	return source.SpanOf(file, source.NewRange(r.Start, r.End))
}

func newDiskPayload(res *FileResult) *DiskPayload {
	items := res.Bag.Items()
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Lang:        res.Lang.String(),
		Facts:       res.Facts,
		Diagnostics: make([]cachedDiagnostic, 0, len(items)),
	}
	for _, d := range items {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Range:    toCachedRange(d.Primary.TextRange),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Range: toCachedRange(n.Span.TextRange), Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := cachedFix{Title: f.Title, Applicability: uint8(f.Applicability)}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{
					Range:   toCachedRange(e.Span.TextRange),
					NewText: e.NewText,
					OldText: e.OldText,
				})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// diagnostics rebuilds the stored diagnostics inside file.
func (p *DiskPayload) diagnostics(file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(p.Diagnostics))
	for _, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  cd.Range.span(file),
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: n.Range.span(file), Msg: n.Msg})
		}
		for _, cf := range cd.Fixes {
			f := diag.Fix{Title: cf.Title, Applicability: diag.Applicability(cf.Applicability)}
			for _, e := range cf.Edits {
				f.Edits = append(f.Edits, diag.FixEdit{
					Span:    e.Range.span(file),
					NewText: e.NewText,
					OldText: e.OldText,
				})
			}
			d.Fixes = append(d.Fixes, f)
		}
		out = append(out, d)
	}
	return out
}
