package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"jsfront/internal/ast"
	"jsfront/internal/check"
	"jsfront/internal/diag"
	"jsfront/internal/source"
)

// Current schema version - increment when CachedResult format changes
const cacheSchemaVersion uint16 = 2

// Digest is a SHA-256 cache key.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Cache хранит результаты анализа файлов на диске, по ключу от содержимого.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CachedResult is the replayable part of a FileResult.
type CachedResult struct {
	Schema     uint16
	Path       string
	Issues     []check.Issue
	RuleErrors []CachedRuleError
	Failure    *CachedFailure
}

type CachedRuleError struct {
	RuleID  string
	Node    uint32
	Kind    string
	Line    uint32
	Col     uint32
	Span    source.Span
	Exit    bool
	Message string
}

type CachedFailure struct {
	Code    uint16
	Text    string
	Message string
	Span    source.Span
	Notes   []diag.Note
}

// CachedError stands in for a pass-level failure replayed from the cache.
// It keeps the text and the diagnostic of the original error, but not its
// type: errors.As for *lexer.LexicalError, *parser.SyntaxError or
// *limits.ResourceLimitError does not match on a cache hit.
type CachedError struct {
	Failure CachedFailure
}

func (e *CachedError) Error() string { return e.Failure.Text }

func (e *CachedError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(diag.Code(e.Failure.Code), e.Failure.Span, e.Failure.Message)
	d.Notes = e.Failure.Notes
	return d
}

// OpenCache creates the cache directory if needed.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) Dir() string { return c.dir }

// Key derives the cache key from the file content and everything else that
// influences the result.
func (c *Cache) Key(file *source.File, ruleIDs []string, maxDepth, maxTokens int) Digest {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], cacheSchemaVersion)
	h.Write(buf[:2])
	h.Write(file.Hash[:])
	h.Write([]byte(file.Encoding))
	h.Write([]byte{0})
	for _, id := range ruleIDs {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(maxDepth)) //nolint:gosec // limits are non-negative
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(maxTokens)) //nolint:gosec // limits are non-negative
	h.Write(buf[:])
	var d Digest
	h.Sum(d[:0])
	return d
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := key.String()
	return filepath.Join(c.dir, hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a result to the cache.
func (c *Cache) Put(key Digest, payload *CachedResult) (err error) {
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
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = cacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a result; a missing entry or a stale schema is a miss.
func (c *Cache) Get(key Digest) (*CachedResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var out CachedResult
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, false, err
	}
	if out.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// Clear drops every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// snapshot extracts the cacheable part of a finished pipeline.
func snapshot(r *FileResult) *CachedResult {
	out := &CachedResult{Path: r.Path, Issues: r.Issues}
	for _, e := range r.RuleErrors {
		out.RuleErrors = append(out.RuleErrors, CachedRuleError{
			RuleID:  e.RuleID,
			Node:    uint32(e.Node),
			Kind:    e.Kind.String(),
			Line:    e.Pos.Line,
			Col:     e.Pos.Col,
			Span:    e.Span,
			Exit:    e.Exit,
			Message: errorText(e.Err),
		})
	}
	if r.Err != nil {
		d := Diagnostic(r.Err)
		out.Failure = &CachedFailure{
			Code:    uint16(d.Code),
			Text:    r.Err.Error(),
			Message: d.Message,
			Span:    d.Primary,
			Notes:   d.Notes,
		}
	}
	return out
}

// restore fills r from a cached entry; the span file ids are rebound to r.File.
func (cr *CachedResult) restore(r *FileResult) {
	fileID := r.File.ID
	r.Cached = true
	r.Issues = make([]check.Issue, len(cr.Issues))
	for i, is := range cr.Issues {
		is.Span.File = fileID
		r.Issues[i] = is
	}
	for _, ce := range cr.RuleErrors {
		kind, _ := ast.KindByName(ce.Kind)
		span := ce.Span
		span.File = fileID
		r.RuleErrors = append(r.RuleErrors, &check.RuleExecutionError{
			RuleID: ce.RuleID,
			Node:   ast.NodeID(ce.Node),
			Kind:   kind,
			Pos:    source.LineCol{Line: ce.Line, Col: ce.Col},
			Span:   span,
			Exit:   ce.Exit,
			Err:    errors.New(ce.Message),
		})
	}
	if cr.Failure != nil {
		f := *cr.Failure
		f.Span.File = fileID
		f.Notes = make([]diag.Note, len(cr.Failure.Notes))
		for i, n := range cr.Failure.Notes {
			n.Span.File = fileID
			f.Notes[i] = n
		}
		r.Err = &CachedError{Failure: f}
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
