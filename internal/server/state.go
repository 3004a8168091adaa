package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/matkrin/colord/internal/document"
	"github.com/matkrin/colord/internal/engine"
	"github.com/matkrin/colord/internal/grammar"
	"github.com/matkrin/colord/internal/lsp"
)

var errRevisionRegression = errors.New("cached revision exceeds current revision")

// scanEntry is the cached scan result for one document. The cache holds at
// most one entry per uri, always the newest revision scanned.
type scanEntry struct {
	revision int
	spans    []engine.ColorSpan
}

// State owns the document store, the immutable grammar registry, and the
// per-uri scan cache. It serializes nothing but the cache bookkeeping;
// snapshots are immutable so scans run without locks.
type State struct {
	Store             *document.Store
	Config            Config
	ShutdownRequested bool

	registry *grammar.Registry
	cache    *gocache.Cache
	cacheMu  sync.Mutex
	group    singleflight.Group

	// scan is swappable for tests counting executions
	scan func(*document.Snapshot, *grammar.Registry) []engine.ColorSpan
}

func NewState(config Config) *State {
	return &State{
		Store:    document.NewStore(),
		Config:   config,
		registry: grammar.NewRegistry(config.grammarOptions()),
		cache:    gocache.New(time.Duration(config.CacheTTL), 2*time.Duration(config.CacheTTL)),
		scan:     engine.Scan,
	}
}

func (st *State) OpenDocument(uri, languageID, text string) {
	snap := st.Store.Open(uri, languageID, text)
	slog.Info("Opened document", "URI", uri, "languageId", languageID, "revision", snap.Revision)
}

func (st *State) ChangeDocument(uri string, edits []lsp.TextDocumentContentChangeEvent) error {
	snap, err := st.Store.Change(uri, edits)
	if err != nil {
		return err
	}
	slog.Debug("Changed document", "URI", uri, "revision", snap.Revision)
	return nil
}

func (st *State) CloseDocument(uri string) {
	st.Store.Close(uri)
	st.cacheMu.Lock()
	st.cache.Delete(uri)
	st.cacheMu.Unlock()
	slog.Info("Closed document", "URI", uri)
}

// DocumentColors returns the color spans of the current snapshot of uri.
// Results are cached by (uri, revision) and at most one scan runs per key;
// concurrent requests for the same key share the in-flight scan. Canceling
// ctx abandons only this caller's wait, never the scan itself.
func (st *State) DocumentColors(ctx context.Context, uri string) ([]engine.ColorSpan, error) {
	snap, ok := st.Store.Snapshot(uri)
	if !ok {
		return nil, fmt.Errorf("documentColor %q: %w", uri, document.ErrUnknownDocument)
	}

	if len(snap.Text) > st.Config.MaxDocumentSize {
		slog.Warn("Document exceeds size limit, skipping scan",
			"URI", uri, "size", len(snap.Text), "limit", st.Config.MaxDocumentSize)
		return nil, nil
	}

	if spans, ok, err := st.cachedSpans(uri, snap.Revision); err != nil {
		return nil, err
	} else if ok {
		return spans, nil
	}

	key := fmt.Sprintf("%s#%d", uri, snap.Revision)
	ch := st.group.DoChan(key, func() (any, error) {
		spans := st.scan(snap, st.registry)
		st.storeSpans(uri, snap.Revision, spans)
		return spans, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val.([]engine.ColorSpan), nil
	}
}

func (st *State) cachedSpans(uri string, revision int) ([]engine.ColorSpan, bool, error) {
	st.cacheMu.Lock()
	defer st.cacheMu.Unlock()

	v, ok := st.cache.Get(uri)
	if !ok {
		return nil, false, nil
	}
	entry := v.(scanEntry)
	if entry.revision > revision {
		// Revisions only grow, so a newer cached revision means the store
		// and cache disagree. Drop the entry and fail this request; the
		// next one rebuilds from the store.
		st.cache.Delete(uri)
		slog.Error("Dropping inconsistent cache entry",
			"URI", uri, "cached", entry.revision, "current", revision)
		return nil, false, errRevisionRegression
	}
	if entry.revision < revision {
		return nil, false, nil
	}
	return entry.spans, true, nil
}

// storeSpans caches a scan result. A scan that finished after a newer
// revision was already cached is discarded: its key is stale and would
// never be queried again.
func (st *State) storeSpans(uri string, revision int, spans []engine.ColorSpan) {
	st.cacheMu.Lock()
	defer st.cacheMu.Unlock()

	if v, ok := st.cache.Get(uri); ok && v.(scanEntry).revision > revision {
		return
	}
	st.cache.Set(uri, scanEntry{revision: revision, spans: spans}, gocache.DefaultExpiration)
}
