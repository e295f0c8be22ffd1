package staleness

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vk/assetgraph/internal/ctxlog"
	"github.com/vk/assetgraph/internal/graph"
	"github.com/vk/assetgraph/internal/node"
)

// DefaultCacheSize bounds the per-analysis modification time cache.
const DefaultCacheSize = 4096

// StatFunc returns file information for a path. It must report a missing file
// with an error satisfying errors.Is(err, fs.ErrNotExist).
type StatFunc func(path string) (fs.FileInfo, error)

// Analyzer computes dirty sets. The zero value is not usable; call New.
type Analyzer struct {
	stat      StatFunc
	cacheSize int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStat replaces os.Stat, mainly for tests.
func WithStat(fn StatFunc) Option {
	return func(a *Analyzer) { a.stat = fn }
}

// WithCacheSize sets the number of paths whose modification time is
// remembered during one analysis. Values below 1 select DefaultCacheSize.
func WithCacheSize(n int) Option {
	return func(a *Analyzer) { a.cacheSize = n }
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{stat: os.Stat, cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(a)
	}
	if a.cacheSize < 1 {
		a.cacheSize = DefaultCacheSize
	}
	return a
}

type fileState struct {
	exists  bool
	modTime time.Time
}

// FindDirtyNodes returns every node reachable from roots whose artifact must
// be regenerated.
//
// Nodes are evaluated in post-order, each exactly once. A node is dirty when
// any direct input is dirty, when its own file is missing, when any direct
// input's file is missing, or when max(inputModTime, minModTime) is not
// before its own modification time. Equal timestamps count as stale.
//
// A node without inputs whose file is missing yields a *MissingSourceError.
// A cycle yields a *graph.ConfigurationError. Either way no partial set is
// returned.
func (a *Analyzer) FindDirtyNodes(ctx context.Context, roots []*node.Node, minModTime time.Time) (*node.Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Staleness analysis started.", "roots", len(roots), "min_mod_time", minModTime)

	// The cache lives for one call only so repeated calls observe fresh state.
	cache, err := lru.New[string, fileState](a.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating mod-time cache: %w", err)
	}
	lookup := func(path string) (fileState, error) {
		if st, ok := cache.Get(path); ok {
			return st, nil
		}
		info, err := a.stat(path)
		var st fileState
		switch {
		case err == nil:
			st = fileState{exists: !info.IsDir(), modTime: info.ModTime()}
		case errors.Is(err, fs.ErrNotExist):
			st = fileState{}
		default:
			return fileState{}, fmt.Errorf("stat %s: %w", path, err)
		}
		cache.Add(path, st)
		return st, nil
	}

	dirty := node.NewSet()
	evaluated := 0
	for n, err := range graph.New(roots...).Walk() {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		evaluated++

		reason, err := a.evaluate(n, dirty, minModTime, lookup)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			logger.Debug("Node is dirty.", "path", n.Path(), "action", n.Action().String(), "reason", reason)
			dirty.Add(n)
		}
	}

	logger.Debug("Staleness analysis finished.", "evaluated", evaluated, "dirty", dirty.Len())
	return dirty, nil
}

// evaluate returns a non-empty reason when n is dirty.
func (a *Analyzer) evaluate(n *node.Node, dirty *node.Set, minModTime time.Time, lookup func(string) (fileState, error)) (string, error) {
	inputs := n.InputNodes()

	if len(inputs) == 0 {
		st, err := lookup(n.Path())
		if err != nil {
			return "", err
		}
		if !st.exists {
			return "", &MissingSourceError{Path: n.Path()}
		}
	}

	for _, in := range inputs {
		if dirty.Contains(in) {
			return "input dirty: " + in.Path(), nil
		}
	}

	out, err := lookup(n.Path())
	if err != nil {
		return "", err
	}
	if !out.exists {
		return "output missing", nil
	}

	for _, in := range inputs {
		st, err := lookup(in.Path())
		if err != nil {
			return "", err
		}
		if !st.exists {
			return "input missing: " + in.Path(), nil
		}
		effective := st.modTime
		if minModTime.After(effective) {
			effective = minModTime
		}
		if !effective.Before(out.modTime) {
			return "input not older than output: " + in.Path(), nil
		}
	}
	return "", nil
}
