package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/vk/assetgraph/internal/fsutil"
	"github.com/vk/assetgraph/internal/node"
	"github.com/vk/assetgraph/internal/registry"
)

// ExecutionRecord holds the start and end times of one action invocation.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
}

// RecorderModule registers a handler for Kind that sleeps, then writes the
// names of the node's inputs to its output and records when it ran.
type RecorderModule struct {
	Kind  node.Kind
	Sleep time.Duration
	// FailOn makes the handler fail for outputs whose path ends with a key.
	FailOn map[string]error

	mu      sync.Mutex
	records map[string]*ExecutionRecord
	order   []string
}

// Register implements the registry.Module interface.
func (m *RecorderModule) Register(r *registry.Registry) {
	r.RegisterHandler(m.Kind, registry.HandlerFunc(m.run))
}

func (m *RecorderModule) run(ctx context.Context, n *node.Node) error {
	start := time.Now()
	select {
	case <-time.After(m.Sleep):
	case <-ctx.Done():
		return ctx.Err()
	}

	for suffix, err := range m.FailOn {
		if strings.HasSuffix(n.Path(), suffix) {
			return err
		}
	}

	var b strings.Builder
	for _, in := range n.TaggedInputs() {
		data, err := os.ReadFile(in.Node.Path())
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "%s=%s;", in.Tag, strings.TrimSpace(string(data)))
	}
	if err := fsutil.WriteFileAtomic(n.Path(), []byte(b.String()), 0o644); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records == nil {
		m.records = make(map[string]*ExecutionRecord)
	}
	m.records[n.Path()] = &ExecutionRecord{Start: start, End: time.Now()}
	m.order = append(m.order, n.Path())
	return nil
}

// Record returns the execution record of the node that produced path.
func (m *RecorderModule) Record(path string) (*ExecutionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[path]
	return rec, ok
}

// Order returns the output paths in completion order.
func (m *RecorderModule) Order() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}
