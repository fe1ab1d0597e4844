// Package heap implements the allocator side of the engine's string
// subsystem: region admission, off-heap (external) memory accounting and
// finalizer bookkeeping.
//
// The heap is an accounting implementation. It does not trace or move cells;
// Go's own collector owns the memory. What it does enforce, exactly, is the
// allocator contract the rest of the subsystem is written against: two
// placement regions with a shared byte budget, an external-memory ledger that
// is credited at construction and debited at finalization, and finalizers
// that run exactly once per registered cell.
package heap

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Cell is implemented by every value allocated on the heap.
type Cell interface {
	HeapKind() Kind
}

// Finalizable cells have their Finalize method invoked exactly once, before
// the collector reclaims the cell's header.
type Finalizable interface {
	Cell
	Finalize(h *Heap)
}

// ErrOutOfMemory is returned when an allocation would exceed the heap's byte
// budget. Callers propagate it unchanged.
var ErrOutOfMemory = errors.New("heap: allocation failed, byte budget exceeded")

// Default region budgets, overridable through Config.
const (
	DefaultMaxHeapBytes     = 512 * 1024 * 1024
	DefaultMaxExternalBytes = 256 * 1024 * 1024
)

// Config bounds the allocation regions and the external-memory ledger.
// Zero values select the defaults.
type Config struct {
	MaxHeapBytes     int64
	MaxExternalBytes int64
}

// Stats is a snapshot of the heap's accounting counters.
type Stats struct {
	// HeapBytes is the number of live bytes in the default region.
	HeapBytes int64
	// LongLivedBytes is the number of live bytes in the long-lived region.
	LongLivedBytes int64
	// ExternalBytes is the current balance of the external-memory ledger.
	ExternalBytes int64
	// Allocs and LongLivedAllocs count successful admissions per region.
	Allocs          int64
	LongLivedAllocs int64
	// Finalized counts finalizers that have run.
	Finalized int64
}

// Heap tracks allocations for a single engine runtime. It is used from the
// engine's one mutator thread and is unsynchronized.
type Heap struct {
	cfg    Config
	logger logrus.FieldLogger
	stats  Stats

	// finalizable holds every live cell registered with a finalizer, in
	// registration order.
	finalizable []Finalizable
}

// New creates a heap with the given budgets. A nil logger disables logging.
func New(cfg Config, logger logrus.FieldLogger) *Heap {
	if cfg.MaxHeapBytes <= 0 {
		cfg.MaxHeapBytes = DefaultMaxHeapBytes
	}
	if cfg.MaxExternalBytes <= 0 {
		cfg.MaxExternalBytes = DefaultMaxExternalBytes
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(nopWriter{})
		logger = l
	}
	return &Heap{cfg: cfg, logger: logger}
}

// Alloc admits a cell of the given kind and size into the default region.
func (h *Heap) Alloc(k Kind, bytes int64) error {
	return h.alloc(k, bytes, &h.stats.HeapBytes, &h.stats.Allocs)
}

// AllocLongLived admits a cell into the long-lived region. Long-lived
// allocations are not retried after a collection, so callers perform any
// admission checks (e.g. CanAllocExternalMemory) before calling this.
func (h *Heap) AllocLongLived(k Kind, bytes int64) error {
	return h.alloc(k, bytes, &h.stats.LongLivedBytes, &h.stats.LongLivedAllocs)
}

func (h *Heap) alloc(k Kind, bytes int64, region *int64, allocs *int64) error {
	if _, ok := MetadataFor(k); !ok {
		panic(fmt.Sprintf("heap: allocation of unregistered kind %s", k))
	}
	if bytes < 0 {
		panic("heap: negative allocation size")
	}
	if h.stats.HeapBytes+h.stats.LongLivedBytes+bytes > h.cfg.MaxHeapBytes {
		h.logger.WithFields(logrus.Fields{
			"kind":  k.String(),
			"bytes": bytes,
		}).Warn("heap allocation rejected")
		return ErrOutOfMemory
	}
	*region += bytes
	*allocs++
	return nil
}

// RegisterFinalizer arranges for c.Finalize to run before the cell's header
// is reclaimed.
func (h *Heap) RegisterFinalizer(c Finalizable) {
	h.finalizable = append(h.finalizable, c)
}

// CreditExternalMemory records bytes held alive by c outside the heap, so
// off-heap buffers count against memory pressure without being scanned.
func (h *Heap) CreditExternalMemory(c Cell, bytes int64) {
	h.stats.ExternalBytes += bytes
	h.logger.WithFields(logrus.Fields{
		"kind":    c.HeapKind().String(),
		"bytes":   bytes,
		"balance": h.stats.ExternalBytes,
	}).Debug("external memory credited")
}

// DebitExternalMemory reverses an earlier credit. The subsystem derives the
// amount from the same size computation at credit and debit time, so an
// underflow here is a contract violation, not a recoverable state.
func (h *Heap) DebitExternalMemory(c Cell, bytes int64) {
	if bytes > h.stats.ExternalBytes {
		panic(fmt.Sprintf(
			"heap: external ledger underflow, debit %d with balance %d (kind %s)",
			bytes, h.stats.ExternalBytes, c.HeapKind()))
	}
	h.stats.ExternalBytes -= bytes
	h.logger.WithFields(logrus.Fields{
		"kind":    c.HeapKind().String(),
		"bytes":   bytes,
		"balance": h.stats.ExternalBytes,
	}).Debug("external memory debited")
}

// CanAllocExternalMemory reports whether the ledger can absorb bytes more
// without exceeding its budget.
func (h *Heap) CanAllocExternalMemory(bytes int64) bool {
	return h.stats.ExternalBytes+bytes <= h.cfg.MaxExternalBytes
}

// ExternalBytes returns the current ledger balance.
func (h *Heap) ExternalBytes() int64 {
	return h.stats.ExternalBytes
}

// FinalizeAll force-reclaims every registered finalizable cell: each
// finalizer runs exactly once, in registration order. Used at runtime
// teardown and by tests that need deterministic reclamation.
func (h *Heap) FinalizeAll() {
	cells := h.finalizable
	h.finalizable = nil
	for _, c := range cells {
		c.Finalize(h)
		h.stats.Finalized++
	}
	if len(cells) > 0 {
		h.logger.WithFields(logrus.Fields{
			"cells":   len(cells),
			"balance": h.stats.ExternalBytes,
		}).Debug("finalized external cells")
	}
}

// Stats returns a snapshot of the accounting counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
