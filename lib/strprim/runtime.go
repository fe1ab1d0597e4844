package strprim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/starlingvm/starling/lib/heap"
	"github.com/starlingvm/starling/lib/symbol"
)

// Runtime is the per-engine context of the string subsystem. It owns the
// heap, the symbol registry, the process-wide empty-string singleton and the
// single-character cache. All operations run on the engine's one mutator
// thread.
type Runtime struct {
	logger  logrus.FieldLogger
	heap    *heap.Heap
	symbols *symbol.Registry

	empty String
	// chars caches one string per narrow-representable character value, so
	// length-1 strings in that range are never freshly allocated.
	chars [256]String

	externalMinSize int
}

// NewRuntime creates a runtime with the consolidated config. A nil logger
// disables logging.
func NewRuntime(cfg Config, logger logrus.FieldLogger) (*Runtime, error) {
	cfg = NewConfig().Apply(cfg)
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	h := heap.New(heap.Config{
		MaxHeapBytes:     cfg.MaxHeapBytes.Int64,
		MaxExternalBytes: cfg.MaxExternalBytes.Int64,
	}, logger)

	rt := &Runtime{
		logger:          logger,
		heap:            h,
		symbols:         symbol.NewRegistry(),
		externalMinSize: cfg.externalMinSize(),
	}

	// Predefined strings outlive every collection cycle, so they are placed
	// in the long-lived region up front.
	if err := h.AllocLongLived(heap.KindFlatNarrow, headerBytes); err != nil {
		return nil, fmt.Errorf("allocating the empty string: %w", err)
	}
	rt.empty = &flatNarrow{}
	for i := range rt.chars {
		if err := h.AllocLongLived(heap.KindFlatNarrow, headerBytes+1); err != nil {
			return nil, fmt.Errorf("allocating the character cache: %w", err)
		}
		rt.chars[i] = &flatNarrow{data: []byte{byte(i)}}
	}
	return rt, nil
}

// Close tears the runtime down, force-finalizing every external string so
// the heap's ledger returns to its pre-construction balance.
func (rt *Runtime) Close() {
	rt.heap.FinalizeAll()
}

// Heap returns the runtime's heap.
func (rt *Runtime) Heap() *heap.Heap { return rt.heap }

// Symbols returns the runtime's identifier registry.
func (rt *Runtime) Symbols() *symbol.Registry { return rt.symbols }

// EmptyString returns the process-wide zero-length singleton. Every
// construction path that sees empty input returns this exact instance.
func (rt *Runtime) EmptyString() String { return rt.empty }

// characterString serves a length-1 string for the given code unit. Units in
// the narrow range come from the cache; wider units allocate a fresh
// single-unit wide string.
func (rt *Runtime) characterString(u uint16) (String, error) {
	if u < 256 {
		return rt.chars[u], nil
	}
	if err := rt.heap.Alloc(heap.KindFlatWide, headerBytes+2); err != nil {
		return nil, err
	}
	return &flatWide{data: []uint16{u}}, nil
}
