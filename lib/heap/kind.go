package heap

import "fmt"

// Kind identifies the concrete header layout of a heap cell. The set is
// closed: every cell kind the string subsystem allocates is listed here, and
// the GC metadata table is keyed by it.
type Kind uint8

const (
	// KindFlatNarrow is an inline string cell with a single-byte payload.
	KindFlatNarrow Kind = iota + 1
	// KindFlatWide is an inline string cell with a two-byte payload.
	KindFlatWide
	// KindUniquedNarrow is a flat narrow cell carrying an interned identifier.
	KindUniquedNarrow
	// KindUniquedWide is a flat wide cell carrying an interned identifier.
	KindUniquedWide
	// KindExternalNarrow is a header-only cell whose narrow payload is a
	// separately owned buffer accounted through the external-memory ledger.
	KindExternalNarrow
	// KindExternalWide is the wide flavor of KindExternalNarrow.
	KindExternalWide
)

func (k Kind) String() string {
	switch k {
	case KindFlatNarrow:
		return "flat_narrow"
	case KindFlatWide:
		return "flat_wide"
	case KindUniquedNarrow:
		return "uniqued_narrow"
	case KindUniquedWide:
		return "uniqued_wide"
	case KindExternalNarrow:
		return "external_narrow"
	case KindExternalWide:
		return "external_wide"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}
