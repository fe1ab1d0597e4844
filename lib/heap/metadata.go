package heap

import "fmt"

// Metadata describes which header fields of a cell kind hold GC-traced
// references. Payload code units are raw data and are never listed here.
type Metadata struct {
	TracedFields []string
}

// MetadataBuilder collects the traced fields of one cell kind during
// registration.
type MetadataBuilder struct {
	fields []string
}

// AddField marks a header field as a traced reference.
func (mb *MetadataBuilder) AddField(name string) {
	mb.fields = append(mb.fields, name)
}

// The metadata table is built once, at package init time of whichever package
// defines the cell kinds. It is a static per-kind description, not a
// per-instance dispatch: the collector consults it by kind tag on the scan
// path.
var metadataTable = map[Kind]Metadata{}

// RegisterKind records the traced-field description for a cell kind. It must
// be called exactly once per kind, before the first allocation of that kind.
func RegisterKind(k Kind, build func(mb *MetadataBuilder)) {
	if _, dup := metadataTable[k]; dup {
		panic(fmt.Sprintf("heap: metadata for kind %s registered twice", k))
	}
	mb := &MetadataBuilder{}
	if build != nil {
		build(mb)
	}
	metadataTable[k] = Metadata{TracedFields: mb.fields}
}

// MetadataFor returns the registered description for a kind.
func MetadataFor(k Kind) (Metadata, bool) {
	md, ok := metadataTable[k]
	return md, ok
}
