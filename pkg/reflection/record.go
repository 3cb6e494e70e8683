package reflection

import (
	"encoding/json"
	"maps"
	"sync"

	"github.com/aretw0/cantype/pkg/kind"
)

// RecordType is a record shape declared at runtime. Its identity is the
// pointer: two RecordTypes with the same name and fields are different
// markers.
type RecordType struct {
	name string

	mu     sync.RWMutex
	fields map[string]any
}

// NewRecordType declares a record with the given field subtypes.
// Subtypes are markers or type objects.
func NewRecordType(name string, fields map[string]any) *RecordType {
	r := &RecordType{name: name, fields: make(map[string]any, len(fields))}
	maps.Copy(r.fields, fields)
	return r
}

// Name returns the declared name.
func (r *RecordType) Name() string { return r.name }

// Define sets the subtype of a field. Records may be declared first and
// filled afterwards, which lets records refer to each other.
func (r *RecordType) Define(field string, subtype any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[field] = subtype
}

// Fields returns a copy of the field declarations.
func (r *RecordType) Fields() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.fields)
}

func (r *RecordType) String() string { return r.name }

// Record is an instance of a RecordType.
type Record struct {
	Type   *RecordType
	Fields map[string]any
}

// Get returns the value of a field.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.Fields[key]
	return v, ok
}

// MarshalJSON renders the record as its field map. NaN, infinities and
// undefined are rendered the way kind.JSONSafe does.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(kind.JSONSafe(r.Fields))
}
