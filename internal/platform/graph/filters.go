package graph

// DiagnosisSearchKey is the reserved FilterSet key carrying a free-text
// diagnosis search term. It is not a real field name: it bypasses the
// allowlist and is translated into the diagnosis predicate instead of an
// equality filter.
const DiagnosisSearchKey = "_diagnosis_search"

// FilterValue is a single filter operand: either one scalar (matched with
// equality) or a list of values (matched with IN).
type FilterValue struct {
	values []string
	list   bool
}

// Scalar builds a single-valued filter operand.
func Scalar(v string) FilterValue {
	return FilterValue{values: []string{v}}
}

// List builds a list-valued filter operand.
func List(vs ...string) FilterValue {
	values := make([]string, len(vs))
	copy(values, vs)
	return FilterValue{values: values, list: true}
}

// IsList reports whether the operand is list-valued.
func (v FilterValue) IsList() bool { return v.list }

// Values returns the operand values. Scalar operands have exactly one.
func (v FilterValue) Values() []string {
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

// Scalar returns the single value of a scalar operand, or the empty string
// for an empty operand.
func (v FilterValue) Scalar() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// FilterSet is an insertion-ordered mapping from field name to FilterValue.
// Order matters for deterministic query text; equality of two sets does not
// depend on it (the cache layer sorts items before keying).
type FilterSet struct {
	fields []string
	values map[string]FilterValue
}

// NewFilterSet returns an empty FilterSet.
func NewFilterSet() *FilterSet {
	return &FilterSet{values: make(map[string]FilterValue)}
}

// Set stores a value for a field. Setting an existing field overwrites the
// value but keeps the field's original position.
func (f *FilterSet) Set(field string, v FilterValue) {
	if f.values == nil {
		f.values = make(map[string]FilterValue)
	}
	if _, ok := f.values[field]; !ok {
		f.fields = append(f.fields, field)
	}
	f.values[field] = v
}

// Get returns the value for a field.
func (f *FilterSet) Get(field string) (FilterValue, bool) {
	if f == nil {
		return FilterValue{}, false
	}
	v, ok := f.values[field]
	return v, ok
}

// Len returns the number of fields, including the reserved search key.
func (f *FilterSet) Len() int {
	if f == nil {
		return 0
	}
	return len(f.fields)
}

// Fields returns the field names in insertion order. The slice is a copy.
func (f *FilterSet) Fields() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.fields))
	copy(out, f.fields)
	return out
}

// DiagnosisSearch returns the reserved search term when one is present and
// non-empty.
func (f *FilterSet) DiagnosisSearch() (string, bool) {
	v, ok := f.Get(DiagnosisSearchKey)
	if !ok || v.Scalar() == "" {
		return "", false
	}
	return v.Scalar(), true
}
