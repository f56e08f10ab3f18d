package graph

import "strings"

// UnharmonizedPrefix is the reserved dotted prefix under which federation
// members attach site-specific metadata. Any field name under this prefix is
// filterable without an allowlist entry; the suffix is open-ended by policy.
const UnharmonizedPrefix = "metadata.unharmonized."

// harmonizedFields is the static per-kind allowlist of field names that may
// be used for filtering, grouping, and counting. It is fixed at compile time
// and never mutated, so concurrent reads need no synchronization.
var harmonizedFields = map[Kind][]string{
	KindSubject: {
		"sex",
		"race",
		"ethnicity",
		"identifiers",
		"vital_status",
		"age_at_vital_status",
		"associated_diagnoses",
		"depositions",
	},
	KindSample: {
		"disease_phase",
		"anatomical_sites",
		"library_selection_method",
		"library_strategy",
		"library_source_material",
		"preservation_method",
		"tumor_grade",
		"specimen_molecular_analyte_type",
		"tissue_type",
		"tumor_classification",
		"age_at_diagnosis",
		"age_at_collection",
		"tumor_tissue_morphology",
		"depositions",
		"diagnosis",
	},
	KindFile: {
		"type",
		"size",
		"checksums",
		"description",
		"depositions",
	},
}

var allowedFieldSet = func() map[Kind]map[string]struct{} {
	sets := make(map[Kind]map[string]struct{}, len(harmonizedFields))
	for kind, fields := range harmonizedFields {
		set := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			set[f] = struct{}{}
		}
		sets[kind] = set
	}
	return sets
}()

// IsFieldAllowed reports whether a field may be used in filter, group, and
// count operations for the given kind. Names under UnharmonizedPrefix are
// always allowed; everything else must appear in the kind's static table.
func IsFieldAllowed(kind Kind, field string) bool {
	if IsUnharmonized(field) {
		return true
	}
	_, ok := allowedFieldSet[kind][field]
	return ok
}

// IsUnharmonized reports whether a field name falls under the reserved
// site-specific metadata prefix.
func IsUnharmonized(field string) bool {
	return strings.HasPrefix(field, UnharmonizedPrefix)
}

// HarmonizedFields returns the allowlisted field names for a kind in
// declaration order. The returned slice is a copy.
func HarmonizedFields(kind Kind) []string {
	fields := harmonizedFields[kind]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}
