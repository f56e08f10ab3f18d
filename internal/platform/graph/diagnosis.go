package graph

import "fmt"

// DiagnosisParam is the fixed bound-parameter name for the diagnosis search
// term. Numbered filter parameters can never collide with it.
const DiagnosisParam = "diagnosis_search"

// diagnosisKeyPattern matches unharmonized key names that look
// diagnosis-related.
const diagnosisKeyPattern = "diagnos"

// DiagnosisClause renders the free-text diagnosis predicate: a
// case-insensitive substring match against the kind's harmonized diagnosis
// field, or against the value of any unharmonized key whose name contains
// "diagnos". Kinds without a harmonized diagnosis field match unharmonized
// keys only.
func DiagnosisClause(def Definition, term string) (string, map[string]any) {
	unharmonized := fmt.Sprintf(
		"any(key IN keys(%s) WHERE key STARTS WITH '%s' AND toLower(key) CONTAINS '%s' AND toLower(toString(%s[key])) CONTAINS toLower($%s))",
		def.Alias, UnharmonizedPrefix, diagnosisKeyPattern, def.Alias, DiagnosisParam)

	fragment := unharmonized
	if def.DiagnosisField != "" {
		harmonized := fmt.Sprintf("toLower(toString(%s.%s)) CONTAINS toLower($%s)",
			def.Alias, def.DiagnosisField, DiagnosisParam)
		fragment = harmonized + " OR " + unharmonized
	}
	return "(" + fragment + ")", map[string]any{DiagnosisParam: term}
}
