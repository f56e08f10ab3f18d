package graph

import (
	"strings"
	"testing"
)

func TestDiagnosisClauseSubject(t *testing.T) {
	fragment, params := DiagnosisClause(Def(KindSubject), "Leukemia")

	if !strings.Contains(fragment, "s.associated_diagnoses") {
		t.Errorf("harmonized field missing: %s", fragment)
	}
	if !strings.Contains(fragment, "toLower") {
		t.Errorf("expected case-insensitive match: %s", fragment)
	}
	if !strings.Contains(fragment, "keys(s)") {
		t.Errorf("unharmonized key scan missing: %s", fragment)
	}
	if !strings.Contains(fragment, UnharmonizedPrefix) {
		t.Errorf("unharmonized scan should be limited to the reserved prefix: %s", fragment)
	}
	if params[DiagnosisParam] != "Leukemia" {
		t.Errorf("term not bound: %v", params)
	}
	if len(params) != 1 {
		t.Errorf("expected a single bound parameter, got %v", params)
	}
}

func TestDiagnosisClauseSample(t *testing.T) {
	fragment, _ := DiagnosisClause(Def(KindSample), "osteosarcoma")
	if !strings.Contains(fragment, "s.diagnosis") {
		t.Errorf("sample harmonized field missing: %s", fragment)
	}
}

func TestDiagnosisClauseWithoutHarmonizedField(t *testing.T) {
	fragment, _ := DiagnosisClause(Def(KindFile), "glioma")
	if strings.Contains(fragment, "f.associated_diagnoses") || strings.Contains(fragment, "f.diagnosis") {
		t.Errorf("file clause should not reference a harmonized diagnosis field: %s", fragment)
	}
	if !strings.Contains(fragment, "keys(f)") {
		t.Errorf("unharmonized key scan missing: %s", fragment)
	}
}
