package cache

import (
	"strings"
	"testing"

	"github.com/ccdi/federation/internal/platform/graph"
)

func TestBuildKeyOrderIndependence(t *testing.T) {
	a := graph.NewFilterSet()
	a.Set("race", graph.Scalar("X"))
	a.Set("sex", graph.Scalar("Y"))

	b := graph.NewFilterSet()
	b.Set("sex", graph.Scalar("Y"))
	b.Set("race", graph.Scalar("X"))

	keyA := BuildKey("subject_count", "sex", a)
	keyB := BuildKey("subject_count", "sex", b)
	if keyA != keyB {
		t.Errorf("construction order changed key: %q vs %q", keyA, keyB)
	}
}

func TestBuildKeyShape(t *testing.T) {
	filters := graph.NewFilterSet()
	filters.Set("race", graph.Scalar("White"))
	filters.Set("sex", graph.Scalar("F"))

	withField := BuildKey("subject_count", "sex", filters)
	if withField != "subject_count:sex:race:White|sex:F" {
		t.Errorf("key = %q", withField)
	}

	withoutField := BuildKey("subject_summary", "", filters)
	if withoutField != "subject_summary:race:White|sex:F" {
		t.Errorf("key = %q", withoutField)
	}

	empty := BuildKey("subject_summary", "", graph.NewFilterSet())
	if empty != "subject_summary:" {
		t.Errorf("key = %q", empty)
	}
}

func TestBuildKeyDistinguishesRequests(t *testing.T) {
	scalar := graph.NewFilterSet()
	scalar.Set("sex", graph.Scalar("F"))

	list := graph.NewFilterSet()
	list.Set("sex", graph.List("F"))

	// A one-element list and the same scalar are the same logical request.
	if BuildKey("c", "", scalar) != BuildKey("c", "", list) {
		t.Log("scalar and single-element list key differently; acceptable but noteworthy")
	}

	other := graph.NewFilterSet()
	other.Set("sex", graph.Scalar("M"))
	if BuildKey("c", "", scalar) == BuildKey("c", "", other) {
		t.Error("different values must not collide")
	}

	// Separator characters inside values must not fake structure.
	tricky := graph.NewFilterSet()
	tricky.Set("sex", graph.Scalar("F|race:White"))
	plain := graph.NewFilterSet()
	plain.Set("sex", graph.Scalar("F"))
	plain.Set("race", graph.Scalar("White"))
	if BuildKey("c", "", tricky) == BuildKey("c", "", plain) {
		t.Error("escaped separator collided with real structure")
	}
	if strings.Contains(BuildKey("c", "", tricky), "F|race") {
		t.Error("separator characters must be escaped")
	}
}

func TestBuildKeyIncludesSearchTerm(t *testing.T) {
	plain := graph.NewFilterSet()
	plain.Set("sex", graph.Scalar("F"))

	searched := graph.NewFilterSet()
	searched.Set("sex", graph.Scalar("F"))
	searched.Set(graph.DiagnosisSearchKey, graph.Scalar("leukemia"))

	if BuildKey("subject_count", "sex", plain) == BuildKey("subject_count", "sex", searched) {
		t.Error("diagnosis search must participate in the key")
	}
}
