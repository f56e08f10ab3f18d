package graph

// Kind identifies one of the federated entity types.
type Kind string

const (
	KindSubject Kind = "subject"
	KindSample  Kind = "sample"
	KindFile    Kind = "file"
)

// Definition describes how an entity kind is stored and addressed in the
// property graph: the node label matched by every query, the variable the
// node is bound to, and the harmonized field targeted by diagnosis search
// (empty for kinds without one).
type Definition struct {
	Kind           Kind
	Label          string
	Alias          string
	Plural         string
	DiagnosisField string
}

var definitions = map[Kind]Definition{
	KindSubject: {
		Kind:           KindSubject,
		Label:          "Subject",
		Alias:          "s",
		Plural:         "subjects",
		DiagnosisField: "associated_diagnoses",
	},
	KindSample: {
		Kind:           KindSample,
		Label:          "Sample",
		Alias:          "s",
		Plural:         "samples",
		DiagnosisField: "diagnosis",
	},
	KindFile: {
		Kind:           KindFile,
		Label:          "File",
		Alias:          "f",
		Plural:         "files",
		DiagnosisField: "",
	},
}

// Def returns the definition for a kind. Kinds are a closed set; asking for
// an unknown kind is a programming error and panics.
func Def(kind Kind) Definition {
	def, ok := definitions[kind]
	if !ok {
		panic("graph: unknown entity kind " + string(kind))
	}
	return def
}

// ParseKind maps a path segment like "subject" onto a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindSubject, KindSample, KindFile:
		return Kind(s), true
	}
	return "", false
}

// Kinds returns all entity kinds in a fixed order.
func Kinds() []Kind {
	return []Kind{KindSubject, KindSample, KindFile}
}
