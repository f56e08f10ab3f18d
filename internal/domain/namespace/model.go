package namespace

// Namespace identifies one organization/namespace pair observed in the graph.
// Pairs are not registered anywhere; they exist because at least one entity
// carries a compound identifier under them.
type Namespace struct {
	Organization string `json:"organization"`
	Name         string `json:"name"`
}

// Detail is the namespace detail response, extending the pair with the
// entity population found under it.
type Detail struct {
	Namespace
	Description  string   `json:"description"`
	ContactEmail string   `json:"contact_email,omitempty"`
	EntityCount  int64    `json:"entity_count"`
	EntityTypes  []string `json:"entity_types"`
}
