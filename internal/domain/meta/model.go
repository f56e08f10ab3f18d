package meta

// FieldsResponse lists the filterable field names for one entity kind.
// Harmonized names come from the static allowlist; unharmonized names are
// whatever keys federation members have attached under the reserved prefix.
type FieldsResponse struct {
	Harmonized   []string `json:"harmonized"`
	Unharmonized []string `json:"unharmonized"`
}

// Information describes this federation node to callers.
type Information struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Organization string `json:"organization,omitempty"`
	ContactEmail string `json:"contact_email"`
}

// InformationResponse wraps Information for the /info endpoint.
type InformationResponse struct {
	Information Information `json:"information"`
}
