package file

import (
	"github.com/ccdi/federation/internal/domain/entity"
)

// File is the file record returned by the API. Checksums is always an
// object keyed by algorithm, empty when a node carries none.
type File struct {
	ID               string           `json:"id,omitempty"`
	Identifiers      []string         `json:"identifiers"`
	Type             any              `json:"type"`
	Size             any              `json:"size"`
	Checksums        map[string]any   `json:"checksums"`
	Description      any              `json:"description"`
	Depositions      any              `json:"depositions"`
	Metadata         *entity.Metadata `json:"metadata,omitempty"`
	AdditionalFields *entity.Fields   `json:"additional_fields,omitempty"`
}

// FromProps maps a File node's property map onto the response model.
func FromProps(props map[string]any) File {
	meta, extra := entity.CollectExtras(props,
		"id", "identifiers", "type", "size", "checksums", "description", "depositions")
	return File{
		ID:               entity.StringValue(props["id"]),
		Identifiers:      entity.StringList(props["identifiers"]),
		Type:             props["type"],
		Size:             props["size"],
		Checksums:        entity.MapOrEmpty(props["checksums"]),
		Description:      props["description"],
		Depositions:      entity.ListOrEmpty(props["depositions"]),
		Metadata:         meta,
		AdditionalFields: extra,
	}
}
