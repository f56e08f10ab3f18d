package subject

import (
	"github.com/ccdi/federation/internal/domain/entity"
)

// Subject is the line-level subject record returned by the API. Harmonized
// fields are declared; whatever else a node carries is either folded into
// Metadata (unharmonized keys) or surfaced through AdditionalFields.
type Subject struct {
	ID                  string           `json:"id,omitempty"`
	Identifiers         []string         `json:"identifiers"`
	Sex                 any              `json:"sex"`
	Race                any              `json:"race"`
	Ethnicity           any              `json:"ethnicity"`
	VitalStatus         any              `json:"vital_status"`
	AgeAtVitalStatus    any              `json:"age_at_vital_status"`
	AssociatedDiagnoses any              `json:"associated_diagnoses"`
	Depositions         any              `json:"depositions"`
	Metadata            *entity.Metadata `json:"metadata,omitempty"`
	AdditionalFields    *entity.Fields   `json:"additional_fields,omitempty"`
}

// FromProps maps a Subject node's property map onto the response model.
func FromProps(props map[string]any) Subject {
	meta, extra := entity.CollectExtras(props,
		"id", "identifiers", "sex", "race", "ethnicity", "vital_status",
		"age_at_vital_status", "associated_diagnoses", "depositions")
	return Subject{
		ID:                  entity.StringValue(props["id"]),
		Identifiers:         entity.StringList(props["identifiers"]),
		Sex:                 props["sex"],
		Race:                props["race"],
		Ethnicity:           props["ethnicity"],
		VitalStatus:         props["vital_status"],
		AgeAtVitalStatus:    props["age_at_vital_status"],
		AssociatedDiagnoses: props["associated_diagnoses"],
		Depositions:         entity.ListOrEmpty(props["depositions"]),
		Metadata:            meta,
		AdditionalFields:    extra,
	}
}
