package sample

import (
	"github.com/ccdi/federation/internal/domain/entity"
)

// Sample is the line-level sample record returned by the API. The sequencing
// library and tumor morphology fields follow the harmonized data dictionary;
// AnatomicalSites is always a list even when a node stores a single string.
type Sample struct {
	ID                           string           `json:"id,omitempty"`
	Identifiers                  []string         `json:"identifiers"`
	DiseasePhase                 any              `json:"disease_phase"`
	AnatomicalSites              []string         `json:"anatomical_sites"`
	LibrarySelectionMethod       any              `json:"library_selection_method"`
	LibraryStrategy              any              `json:"library_strategy"`
	LibrarySourceMaterial        any              `json:"library_source_material"`
	PreservationMethod           any              `json:"preservation_method"`
	TumorGrade                   any              `json:"tumor_grade"`
	SpecimenMolecularAnalyteType any              `json:"specimen_molecular_analyte_type"`
	TissueType                   any              `json:"tissue_type"`
	TumorClassification          any              `json:"tumor_classification"`
	AgeAtDiagnosis               any              `json:"age_at_diagnosis"`
	AgeAtCollection              any              `json:"age_at_collection"`
	TumorTissueMorphology        any              `json:"tumor_tissue_morphology"`
	Depositions                  any              `json:"depositions"`
	Diagnosis                    any              `json:"diagnosis"`
	Metadata                     *entity.Metadata `json:"metadata,omitempty"`
	AdditionalFields             *entity.Fields   `json:"additional_fields,omitempty"`
}

// FromProps maps a Sample node's property map onto the response model.
func FromProps(props map[string]any) Sample {
	meta, extra := entity.CollectExtras(props,
		"id", "identifiers", "disease_phase", "anatomical_sites",
		"library_selection_method", "library_strategy", "library_source_material",
		"preservation_method", "tumor_grade", "specimen_molecular_analyte_type",
		"tissue_type", "tumor_classification", "age_at_diagnosis",
		"age_at_collection", "tumor_tissue_morphology", "depositions", "diagnosis")
	return Sample{
		ID:                           entity.StringValue(props["id"]),
		Identifiers:                  entity.StringList(props["identifiers"]),
		DiseasePhase:                 props["disease_phase"],
		AnatomicalSites:              entity.StringList(props["anatomical_sites"]),
		LibrarySelectionMethod:       props["library_selection_method"],
		LibraryStrategy:              props["library_strategy"],
		LibrarySourceMaterial:        props["library_source_material"],
		PreservationMethod:           props["preservation_method"],
		TumorGrade:                   props["tumor_grade"],
		SpecimenMolecularAnalyteType: props["specimen_molecular_analyte_type"],
		TissueType:                   props["tissue_type"],
		TumorClassification:          props["tumor_classification"],
		AgeAtDiagnosis:               props["age_at_diagnosis"],
		AgeAtCollection:              props["age_at_collection"],
		TumorTissueMorphology:        props["tumor_tissue_morphology"],
		Depositions:                  entity.ListOrEmpty(props["depositions"]),
		Diagnosis:                    props["diagnosis"],
		Metadata:                     meta,
		AdditionalFields:             extra,
	}
}
