package domain

// Severity grades a quality finding on a normalized note.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Specialty narrows the generation prompt to a clinical area.
type Specialty string

const (
	SpecialtyGeneral         Specialty = "general"
	SpecialtyMusculoskeletal Specialty = "musculoskeletal"
	SpecialtyNeurological    Specialty = "neurological"
	SpecialtyRespiratory     Specialty = "respiratory"
	SpecialtySports          Specialty = "sports"
	SpecialtyGeriatric       Specialty = "geriatric"
)

// ValidSpecialties lists the accepted specialty values.
var ValidSpecialties = map[Specialty]bool{
	SpecialtyGeneral:         true,
	SpecialtyMusculoskeletal: true,
	SpecialtyNeurological:    true,
	SpecialtyRespiratory:     true,
	SpecialtySports:          true,
	SpecialtyGeriatric:       true,
}

// QualityStatus summarises the quality findings of a normalized note.
type QualityStatus string

const (
	QualityGood     QualityStatus = "good"
	QualityDegraded QualityStatus = "degraded"
	QualitySparse   QualityStatus = "sparse"
)
