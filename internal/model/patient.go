package model

import (
	"time"
)

const DefaultDepartment = "General"

type Patient struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Age                 int        `json:"age"`
	Gender              string     `json:"gender"`
	MedicalRecordNumber string     `json:"medicalRecordNumber"`
	BloodType           string     `json:"bloodType"`
	Allergies           []string   `json:"allergies"`
	ChronicConditions   []string   `json:"chronicConditions"`
	Department          string     `json:"department"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
	Attributes          Attributes `json:"-"`
}

// patientJSON drops Patient's methods so the codec can use the default encoding.
type patientJSON Patient

func (p Patient) MarshalJSON() ([]byte, error) {
	return marshalWithAttributes(patientJSON(p), p.Attributes)
}

func (p *Patient) UnmarshalJSON(data []byte) error {
	var raw patientJSON
	attrs, err := unmarshalWithAttributes(data, &raw)
	if err != nil {
		return err
	}
	*p = Patient(raw)
	p.Attributes = attrs
	return nil
}

func (p Patient) GetID() string {
	return p.ID
}

func (p Patient) Clone() Patient {
	out := p
	out.Allergies = cloneStrings(p.Allergies)
	out.ChronicConditions = cloneStrings(p.ChronicConditions)
	out.Attributes = p.Attributes.Clone()
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

type CreatePatientRequest struct {
	Name                string   `json:"name" validate:"required"`
	Age                 int      `json:"age" validate:"required"`
	Gender              string   `json:"gender"`
	MedicalRecordNumber string   `json:"medicalRecordNumber" validate:"required"`
	BloodType           string   `json:"bloodType"`
	Allergies           []string `json:"allergies"`
	ChronicConditions   []string `json:"chronicConditions"`
	Department          string   `json:"department"`
}

type createPatientRequestJSON CreatePatientRequest

// UnmarshalJSON matches member names exactly so a case variant cannot
// satisfy a required field.
func (r *CreatePatientRequest) UnmarshalJSON(data []byte) error {
	var raw createPatientRequestJSON
	if _, err := unmarshalWithAttributes(data, &raw); err != nil {
		return err
	}
	*r = CreatePatientRequest(raw)
	return nil
}

type PatientFilters struct {
	Query      string `form:"q"`
	Department string `form:"department"`
}
