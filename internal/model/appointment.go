package model

import (
	"time"
)

const (
	AppointmentStatusScheduled = "Scheduled"

	DefaultDoctorID   = "N/A"
	DefaultDoctorName = "Dr. Unknown"
)

type Appointment struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patientId"`
	PatientName string     `json:"patientName"`
	Department  string     `json:"department"`
	DoctorID    string     `json:"doctorId"`
	DoctorName  string     `json:"doctorName"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	Attributes  Attributes `json:"-"`
}

type appointmentJSON Appointment

func (a Appointment) MarshalJSON() ([]byte, error) {
	return marshalWithAttributes(appointmentJSON(a), a.Attributes)
}

func (a *Appointment) UnmarshalJSON(data []byte) error {
	var raw appointmentJSON
	attrs, err := unmarshalWithAttributes(data, &raw)
	if err != nil {
		return err
	}
	*a = Appointment(raw)
	a.Attributes = attrs
	return nil
}

func (a Appointment) GetID() string {
	return a.ID
}

func (a Appointment) Clone() Appointment {
	out := a
	out.Attributes = a.Attributes.Clone()
	if a.UpdatedAt != nil {
		t := *a.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// CreateAppointmentRequest mirrors the create form. PatientName, when given,
// overrides the name copied from the patient record.
type CreateAppointmentRequest struct {
	PatientID   string `json:"patientId" validate:"required"`
	PatientName string `json:"patientName"`
	DoctorID    string `json:"doctorId"`
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

type createAppointmentRequestJSON CreateAppointmentRequest

func (r *CreateAppointmentRequest) UnmarshalJSON(data []byte) error {
	var raw createAppointmentRequestJSON
	if _, err := unmarshalWithAttributes(data, &raw); err != nil {
		return err
	}
	*r = CreateAppointmentRequest(raw)
	return nil
}

type AppointmentFilters struct {
	Query     string `form:"q"`
	PatientID string `form:"patientId"`
	Status    string `form:"status"`
}
