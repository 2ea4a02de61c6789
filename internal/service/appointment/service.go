package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/repository"
	apperrors "github.com/jwalitptl/baseline-api/pkg/errors"
	"github.com/jwalitptl/baseline-api/pkg/validator"
)

const msgRequiredFields = "Patient ID, date, time, and type are required"

type AppointmentService interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, patch map[string]json.RawMessage) (*model.Appointment, *model.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) (*model.Appointment, error)
	ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
}

// PatientLookup resolves the patient an appointment is booked for.
type PatientLookup interface {
	GetPatient(ctx context.Context, id string) (*model.Patient, error)
}

type Service struct {
	repo      repository.AppointmentRepository
	patients  PatientLookup
	validator validator.Validator
	now       func() time.Time
}

func NewService(repo repository.AppointmentRepository, patients PatientLookup, v validator.Validator) *Service {
	return &Service{
		repo:      repo,
		patients:  patients,
		validator: v,
		now:       time.Now,
	}
}

// CreateAppointment books an appointment for an existing patient. The
// patient's name and department are copied onto the appointment once and
// never re-synced.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if missing := s.validator.MissingFields(req); len(missing) > 0 {
		return nil, apperrors.Validation(msgRequiredFields, map[string]interface{}{
			"missingFields": missing,
		})
	}

	patient, err := s.patients.GetPatient(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	appointment := &model.Appointment{
		ID:          id,
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		Department:  patient.Department,
		DoctorID:    req.DoctorID,
		DoctorName:  req.DoctorName,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
		Status:      req.Status,
		Notes:       req.Notes,
		CreatedAt:   s.now().UTC(),
	}
	if appointment.PatientName == "" {
		appointment.PatientName = patient.Name
	}
	if appointment.DoctorID == "" {
		appointment.DoctorID = model.DefaultDoctorID
	}
	if appointment.DoctorName == "" {
		appointment.DoctorName = model.DefaultDoctorName
	}
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusScheduled
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment %s: %w", id, err)
	}
	return appointment, nil
}

// UpdateAppointment shallow-merges patch over the stored record. The patient
// reference is not re-validated.
func (s *Service) UpdateAppointment(ctx context.Context, id string, patch map[string]json.RawMessage) (*model.Appointment, *model.Appointment, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}

	merged, err := model.Merge(*current, patch, "id", "updatedAt")
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.Validation("Invalid appointment data", nil), err)
	}
	merged.ID = current.ID
	updatedAt := s.now().UTC()
	merged.UpdatedAt = &updatedAt

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return &merged, current, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	return appointment, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
