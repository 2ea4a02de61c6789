package patient

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

const msgRequiredFields = "Name, age, and medical record number are required"

type PatientService interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id string) (*model.Patient, error)
	// UpdatePatient returns the updated record and the one it replaced.
	UpdatePatient(ctx context.Context, id string, patch map[string]json.RawMessage) (*model.Patient, *model.Patient, error)
	DeletePatient(ctx context.Context, id string) (*model.Patient, error)
	ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
}

type Service struct {
	repo      repository.PatientRepository
	validator validator.Validator
	now       func() time.Time
}

func NewService(repo repository.PatientRepository, v validator.Validator) *Service {
	return &Service{
		repo:      repo,
		validator: v,
		now:       time.Now,
	}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if missing := s.validator.MissingFields(req); len(missing) > 0 {
		return nil, apperrors.Validation(msgRequiredFields, map[string]interface{}{
			"missingFields": missing,
		})
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	patient := &model.Patient{
		ID:                  id,
		Name:                req.Name,
		Age:                 req.Age,
		Gender:              req.Gender,
		MedicalRecordNumber: req.MedicalRecordNumber,
		BloodType:           req.BloodType,
		Allergies:           req.Allergies,
		ChronicConditions:   req.ChronicConditions,
		Department:          req.Department,
		CreatedAt:           s.now().UTC(),
	}
	if patient.Department == "" {
		patient.Department = model.DefaultDepartment
	}
	if patient.Allergies == nil {
		patient.Allergies = []string{}
	}
	if patient.ChronicConditions == nil {
		patient.ChronicConditions = []string{}
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient %s: %w", id, err)
	}
	return patient, nil
}

// UpdatePatient shallow-merges patch over the stored record. Every member of
// patch overrides, unknown members are kept, and the id never changes.
func (s *Service) UpdatePatient(ctx context.Context, id string, patch map[string]json.RawMessage) (*model.Patient, *model.Patient, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update patient %s: %w", id, err)
	}

	merged, err := model.Merge(*current, patch, "id", "updatedAt")
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.Validation("Invalid patient data", nil), err)
	}
	merged.ID = current.ID
	updatedAt := s.now().UTC()
	merged.UpdatedAt = &updatedAt

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, nil, fmt.Errorf("failed to update patient %s: %w", id, err)
	}
	return &merged, current, nil
}

// DeletePatient removes the record and returns it. Appointments that
// reference the patient are left in place.
func (s *Service) DeletePatient(ctx context.Context, id string) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete patient %s: %w", id, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete patient %s: %w", id, err)
	}
	return patient, nil
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
