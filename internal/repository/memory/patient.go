package memory

import (
	"context"
	"fmt"

	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/repository"
	apperrors "github.com/jwalitptl/baseline-api/pkg/errors"
	"github.com/jwalitptl/baseline-api/pkg/metrics"
)

const patientEntity = "patient"

type patientRepository struct {
	store   *Store[model.Patient]
	metrics *metrics.Metrics
}

func NewPatientRepository(store *Store[model.Patient], m *metrics.Metrics) repository.PatientRepository {
	m.SetRecords(patientEntity, store.Len())
	return &patientRepository{store: store, metrics: m}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) (err error) {
	defer func() { r.metrics.ObserveStoreOp(patientEntity, "create", err) }()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	if err := r.store.Insert(*patient); err != nil {
		return fmt.Errorf("failed to create patient %s: %w", patient.ID, err)
	}
	r.metrics.SetRecords(patientEntity, r.store.Len())
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id string) (_ *model.Patient, err error) {
	defer func() { r.metrics.ObserveStoreOp(patientEntity, "get", err) }()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	patient, ok := r.store.Get(id)
	if !ok {
		return nil, apperrors.NotFound("Patient")
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) (err error) {
	defer func() { r.metrics.ObserveStoreOp(patientEntity, "update", err) }()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	if !r.store.Replace(patient.ID, *patient) {
		return apperrors.NotFound("Patient")
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id string) (err error) {
	defer func() { r.metrics.ObserveStoreOp(patientEntity, "delete", err) }()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	if !r.store.Delete(id) {
		return apperrors.NotFound("Patient")
	}
	r.metrics.SetRecords(patientEntity, r.store.Len())
	return nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) (_ []*model.Patient, err error) {
	defer func() { r.metrics.ObserveStoreOp(patientEntity, "list", err) }()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	all := r.store.List()
	patients := make([]*model.Patient, 0, len(all))
	for i := range all {
		if matchPatient(&all[i], filters) {
			patients = append(patients, &all[i])
		}
	}
	return patients, nil
}

func (r *patientRepository) NextID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("failed to allocate patient id: %w", err)
	}
	return r.store.NextID(), nil
}

func matchPatient(p *model.Patient, f *model.PatientFilters) bool {
	if f == nil {
		return true
	}
	if f.Department != "" && p.Department != f.Department {
		return false
	}
	if f.Query != "" &&
		!containsFold(p.Name, f.Query) &&
		!containsFold(p.MedicalRecordNumber, f.Query) &&
		!containsFold(p.Department, f.Query) {
		return false
	}
	return true
}
