package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/repository"
	apperrors "github.com/jwalitptl/baseline-api/pkg/errors"
	"github.com/jwalitptl/baseline-api/pkg/metrics"
)

const appointmentEntity = "appointment"

type appointmentRepository struct {
	store   *Store[model.Appointment]
	metrics *metrics.Metrics
}

func NewAppointmentRepository(store *Store[model.Appointment], m *metrics.Metrics) repository.AppointmentRepository {
	m.SetRecords(appointmentEntity, store.Len())
	return &appointmentRepository{store: store, metrics: m}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) (err error) {
	defer func() { r.metrics.ObserveStoreOp(appointmentEntity, "create", err) }()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	if err := r.store.Insert(*appointment); err != nil {
		return fmt.Errorf("failed to create appointment %s: %w", appointment.ID, err)
	}
	r.metrics.SetRecords(appointmentEntity, r.store.Len())
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id string) (_ *model.Appointment, err error) {
	defer func() { r.metrics.ObserveStoreOp(appointmentEntity, "get", err) }()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	appointment, ok := r.store.Get(id)
	if !ok {
		return nil, apperrors.NotFound("Appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) (err error) {
	defer func() { r.metrics.ObserveStoreOp(appointmentEntity, "update", err) }()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if !r.store.Replace(appointment.ID, *appointment) {
		return apperrors.NotFound("Appointment")
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) (err error) {
	defer func() { r.metrics.ObserveStoreOp(appointmentEntity, "delete", err) }()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if !r.store.Delete(id) {
		return apperrors.NotFound("Appointment")
	}
	r.metrics.SetRecords(appointmentEntity, r.store.Len())
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) (_ []*model.Appointment, err error) {
	defer func() { r.metrics.ObserveStoreOp(appointmentEntity, "list", err) }()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	all := r.store.List()
	appointments := make([]*model.Appointment, 0, len(all))
	for i := range all {
		if matchAppointment(&all[i], filters) {
			appointments = append(appointments, &all[i])
		}
	}
	return appointments, nil
}

func (r *appointmentRepository) NextID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("failed to allocate appointment id: %w", err)
	}
	return r.store.NextID(), nil
}

func matchAppointment(a *model.Appointment, f *model.AppointmentFilters) bool {
	if f == nil {
		return true
	}
	if f.PatientID != "" && a.PatientID != f.PatientID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Query != "" &&
		!containsFold(a.PatientName, f.Query) &&
		!containsFold(a.DoctorName, f.Query) &&
		!containsFold(a.Type, f.Query) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
