package repository

import (
	"context"

	"github.com/jwalitptl/baseline-api/internal/model"
)

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
		NextID(ctx context.Context) (string, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id string) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		NextID(ctx context.Context) (string, error)
	}

	// UserRepository is read-only; users only come from seed data.
	UserRepository interface {
		GetByUsername(ctx context.Context, username string) (*model.User, error)
	}
)
