package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/repository"
)

const recentLimit = 5

type Service struct {
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
}

func NewService(patients repository.PatientRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{
		patients:     patients,
		appointments: appointments,
	}
}

// Dashboard aggregates the summary shown on the dashboard view.
func (s *Service) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	patients, err := s.patients.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}
	appointments, err := s.appointments.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	stats := &model.DashboardStats{
		TotalPatients:     len(patients),
		TotalAppointments: len(appointments),
		Departments:       []string{},
	}

	seen := make(map[string]struct{})
	for _, p := range patients {
		if p.Department == "" {
			continue
		}
		if _, ok := seen[p.Department]; ok {
			continue
		}
		seen[p.Department] = struct{}{}
		stats.Departments = append(stats.Departments, p.Department)
	}

	for _, a := range appointments {
		if a.Status == model.AppointmentStatusScheduled {
			stats.ScheduledAppointments++
		}
	}

	recent := append([]*model.Appointment(nil), appointments...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	stats.RecentAppointments = recent
	if stats.RecentAppointments == nil {
		stats.RecentAppointments = []*model.Appointment{}
	}

	return stats, nil
}
