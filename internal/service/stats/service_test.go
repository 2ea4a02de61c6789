package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/repository/memory"
)

func TestDashboardOnSeedData(t *testing.T) {
	stores := memory.NewStores(true, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := NewService(
		memory.NewPatientRepository(stores.Patients, nil),
		memory.NewAppointmentRepository(stores.Appointments, nil),
	)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalPatients)
	assert.Equal(t, 2, stats.TotalAppointments)
	assert.Equal(t, 2, stats.ScheduledAppointments)
	assert.Equal(t, []string{"Cardiology", "Emergency"}, stats.Departments)
	assert.Len(t, stats.RecentAppointments, 2)
}

func TestDashboardRecentAppointments(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := memory.NewStore[model.Appointment]()
	for i := 1; i <= 7; i++ {
		status := model.AppointmentStatusScheduled
		if i%2 == 0 {
			status = "Completed"
		}
		require.NoError(t, store.Insert(model.Appointment{
			ID:        store.NextID(),
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	svc := NewService(
		memory.NewPatientRepository(memory.NewStore[model.Patient](), nil),
		memory.NewAppointmentRepository(store, nil),
	)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalPatients)
	assert.Equal(t, []string{}, stats.Departments)
	assert.Equal(t, 7, stats.TotalAppointments)
	assert.Equal(t, 4, stats.ScheduledAppointments)

	ids := []string{}
	for _, a := range stats.RecentAppointments {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"7", "6", "5", "4", "3"}, ids)
}
