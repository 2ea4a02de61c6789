package memory

import (
	"time"

	"github.com/jwalitptl/baseline-api/internal/model"
)

// Stores groups one store per entity kind.
type Stores struct {
	Patients     *Store[model.Patient]
	Appointments *Store[model.Appointment]
	Users        *Store[model.User]
}

// NewStores builds empty stores, or stores holding the demo data set when
// seed is true. Users are always seeded since nothing else creates them.
func NewStores(seed bool, now time.Time) *Stores {
	if !seed {
		return &Stores{
			Patients:     NewStore[model.Patient](),
			Appointments: NewStore[model.Appointment](),
			Users:        NewStore(SeedUsers()...),
		}
	}
	return &Stores{
		Patients:     NewStore(SeedPatients(now)...),
		Appointments: NewStore(SeedAppointments(now)...),
		Users:        NewStore(SeedUsers()...),
	}
}

func SeedUsers() []model.User {
	return []model.User{
		{ID: "1", Username: "admin", Password: "admin123", Role: model.UserRoleAdmin, Department: "Administration"},
		{ID: "2", Username: "doctor1", Password: "doctor123", Role: model.UserRoleDoctor, Department: "Cardiology"},
		{ID: "3", Username: "nurse1", Password: "nurse123", Role: model.UserRoleNurse, Department: "Emergency"},
	}
}

func SeedPatients(now time.Time) []model.Patient {
	return []model.Patient{
		{
			ID:                  "1",
			Name:                "John Doe",
			Age:                 45,
			Gender:              "Male",
			MedicalRecordNumber: "MRN001",
			BloodType:           "O+",
			Allergies:           []string{"Penicillin"},
			ChronicConditions:   []string{"Hypertension"},
			Department:          "Cardiology",
			CreatedAt:           now,
		},
		{
			ID:                  "2",
			Name:                "Jane Smith",
			Age:                 32,
			Gender:              "Female",
			MedicalRecordNumber: "MRN002",
			BloodType:           "A-",
			Allergies:           []string{"Latex"},
			ChronicConditions:   []string{"Diabetes Type 2"},
			Department:          "Emergency",
			CreatedAt:           now,
		},
		{
			ID:                  "3",
			Name:                "Samantha Johnson",
			Age:                 55,
			Gender:              "Female",
			MedicalRecordNumber: "MRN003",
			BloodType:           "B+",
			Allergies:           []string{"Penicillin"},
			ChronicConditions:   []string{"Hypertension"},
			Department:          "Cardiology",
			CreatedAt:           now,
		},
		{
			ID:                  "4",
			Name:                "Robert Williams",
			Age:                 62,
			Gender:              "Male",
			MedicalRecordNumber: "MRN004",
			BloodType:           "AB+",
			Allergies:           []string{},
			ChronicConditions:   []string{"Diabetes Type 2", "High Cholesterol"},
			Department:          "Emergency",
			CreatedAt:           now,
		},
	}
}

func SeedAppointments(now time.Time) []model.Appointment {
	return []model.Appointment{
		{
			ID:          "1",
			PatientID:   "1",
			PatientName: "John Doe",
			Department:  "Cardiology",
			DoctorID:    "2",
			DoctorName:  "Dr. Smith",
			Date:        "2024-12-15",
			Time:        "10:00 AM",
			Type:        "Consultation",
			Status:      model.AppointmentStatusScheduled,
			Notes:       "Regular checkup",
			CreatedAt:   now,
		},
		{
			ID:          "2",
			PatientID:   "2",
			PatientName: "Jane Smith",
			Department:  "Emergency",
			DoctorID:    "2",
			DoctorName:  "Dr. Smith",
			Date:        "2024-12-16",
			Time:        "2:00 PM",
			Type:        "Follow-up",
			Status:      model.AppointmentStatusScheduled,
			Notes:       "Post-surgery follow-up",
			CreatedAt:   now,
		},
	}
}
