package model

// DashboardStats mirrors the summary cards of the dashboard view.
type DashboardStats struct {
	TotalPatients         int            `json:"totalPatients"`
	TotalAppointments     int            `json:"totalAppointments"`
	ScheduledAppointments int            `json:"scheduledAppointments"`
	Departments           []string       `json:"departments"`
	RecentAppointments    []*Appointment `json:"recentAppointments"`
}
