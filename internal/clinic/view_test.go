package clinic_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"healthmate/internal/clinic"
	"healthmate/internal/model"
)

var (
	doc     = model.User{ID: "u2", Name: "Dr. Sarah Smith", Role: model.RoleDoctor, Spec: "Cardiology"}
	patient = model.User{ID: "u3", Name: "John Doe", Role: model.RolePatient, History: "No major allergies."}
)

func completed(id, date, notes, presc, bp string) model.Appointment {
	return model.Appointment{
		ID: id, PatID: "u3", DocID: "u2", PatName: "John Doe", Date: date, Status: model.StatusCompleted,
		Diagnosis: &model.Diagnosis{BP: bp, Notes: notes, Presc: presc},
	}
}

func TestBuildPatientDashboardEmpty(t *testing.T) {
	got := clinic.BuildPatientDashboard([]model.User{doc, patient}, nil, patient, "2023-11-20")
	want := &clinic.PatientDashboard{
		NextAppointment: "No upcoming visits",
		Appointments:    []clinic.AppointmentRow{},
		BloodPressure:   "--/--",
		History:         "No major allergies.",
		Prescriptions:   []clinic.PrescriptionEntry{},
		Doctors:         []clinic.DoctorOption{{ID: "u2", Label: "Dr. Sarah Smith - Cardiology"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dashboard mismatch (-want +got):\n%s", diff)
	}

	blank := patient
	blank.History = ""
	got = clinic.BuildPatientDashboard(nil, nil, blank, "2023-11-20")
	if got.History != "No records found." {
		t.Errorf("expected fallback history, got %q", got.History)
	}
}

func TestBuildPatientDashboard(t *testing.T) {
	long := strings.Repeat("x", 31)
	appts := []model.Appointment{
		completed("a1", "2023-10-01", "Flu", "Rest", "120/80"),
		{ID: "a2", PatID: "u3", DocID: "u9", Date: "2023-12-05", Status: model.StatusPending},
		{ID: "a3", PatID: "u4", DocID: "u2", Date: "2023-11-21", Status: model.StatusPending},
		completed("a4", "2023-09-01", long, "Aspirin", ""),
		{ID: "a5", PatID: "u3", DocID: "u2", Date: "2023-11-22", Status: model.StatusPending},
	}

	got := clinic.BuildPatientDashboard([]model.User{doc, patient}, appts, patient, "2023-11-20")
	want := &clinic.PatientDashboard{
		NextAppointment: "2023-11-22 with Dr. Sarah Smith",
		Appointments: []clinic.AppointmentRow{
			{ID: "a1", Date: "2023-10-01", DoctorID: "u2", DoctorName: "Dr. Sarah Smith", Status: "Completed", Badge: "success"},
			{ID: "a2", Date: "2023-12-05", DoctorID: "u9", DoctorName: "Unknown", Status: "Pending", Badge: "warning"},
			{ID: "a4", Date: "2023-09-01", DoctorID: "u2", DoctorName: "Dr. Sarah Smith", Status: "Completed", Badge: "success"},
			{ID: "a5", Date: "2023-11-22", DoctorID: "u2", DoctorName: "Dr. Sarah Smith", Status: "Pending", Badge: "warning"},
		},
		// a4 is last in array order even though it is older; its blank bp falls back
		BloodPressure: "--/--",
		History:       long,
		Prescriptions: []clinic.PrescriptionEntry{
			{AppointmentID: "a4", Date: "2023-09-01", Summary: strings.Repeat("x", 30) + "...", Prescription: "Aspirin"},
			{AppointmentID: "a1", Date: "2023-10-01", Summary: "Flu", Prescription: "Rest"},
		},
		Doctors: []clinic.DoctorOption{{ID: "u2", Label: "Dr. Sarah Smith - Cardiology"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dashboard mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPatientDashboardTodayIsUpcoming(t *testing.T) {
	appts := []model.Appointment{
		{ID: "a1", PatID: "u3", DocID: "u2", Date: "2023-11-19", Status: model.StatusPending},
		{ID: "a2", PatID: "u3", DocID: "u2", Date: "2023-11-20", Status: model.StatusPending},
	}
	got := clinic.BuildPatientDashboard([]model.User{doc}, appts, patient, "2023-11-20")
	if got.NextAppointment != "2023-11-20 with Dr. Sarah Smith" {
		t.Errorf("unexpected next appointment %q", got.NextAppointment)
	}
}

func TestSummaryRunes(t *testing.T) {
	notes := strings.Repeat("é", 30)
	appts := []model.Appointment{completed("a1", "2023-10-01", notes, "", "")}
	got := clinic.BuildPatientDashboard(nil, appts, patient, "2023-11-20")
	if got.Prescriptions[0].Summary != notes {
		t.Errorf("30 runes should not be cut, got %q", got.Prescriptions[0].Summary)
	}
}

func TestBuildDoctorDashboard(t *testing.T) {
	appts := []model.Appointment{
		{ID: "a1", PatID: "u3", DocID: "u2", PatName: "John Doe", Date: "2023-11-25", Status: model.StatusPending},
		completed("a2", "2023-10-01", "Flu", "", ""),
		{ID: "a3", PatID: "u4", DocID: "u9", PatName: "Other", Date: "2023-11-26", Status: model.StatusPending},
		{ID: "a4", PatID: "u5", DocID: "u2", PatName: "Jane Roe", Date: "2023-11-01", Status: model.StatusPending},
	}
	got := clinic.BuildDoctorDashboard(appts, "u2")
	want := &clinic.DoctorDashboard{Pending: []clinic.PendingEntry{
		{AppointmentID: "a1", PatientID: "u3", PatientName: "John Doe", Date: "2023-11-25"},
		{AppointmentID: "a4", PatientID: "u5", PatientName: "Jane Roe", Date: "2023-11-01"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dashboard mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"a1", "a4"}},
		{"jane", []string{"a4"}},
		{"DOE", []string{"a1"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run("filter "+tt.filter, func(t *testing.T) {
			var ids []string
			for _, e := range clinic.FilterPending(got.Pending, tt.filter) {
				ids = append(ids, e.AppointmentID)
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildPatientDetail(t *testing.T) {
	appts := []model.Appointment{
		completed("a1", "2023-10-01", "Flu", "Rest", ""),
		{ID: "a2", PatID: "u3", DocID: "u2", Date: "2023-11-25", Status: model.StatusPending},
		completed("a3", "2023-10-15", "Cough", "Syrup", ""),
	}
	// another doctor's diagnosis for the same patient is still part of the history
	appts[2].DocID = "u9"

	got := clinic.BuildPatientDetail(appts, "a2", "u3", "John Doe")
	want := &clinic.PatientDetail{
		AppointmentID: "a2",
		PatientID:     "u3",
		PatientName:   "John Doe",
		History: []clinic.HistoryEntry{
			{AppointmentID: "a1", Date: "2023-10-01", Notes: "Flu", Prescription: "Rest"},
			{AppointmentID: "a3", Date: "2023-10-15", Notes: "Cough", Prescription: "Syrup"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAdminDashboard(t *testing.T) {
	users := []model.User{
		{ID: "u1", Name: "Admin User", Role: model.RoleAdmin, Spec: "System"},
		doc,
		patient,
		{ID: "u7", Name: "Dr. Who", Role: model.RoleDoctor, Spec: "Neurology"},
		{ID: "u8", Name: "Jane", Role: model.RolePatient},
	}
	appts := []model.Appointment{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}

	got := clinic.BuildAdminDashboard(users, appts)
	want := &clinic.AdminDashboard{
		Patients:     2,
		Doctors:      2,
		Appointments: 3,
		Roster: []clinic.RosterRow{
			{ID: "u2", Name: "Dr. Sarah Smith", Specialty: "Cardiology", Status: "Active", Protected: true},
			{ID: "u7", Name: "Dr. Who", Specialty: "Neurology", Status: "Active"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dashboard mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"u2", "u7"}},
		{"neuro", []string{"u7"}},
		{"SMITH", []string{"u2"}},
		{"dr.", []string{"u2", "u7"}},
		{"ortho", nil},
	}
	for _, tt := range tests {
		t.Run("filter "+tt.filter, func(t *testing.T) {
			var ids []string
			for _, r := range clinic.FilterRoster(got.Roster, tt.filter) {
				ids = append(ids, r.ID)
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsProtected(t *testing.T) {
	for id, want := range map[string]bool{"u1": true, "u2": true, "u3": false, "": false} {
		if got := clinic.IsProtected(id); got != want {
			t.Errorf("IsProtected(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestNavFor(t *testing.T) {
	tests := []struct {
		name string
		sess *clinic.Session
		want clinic.Nav
	}{
		{"nil", nil, clinic.Nav{}},
		{"anonymous", &clinic.Session{}, clinic.Nav{}},
		{"single name", &clinic.Session{User: &model.User{Name: "Cher"}}, clinic.Nav{Authenticated: true, Greeting: "Hi, Cher"}},
		{"full name", &clinic.Session{User: &model.User{Name: "John Doe"}}, clinic.Nav{Authenticated: true, Greeting: "Hi, John"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, clinic.NavFor(tt.sess)); diff != "" {
				t.Errorf("nav mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
