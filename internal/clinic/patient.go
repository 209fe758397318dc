package clinic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"healthmate/internal/events"
	"healthmate/internal/model"
)

const (
	unknownDoctor    = "Unknown"
	noUpcomingVisits = "No upcoming visits"
	noRecords        = "No records found."
	noReading        = "--/--"
	summaryLen       = 30
)

type AppointmentRow struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	DoctorID   string `json:"doctorId"`
	DoctorName string `json:"doctorName"`
	Status     string `json:"status"`
	Badge      string `json:"badge"`
}

type PrescriptionEntry struct {
	AppointmentID string `json:"appointmentId"`
	Date          string `json:"date"`
	Summary       string `json:"summary"`
	Prescription  string `json:"prescription"`
}

type DoctorOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type PatientDashboard struct {
	NextAppointment string              `json:"nextAppointment"`
	Appointments    []AppointmentRow    `json:"appointments"`
	BloodPressure   string              `json:"bloodPressure"`
	History         string              `json:"history"`
	Prescriptions   []PrescriptionEntry `json:"prescriptions"`
	Doctors         []DoctorOption      `json:"doctors"`
}

// BuildPatientDashboard computes the patient's view. today is an ISO date;
// appointment dates are compared to it lexically.
func BuildPatientDashboard(users []model.User, appts []model.Appointment, patient model.User, today string) *PatientDashboard {
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	doctorName := func(id string) string {
		if u, ok := byID[id]; ok {
			return u.Name
		}
		return unknownDoctor
	}

	d := &PatientDashboard{
		NextAppointment: noUpcomingVisits,
		Appointments:    []AppointmentRow{},
		BloodPressure:   noReading,
		Prescriptions:   []PrescriptionEntry{},
		Doctors:         []DoctorOption{},
	}

	var mine, upcoming, completed []model.Appointment
	for _, a := range appts {
		if a.PatID != patient.ID {
			continue
		}
		mine = append(mine, a)
		if a.Date >= today {
			upcoming = append(upcoming, a)
		}
		if a.Completed() && a.Diagnosis != nil {
			completed = append(completed, a)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Date < upcoming[j].Date })
	if len(upcoming) > 0 {
		next := upcoming[0]
		d.NextAppointment = fmt.Sprintf("%s with %s", next.Date, doctorName(next.DocID))
	}

	for _, a := range mine {
		badge := "warning"
		if a.Completed() {
			badge = "success"
		}
		d.Appointments = append(d.Appointments, AppointmentRow{
			ID:         a.ID,
			Date:       a.Date,
			DoctorID:   a.DocID,
			DoctorName: doctorName(a.DocID),
			Status:     a.Status,
			Badge:      badge,
		})
	}

	// latest by array order, not by date
	if n := len(completed); n > 0 {
		latest := completed[n-1].Diagnosis
		if latest.BP != "" {
			d.BloodPressure = latest.BP
		}
		d.History = latest.Notes
	} else {
		d.History = patient.History
		if d.History == "" {
			d.History = noRecords
		}
	}

	for i := len(completed) - 1; i >= 0; i-- {
		a := completed[i]
		d.Prescriptions = append(d.Prescriptions, PrescriptionEntry{
			AppointmentID: a.ID,
			Date:          a.Date,
			Summary:       summarize(a.Diagnosis.Notes),
			Prescription:  a.Diagnosis.Presc,
		})
	}

	for _, u := range users {
		if u.Role == model.RoleDoctor {
			d.Doctors = append(d.Doctors, DoctorOption{ID: u.ID, Label: u.Name + " - " + u.Spec})
		}
	}
	return d
}

func summarize(notes string) string {
	r := []rune(notes)
	if len(r) <= summaryLen {
		return notes
	}
	return string(r[:summaryLen]) + "..."
}

func (s *Service) PatientDashboard(ctx context.Context, sess *Session) (*PatientDashboard, error) {
	me, err := requireRole(sess, model.RolePatient)
	if err != nil {
		return nil, err
	}
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	appts, err := s.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	return BuildPatientDashboard(users, appts, *me, s.today()), nil
}

// BookAppointment appends one Pending appointment for the session patient.
// The patient's current name is copied onto the record.
func (s *Service) BookAppointment(ctx context.Context, sess *Session, doctorID, date string) (*model.Appointment, error) {
	me, err := requireRole(sess, model.RolePatient)
	if err != nil {
		return nil, err
	}
	if doctorID == "" || date == "" {
		return nil, fmt.Errorf("%w: select a doctor and date", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	doc, ok, err := s.store.UserByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !ok || doc.Role != model.RoleDoctor {
		return nil, fmt.Errorf("%w: unknown doctor %s", ErrValidation, doctorID)
	}

	a := model.Appointment{
		ID:      s.newID("a"),
		PatID:   me.ID,
		DocID:   doctorID,
		PatName: me.Name,
		Date:    date,
		Status:  model.StatusPending,
	}
	err = s.store.UpdateAppointments(ctx, func(appts []model.Appointment) ([]model.Appointment, error) {
		return append(appts, a), nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.AppointmentBooked, a.ID, me, map[string]string{"doctor": doctorID, "date": date})
	return &a, nil
}
