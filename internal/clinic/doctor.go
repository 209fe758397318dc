package clinic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"healthmate/internal/events"
	"healthmate/internal/model"
)

const (
	defaultReading      = "N/A"
	defaultPrescription = "None"
)

type PendingEntry struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	PatientName   string `json:"patientName"`
	Date          string `json:"date"`
}

type DoctorDashboard struct {
	Pending []PendingEntry `json:"pending"`
}

type HistoryEntry struct {
	AppointmentID string `json:"appointmentId"`
	Date          string `json:"date"`
	Notes         string `json:"notes"`
	Prescription  string `json:"prescription"`
}

// PatientDetail is the panel shown after a doctor selects a pending entry.
type PatientDetail struct {
	AppointmentID string         `json:"appointmentId"`
	PatientID     string         `json:"patientId"`
	PatientName   string         `json:"patientName"`
	History       []HistoryEntry `json:"history"`
}

// BuildDoctorDashboard lists the doctor's appointments that are not yet
// Completed, in stored order. Patient names come from the booking snapshot.
func BuildDoctorDashboard(appts []model.Appointment, doctorID string) *DoctorDashboard {
	d := &DoctorDashboard{Pending: []PendingEntry{}}
	for _, a := range appts {
		if a.DocID != doctorID || a.Completed() {
			continue
		}
		d.Pending = append(d.Pending, PendingEntry{
			AppointmentID: a.ID,
			PatientID:     a.PatID,
			PatientName:   a.PatName,
			Date:          a.Date,
		})
	}
	return d
}

// FilterPending keeps entries whose patient name contains text, ignoring case.
func FilterPending(entries []PendingEntry, text string) []PendingEntry {
	out := make([]PendingEntry, 0, len(entries))
	for _, e := range entries {
		if containsFold(e.PatientName, text) {
			out = append(out, e)
		}
	}
	return out
}

// BuildPatientDetail collects the patient's completed visits in stored order.
func BuildPatientDetail(appts []model.Appointment, apptID, patientID, patientName string) *PatientDetail {
	p := &PatientDetail{
		AppointmentID: apptID,
		PatientID:     patientID,
		PatientName:   patientName,
		History:       []HistoryEntry{},
	}
	for _, a := range appts {
		if a.PatID != patientID || !a.Completed() || a.Diagnosis == nil {
			continue
		}
		p.History = append(p.History, HistoryEntry{
			AppointmentID: a.ID,
			Date:          a.Date,
			Notes:         a.Diagnosis.Notes,
			Prescription:  a.Diagnosis.Presc,
		})
	}
	return p
}

// DoctorDashboard loads the pending list and clears any patient selection.
func (s *Service) DoctorDashboard(ctx context.Context, sess *Session) (*DoctorDashboard, error) {
	me, err := requireRole(sess, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	appts, err := s.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	sess.CurrentPatientID = ""
	return BuildDoctorDashboard(appts, me.ID), nil
}

// SelectPatient opens the detail panel for one of the doctor's appointments.
// An appointment of another doctor, or one that does not match patientID,
// is reported as not found.
func (s *Service) SelectPatient(ctx context.Context, sess *Session, apptID, patientID, patientName string) (*PatientDetail, error) {
	me, err := requireRole(sess, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	if apptID == "" || patientID == "" {
		return nil, fmt.Errorf("%w: appointment and patient are required", ErrValidation)
	}
	appts, err := s.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := findAppointment(appts, apptID)
	if !ok || a.DocID != me.ID || a.PatID != patientID {
		return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, apptID)
	}
	if patientName == "" {
		patientName = a.PatName
	}

	sess.CurrentPatientID = patientID
	return BuildPatientDetail(appts, apptID, patientID, patientName), nil
}

func findAppointment(appts []model.Appointment, id string) (model.Appointment, bool) {
	for _, a := range appts {
		if a.ID == id {
			return a, true
		}
	}
	return model.Appointment{}, false
}

type DiagnosisInput struct {
	AppointmentID string
	BP            string
	Weight        string
	Notes         string
	Prescription  string
}

// SaveDiagnosis completes a pending appointment of the session doctor.
// Blank readings default to "N/A" and a blank prescription to "None".
func (s *Service) SaveDiagnosis(ctx context.Context, sess *Session, in DiagnosisInput) (*model.Appointment, error) {
	me, err := requireRole(sess, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	if in.AppointmentID == "" {
		return nil, fmt.Errorf("%w: no appointment selected", ErrValidation)
	}
	if strings.TrimSpace(in.Notes) == "" {
		return nil, fmt.Errorf("%w: diagnosis notes are required", ErrValidation)
	}

	diag := &model.Diagnosis{
		BP:        orDefault(in.BP, defaultReading),
		Weight:    orDefault(in.Weight, defaultReading),
		Notes:     in.Notes,
		Presc:     orDefault(in.Prescription, defaultPrescription),
		Timestamp: s.now().Format(time.RFC3339),
	}

	var saved model.Appointment
	err = s.store.UpdateAppointments(ctx, func(appts []model.Appointment) ([]model.Appointment, error) {
		for i := range appts {
			if appts[i].ID != in.AppointmentID {
				continue
			}
			// other doctors' appointments are indistinguishable from missing ones
			if appts[i].DocID != me.ID {
				break
			}
			if appts[i].Completed() {
				return nil, fmt.Errorf("%w: %s", ErrAlreadyCompleted, in.AppointmentID)
			}
			appts[i].Status = model.StatusCompleted
			appts[i].Diagnosis = diag
			saved = appts[i]
			return appts, nil
		}
		return nil, fmt.Errorf("%w: could not find appointment %s", ErrNotFound, in.AppointmentID)
	})
	if err != nil {
		return nil, err
	}

	sess.CurrentPatientID = ""
	s.publish(ctx, events.DiagnosisSaved, saved.ID, me, map[string]string{"patient": saved.PatID})
	return &saved, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
