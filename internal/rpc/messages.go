package rpc

import (
	"healthmate/internal/clinic"
	"healthmate/internal/model"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type SignupResponse struct {
	User model.User `json:"user"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

// DashboardRequest loads the caller's view. Filter narrows the doctor's
// pending list or the admin roster; patients ignore it.
type DashboardRequest struct {
	Filter string `json:"filter,omitempty"`
}

type DashboardResponse struct {
	View *clinic.View `json:"view"`
}

type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
}

type AppointmentResponse struct {
	Appointment model.Appointment `json:"appointment"`
}

type SelectPatientRequest struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	PatientName   string `json:"patientName,omitempty"`
}

type SelectPatientResponse struct {
	Detail *clinic.PatientDetail `json:"detail"`
}

type SaveDiagnosisRequest struct {
	AppointmentID string `json:"appointmentId"`
	BP            string `json:"bp,omitempty"`
	Weight        string `json:"weight,omitempty"`
	Notes         string `json:"notes"`
	Prescription  string `json:"prescription,omitempty"`
}

type AddDoctorRequest struct {
	Name     string `json:"name"`
	Spec     string `json:"spec"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddDoctorResponse struct {
	User model.User `json:"user"`
}

// DeleteDoctorRequest removes a doctor. Confirmed must be true; a request
// without it is treated as a declined confirmation and changes nothing.
type DeleteDoctorRequest struct {
	ID        string `json:"id"`
	Confirmed bool   `json:"confirmed"`
}

type DeleteDoctorResponse struct {
	Removed bool `json:"removed"`
}
