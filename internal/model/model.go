package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// User is one entry of the users collection. Pass holds a bcrypt hash for
// accounts written by this module; older records may still carry plaintext.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Pass    string `json:"pass,omitempty"`
	Role    Role   `json:"role"`
	Spec    string `json:"spec,omitempty"`
	History string `json:"history,omitempty"`
}

// Appointment is one entry of the appointments collection. PatName is a
// snapshot of the patient's name at booking time and is never re-synced.
type Appointment struct {
	ID        string     `json:"id"`
	PatID     string     `json:"patId"`
	DocID     string     `json:"docId"`
	PatName   string     `json:"patName"`
	Date      string     `json:"date"`
	Status    string     `json:"status"`
	Diagnosis *Diagnosis `json:"diagnosis"`
}

type Diagnosis struct {
	BP        string `json:"bp"`
	Weight    string `json:"weight"`
	Notes     string `json:"notes"`
	Presc     string `json:"presc"`
	Timestamp string `json:"timestamp"`
}

func (a *Appointment) Completed() bool {
	return a.Status == StatusCompleted
}

// Public returns a copy of u without the password field.
func (u User) Public() User {
	u.Pass = ""
	return u
}
