package store

import (
	"context"
	"errors"
	"fmt"

	"healthmate/internal/auth"
	"healthmate/internal/kv"
	"healthmate/internal/model"
)

// Seed account ids. They are never deletable.
const (
	SeedAdminID  = "u1"
	SeedDoctorID = "u2"
)

const seedPassword = "123"

// SeedUsers returns the fixed first-run accounts with plaintext passwords.
func SeedUsers() []model.User {
	return []model.User{
		{ID: SeedAdminID, Name: "Admin User", Email: "admin", Pass: seedPassword, Role: model.RoleAdmin, Spec: "System"},
		{ID: SeedDoctorID, Name: "Dr. Sarah Smith", Email: "doctor", Pass: seedPassword, Role: model.RoleDoctor, Spec: "Cardiology"},
		{ID: "u3", Name: "John Doe", Email: "patient", Pass: seedPassword, Role: model.RolePatient, History: "No major allergies."},
	}
}

func SeedAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: "a1", PatID: "u3", DocID: SeedDoctorID, PatName: "John Doe", Date: "2023-11-25", Status: model.StatusPending},
	}
}

// Init seeds both collections when the users key is absent. It reports
// whether seeding happened; calling it again is a no-op.
func (s *Store) Init(ctx context.Context) (bool, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	_, err := s.kv.Get(ctx, s.key(KeyUsers))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return false, fmt.Errorf("read %s: %w", KeyUsers, err)
	}

	users := SeedUsers()
	for i := range users {
		hash, err := auth.HashPassword(users[i].Pass)
		if err != nil {
			return false, fmt.Errorf("hash seed password: %w", err)
		}
		users[i].Pass = hash
	}

	s.apptsMu.Lock()
	defer s.apptsMu.Unlock()
	// appointments first: users is the marker key, so a failure in between
	// leaves the store unseeded and the next Init retries
	if err := s.SaveAppointments(ctx, SeedAppointments()); err != nil {
		return false, err
	}
	if err := s.SaveUsers(ctx, users); err != nil {
		return false, err
	}
	return true, nil
}
