package store

import (
	"context"

	"healthmate/internal/model"
)

func (s *Store) Appointments(ctx context.Context) ([]model.Appointment, error) {
	return readCollection[model.Appointment](ctx, s, KeyAppointments)
}

func (s *Store) SaveAppointments(ctx context.Context, appts []model.Appointment) error {
	return writeCollection(ctx, s, KeyAppointments, appts)
}

// UpdateAppointments runs one read-modify-write cycle on the appointments
// collection. Nothing is written when fn returns an error.
func (s *Store) UpdateAppointments(ctx context.Context, fn func([]model.Appointment) ([]model.Appointment, error)) error {
	s.apptsMu.Lock()
	defer s.apptsMu.Unlock()

	appts, err := s.Appointments(ctx)
	if err != nil {
		return err
	}
	next, err := fn(appts)
	if err != nil {
		return err
	}
	return s.SaveAppointments(ctx, next)
}
