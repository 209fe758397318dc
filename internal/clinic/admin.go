package clinic

import (
	"context"
	"fmt"
	"strings"

	"healthmate/internal/auth"
	"healthmate/internal/events"
	"healthmate/internal/model"
	"healthmate/internal/store"
)

const rosterActive = "Active"

type RosterRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Status    string `json:"status"`
	Protected bool   `json:"protected"`
}

type AdminDashboard struct {
	Patients     int         `json:"patients"`
	Doctors      int         `json:"doctors"`
	Appointments int         `json:"appointments"`
	Roster       []RosterRow `json:"roster"`
}

// IsProtected reports whether id is one of the seed accounts that cannot
// be removed.
func IsProtected(id string) bool {
	return id == store.SeedAdminID || id == store.SeedDoctorID
}

func BuildAdminDashboard(users []model.User, appts []model.Appointment) *AdminDashboard {
	d := &AdminDashboard{Appointments: len(appts), Roster: []RosterRow{}}
	for _, u := range users {
		switch u.Role {
		case model.RolePatient:
			d.Patients++
		case model.RoleDoctor:
			d.Doctors++
			d.Roster = append(d.Roster, RosterRow{
				ID:        u.ID,
				Name:      u.Name,
				Specialty: u.Spec,
				Status:    rosterActive,
				Protected: IsProtected(u.ID),
			})
		}
	}
	return d
}

// FilterRoster keeps rows whose name or specialty contains text, ignoring case.
func FilterRoster(rows []RosterRow, text string) []RosterRow {
	out := make([]RosterRow, 0, len(rows))
	for _, r := range rows {
		if containsFold(r.Name, text) || containsFold(r.Specialty, text) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) AdminDashboard(ctx context.Context, sess *Session) (*AdminDashboard, error) {
	if _, err := requireRole(sess, model.RoleAdmin); err != nil {
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
	return BuildAdminDashboard(users, appts), nil
}

type AddDoctorRequest struct {
	Name  string
	Spec  string
	Email string
	Pass  string
}

func (s *Service) AddDoctor(ctx context.Context, sess *Session, req AddDoctorRequest) (*model.User, error) {
	me, err := requireRole(sess, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Pass == "" {
		return nil, fmt.Errorf("%w: name, login and password are required", ErrValidation)
	}

	hash, err := auth.HashPassword(req.Pass)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	doc := model.User{
		ID:    s.newID("u"),
		Name:  name,
		Email: email,
		Pass:  hash,
		Role:  model.RoleDoctor,
		Spec:  strings.TrimSpace(req.Spec),
	}

	err = s.store.UpdateUsers(ctx, func(users []model.User) ([]model.User, error) {
		if emailTaken(users, email) {
			return nil, fmt.Errorf("%w: username/email %s already exists", ErrDuplicate, email)
		}
		return append(users, doc), nil
	})
	if err != nil {
		return nil, err
	}

	pub := doc.Public()
	s.publish(ctx, events.DoctorAdded, doc.ID, me, map[string]string{"spec": doc.Spec})
	return &pub, nil
}

// Confirm asks the user to approve a destructive action.
type Confirm func(prompt string) bool

// DeleteDoctor removes a doctor account. Seed accounts are refused before
// confirm is consulted; a nil confirm proceeds without asking. removed is
// false when the user declined. Appointments that reference the doctor are
// kept and render with an unknown doctor afterwards.
func (s *Service) DeleteDoctor(ctx context.Context, sess *Session, id string, confirm Confirm) (removed bool, err error) {
	me, err := requireRole(sess, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	if IsProtected(id) {
		return false, fmt.Errorf("%w: cannot delete core seeded account %s", ErrProtectedRecord, id)
	}

	target, ok, err := s.store.UserByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok || target.Role != model.RoleDoctor {
		return false, fmt.Errorf("%w: doctor %s", ErrNotFound, id)
	}
	if confirm != nil && !confirm(fmt.Sprintf("Remove %s (%s)?", target.Name, target.Spec)) {
		return false, nil
	}

	err = s.store.UpdateUsers(ctx, func(users []model.User) ([]model.User, error) {
		out := make([]model.User, 0, len(users))
		for _, u := range users {
			if u.ID != id {
				out = append(out, u)
			}
		}
		if len(out) == len(users) {
			return nil, fmt.Errorf("%w: doctor %s", ErrNotFound, id)
		}
		return out, nil
	})
	if err != nil {
		return false, err
	}

	s.publish(ctx, events.DoctorRemoved, id, me, nil)
	return true, nil
}
