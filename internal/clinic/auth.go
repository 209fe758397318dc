package clinic

import (
	"context"
	"fmt"
	"strings"

	"healthmate/internal/auth"
	"healthmate/internal/events"
	"healthmate/internal/model"
)

const newPatientHistory = "New Patient"

// Login authenticates by exact email and password. The error never says
// which of the two was wrong.
func (s *Service) Login(ctx context.Context, email, pass string) (*Session, error) {
	if email == "" || pass == "" {
		return nil, ErrInvalidCredentials
	}
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	var found *model.User
	for i := range users {
		if users[i].Email == email && auth.CheckPassword(users[i].Pass, pass) {
			u := users[i].Public()
			found = &u
			break
		}
	}
	if found == nil {
		return nil, ErrInvalidCredentials
	}

	if s.mirror {
		if err := s.store.SaveCurrentUser(ctx, *found); err != nil {
			return nil, err
		}
	}
	s.publish(ctx, events.SessionStarted, found.ID, found, nil)
	return &Session{User: found}, nil
}

type SignupRequest struct {
	Name  string
	Email string
	Pass  string
	Role  model.Role
}

// Signup registers a patient or doctor account. It does not log the new
// user in.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Pass == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = model.RolePatient
	}

	hash, err := auth.HashPassword(req.Pass)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{
		ID:    s.newID("u"),
		Name:  name,
		Email: email,
		Pass:  hash,
		Role:  role,
	}
	if role == model.RolePatient {
		u.History = newPatientHistory
	}

	err = s.store.UpdateUsers(ctx, func(users []model.User) ([]model.User, error) {
		if emailTaken(users, email) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, email)
		}
		// a taken email wins over a bad role
		if role != model.RolePatient && role != model.RoleDoctor {
			return nil, fmt.Errorf("%w: cannot sign up as %q", ErrValidation, role)
		}
		return append(users, u), nil
	})
	if err != nil {
		return nil, err
	}

	pub := u.Public()
	s.publish(ctx, events.UserRegistered, u.ID, nil, map[string]string{"role": string(role)})
	return &pub, nil
}

func emailTaken(users []model.User, email string) bool {
	for _, u := range users {
		if u.Email == email {
			return true
		}
	}
	return false
}

// Logout clears the mirrored session and returns an anonymous one.
func (s *Service) Logout(ctx context.Context, sess *Session) (*Session, error) {
	if s.mirror {
		if err := s.store.ClearCurrentUser(ctx); err != nil {
			return nil, err
		}
	}
	if sess.Authenticated() {
		s.publish(ctx, events.SessionEnded, sess.User.ID, sess.User, nil)
	}
	return &Session{}, nil
}

// Restore rebuilds the session from the mirror, as a page reload would.
func (s *Service) Restore(ctx context.Context) (*Session, error) {
	if !s.mirror {
		return &Session{}, nil
	}
	u, err := s.store.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{User: u}, nil
}

// SessionFor loads the current record of userID, for callers that carry a
// user id in a signed token instead of the mirror.
func (s *Service) SessionFor(ctx context.Context, userID string) (*Session, error) {
	u, ok, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthenticated
	}
	pub := u.Public()
	return &Session{User: &pub}, nil
}
