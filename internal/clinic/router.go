package clinic

import (
	"context"
	"strings"

	"healthmate/internal/model"
)

type ViewKind string

const (
	ViewLanding ViewKind = "landing"
	ViewPatient ViewKind = "patient"
	ViewDoctor  ViewKind = "doctor"
	ViewAdmin   ViewKind = "admin"
)

// Nav drives the regions shown to authenticated or anonymous visitors.
type Nav struct {
	Authenticated bool   `json:"authenticated"`
	Greeting      string `json:"greeting,omitempty"`
}

// View is what the router hands to the rendering layer. Exactly one
// dashboard is set, matching Kind; none for the landing view.
type View struct {
	Kind    ViewKind          `json:"kind"`
	Nav     Nav               `json:"nav"`
	Patient *PatientDashboard `json:"patient,omitempty"`
	Doctor  *DoctorDashboard  `json:"doctor,omitempty"`
	Admin   *AdminDashboard   `json:"admin,omitempty"`
}

func NavFor(sess *Session) Nav {
	if !sess.Authenticated() {
		return Nav{}
	}
	first := sess.User.Name
	if f := strings.Fields(first); len(f) > 0 {
		first = f[0]
	}
	return Nav{Authenticated: true, Greeting: "Hi, " + first}
}

// Route picks the view for sess and loads its dashboard.
func (s *Service) Route(ctx context.Context, sess *Session) (*View, error) {
	v := &View{Kind: ViewLanding, Nav: NavFor(sess)}
	if !sess.Authenticated() {
		return v, nil
	}

	var err error
	switch sess.User.Role {
	case model.RolePatient:
		v.Kind = ViewPatient
		v.Patient, err = s.PatientDashboard(ctx, sess)
	case model.RoleDoctor:
		v.Kind = ViewDoctor
		v.Doctor, err = s.DoctorDashboard(ctx, sess)
	case model.RoleAdmin:
		v.Kind = ViewAdmin
		v.Admin, err = s.AdminDashboard(ctx, sess)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
