package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"healthmate/internal/auth"
	"healthmate/internal/clinic"
	"healthmate/internal/kv"
	"healthmate/internal/store"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

type harness struct {
	t   *testing.T
	st  *store.Store
	svc *clinic.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st := store.New(kv.NewMemory(), "")
	if _, err := st.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return &harness{t: t, st: st, svc: clinic.New(st, clinic.WithSessionMirror())}
}

// run executes one command as a fresh process would, with stdin as input.
func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	a := &app{
		svc: h.svc,
		in:  bufio.NewReader(strings.NewReader(stdin)),
		out: &out,
		password: func(string) (string, error) {
			return strings.TrimSpace(stdin), nil
		},
	}
	err := a.run(context.Background(), args)
	return out.String(), err
}

func (h *harness) mustRun(stdin string, args ...string) string {
	h.t.Helper()
	out, err := h.run(stdin, args...)
	if err != nil {
		h.t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func expectContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestLandingWhenLoggedOut(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("", "dashboard")
	expectContains(t, out, "Welcome to HealthMate")
}

func TestPatientSession(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("", "login", "-email", "patient", "-pass", "123")
	expectContains(t, out, "Logged in as John Doe (patient)", "Hi, John", "Dr. Sarah Smith - Cardiology")

	out = h.mustRun("", "book", "-doctor", "u2", "-date", "2099-12-01")
	expectContains(t, out, "Appointment booked.", "2099-12-01", "Pending")

	// the session survives between runs
	out = h.mustRun("", "dashboard")
	expectContains(t, out, "Hi, John")

	out = h.mustRun("", "logout")
	expectContains(t, out, "Logged out.")
	out = h.mustRun("", "dashboard")
	expectContains(t, out, "Welcome to HealthMate")
}

func TestPasswordPrompt(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("123\n", "login", "-email", "admin")
	expectContains(t, out, "Logged in as Admin User (admin)", "Patients: 1  Doctors: 1  Appointments: 1")

	_, err := h.run("nope\n", "login", "-email", "admin")
	if err == nil || err.Error() != "invalid credentials" {
		t.Errorf("expected invalid credentials, got %v", err)
	}
}

func TestDoctorDiagnoses(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "login", "-email", "doctor", "-pass", "123")

	out := h.mustRun("", "dashboard", "-filter", "john")
	expectContains(t, out, "Pending appointments: 1", "a1", "John Doe")

	out = h.mustRun("", "select", "-appt", "a1", "-patient", "u3")
	expectContains(t, out, "Patient: John Doe (u3)", "No previous visits.")

	out = h.mustRun("", "diagnose", "-appt", "a1", "-notes", "Flu", "-presc", "Rest")
	expectContains(t, out, "Diagnosis saved.", "Pending appointments: 0")

	_, err := h.run("", "diagnose", "-appt", "a1", "-notes", "Again")
	if err == nil {
		t.Error("expected error diagnosing a completed appointment")
	}
}

func TestAdminDeleteDoctor(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "login", "-email", "admin", "-pass", "123")

	out := h.mustRun("", "add-doctor", "-name", "Dr. Two", "-spec", "Neurology", "-email", "doc2", "-pass", "pw")
	expectContains(t, out, "Doctor added.", "Dr. Two", "Neurology")

	_, err := h.run("", "add-doctor", "-name", "Dup", "-email", "doc2", "-pass", "pw")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected duplicate error, got %v", err)
	}

	_, err = h.run("y\n", "delete-doctor", "-id", "u2")
	if err == nil || err.Error() != "cannot delete core seeded accounts" {
		t.Errorf("expected protected error, got %v", err)
	}

	users, _ := h.st.Users(context.Background())
	var id string
	for _, u := range users {
		if u.Email == "doc2" {
			id = u.ID
		}
	}

	out = h.mustRun("n\n", "delete-doctor", "-id", id)
	expectContains(t, out, "Remove Dr. Two (Neurology)? [y/N]", "Cancelled.")

	out = h.mustRun("y\n", "delete-doctor", "-id", id)
	expectContains(t, out, "Doctor removed.", "Doctors: 1")
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("", "frobnicate"); err == nil {
		t.Error("expected error for unknown command")
	}
	if _, err := h.run(""); err == nil {
		t.Error("expected error with no command")
	}
}
