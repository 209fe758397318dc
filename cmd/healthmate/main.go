// Command healthmate is the terminal client of the clinic portal. The
// logged-in user is kept in the store's session mirror between runs.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"healthmate/internal/clinic"
	"healthmate/internal/config"
	"healthmate/internal/events"
	"healthmate/internal/kv"
	"healthmate/internal/model"
	"healthmate/internal/store"
)

const usage = `usage: healthmate <command> [flags]

commands:
  login          -email -pass (prompts when -pass is omitted)
  signup         -name -email -pass [-role patient|doctor]
  logout
  dashboard      [-filter text]
  book           -doctor id -date YYYY-MM-DD
  select         -appt id -patient id [-name text]
  diagnose       -appt id -notes text [-bp] [-weight] [-presc]
  add-doctor     -name -spec -email -pass
  delete-doctor  -id [-yes]
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	db, err := kv.Open(ctx, cfg.KV)
	if err != nil {
		log.Fatalf("kv: %v", err)
	}
	defer db.Close()

	st := store.New(db, cfg.KeyPrefix)
	if _, err := st.Init(ctx); err != nil {
		log.Fatalf("seed: %v", err)
	}

	// audit events go to the log by default, which would clutter a terminal
	if os.Getenv("HM_EVENTS_DRIVER") == "" {
		cfg.Events.Driver = "none"
	}
	pub, err := events.Open(ctx, cfg.Events)
	if err != nil {
		log.Fatalf("events: %v", err)
	}
	defer pub.Close()

	a := &app{
		svc:      clinic.New(st, clinic.WithEvents(pub), clinic.WithSessionMirror()),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		password: readPassword,
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	svc      *clinic.Service
	in       *bufio.Reader
	out      io.Writer
	password func(prompt string) (string, error)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("no command given")
	}
	sess, err := a.svc.Restore(ctx)
	if err != nil {
		return err
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "signup":
		return a.signup(ctx, args)
	case "logout":
		if _, err := a.svc.Logout(ctx, sess); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Logged out.")
		return nil
	case "dashboard":
		return a.dashboard(ctx, sess, args)
	case "book":
		return a.book(ctx, sess, args)
	case "select":
		return a.selectPatient(ctx, sess, args)
	case "diagnose":
		return a.diagnose(ctx, sess, args)
	case "add-doctor":
		return a.addDoctor(ctx, sess, args)
	case "delete-doctor":
		return a.deleteDoctor(ctx, sess, args)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "login name or email")
	pass := fs.String("pass", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pass == "" {
		p, err := a.password("Password: ")
		if err != nil {
			return err
		}
		*pass = p
	}

	sess, err := a.svc.Login(ctx, *email, *pass)
	if errors.Is(err, clinic.ErrInvalidCredentials) {
		return errors.New("invalid credentials")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s).\n\n", sess.User.Name, sess.User.Role)
	return a.dashboard(ctx, sess, nil)
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := newFlags("signup")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "login name or email")
	pass := fs.String("pass", "", "password")
	role := fs.String("role", "patient", "patient or doctor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, err := a.svc.Signup(ctx, clinic.SignupRequest{Name: *name, Email: *email, Pass: *pass, Role: model.Role(*role)})
	if errors.Is(err, clinic.ErrDuplicate) {
		return errors.New("email already exists")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created! Please log in.")
	return nil
}

func (a *app) dashboard(ctx context.Context, sess *clinic.Session, args []string) error {
	fs := newFlags("dashboard")
	filter := fs.String("filter", "", "narrow the pending list or the doctor roster")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := a.svc.Route(ctx, sess)
	if err != nil {
		return err
	}
	if *filter != "" {
		if v.Doctor != nil {
			v.Doctor.Pending = clinic.FilterPending(v.Doctor.Pending, *filter)
		}
		if v.Admin != nil {
			v.Admin.Roster = clinic.FilterRoster(v.Admin.Roster, *filter)
		}
	}
	return renderView(a.out, v)
}

func (a *app) book(ctx context.Context, sess *clinic.Session, args []string) error {
	fs := newFlags("book")
	doctor := fs.String("doctor", "", "doctor id")
	date := fs.String("date", "", "visit date, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.svc.BookAppointment(ctx, sess, *doctor, *date); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Appointment booked.")
	fmt.Fprintln(a.out)
	return a.dashboard(ctx, sess, nil)
}

func (a *app) selectPatient(ctx context.Context, sess *clinic.Session, args []string) error {
	fs := newFlags("select")
	appt := fs.String("appt", "", "appointment id")
	patient := fs.String("patient", "", "patient id")
	name := fs.String("name", "", "patient name shown in the panel")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := a.svc.SelectPatient(ctx, sess, *appt, *patient, *name)
	if err != nil {
		return err
	}
	return renderDetail(a.out, d)
}

func (a *app) diagnose(ctx context.Context, sess *clinic.Session, args []string) error {
	fs := newFlags("diagnose")
	in := clinic.DiagnosisInput{}
	fs.StringVar(&in.AppointmentID, "appt", "", "appointment id")
	fs.StringVar(&in.BP, "bp", "", "blood pressure")
	fs.StringVar(&in.Weight, "weight", "", "weight")
	fs.StringVar(&in.Notes, "notes", "", "diagnosis notes")
	fs.StringVar(&in.Prescription, "presc", "", "prescription")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.svc.SaveDiagnosis(ctx, sess, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Diagnosis saved.")
	fmt.Fprintln(a.out)
	return a.dashboard(ctx, sess, nil)
}

func (a *app) addDoctor(ctx context.Context, sess *clinic.Session, args []string) error {
	fs := newFlags("add-doctor")
	req := clinic.AddDoctorRequest{}
	fs.StringVar(&req.Name, "name", "", "full name")
	fs.StringVar(&req.Spec, "spec", "", "specialty")
	fs.StringVar(&req.Email, "email", "", "login name or email")
	fs.StringVar(&req.Pass, "pass", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, err := a.svc.AddDoctor(ctx, sess, req)
	if errors.Is(err, clinic.ErrDuplicate) {
		return errors.New("username/email already exists")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Doctor added.")
	fmt.Fprintln(a.out)
	return a.dashboard(ctx, sess, nil)
}

func (a *app) deleteDoctor(ctx context.Context, sess *clinic.Session, args []string) error {
	fs := newFlags("delete-doctor")
	id := fs.String("id", "", "doctor id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	confirm := a.confirm
	if *yes {
		confirm = nil
	}
	removed, err := a.svc.DeleteDoctor(ctx, sess, *id, confirm)
	if errors.Is(err, clinic.ErrProtectedRecord) {
		return errors.New("cannot delete core seeded accounts")
	}
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	fmt.Fprintln(a.out, "Doctor removed.")
	fmt.Fprintln(a.out)
	return a.dashboard(ctx, sess, nil)
}

func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// readPassword reads without echo from a terminal, or a plain line when
// stdin is piped.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
