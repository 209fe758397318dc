package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"healthmate/internal/clinic"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderView(w io.Writer, v *clinic.View) error {
	if v.Nav.Authenticated {
		fmt.Fprintf(w, "%s\n\n", v.Nav.Greeting)
	}
	switch v.Kind {
	case clinic.ViewPatient:
		return renderPatient(w, v.Patient)
	case clinic.ViewDoctor:
		return renderDoctor(w, v.Doctor)
	case clinic.ViewAdmin:
		return renderAdmin(w, v.Admin)
	default:
		fmt.Fprintln(w, "Welcome to HealthMate. Run `healthmate login` or `healthmate signup` to get started.")
		return nil
	}
}

func renderPatient(w io.Writer, d *clinic.PatientDashboard) error {
	fmt.Fprintf(w, "Next appointment: %s\n", d.NextAppointment)
	fmt.Fprintf(w, "Blood pressure:   %s\n", d.BloodPressure)
	fmt.Fprintf(w, "Medical history:  %s\n\n", d.History)

	tw := table(w)
	fmt.Fprintln(tw, "DATE\tDOCTOR\tSTATUS")
	for _, a := range d.Appointments {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Date, a.DoctorName, a.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nPrescriptions:")
	if len(d.Prescriptions) == 0 {
		fmt.Fprintln(w, "  none yet")
	}
	tw = table(w)
	for _, p := range d.Prescriptions {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Date, p.Summary, p.Prescription)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nDoctors:")
	tw = table(w)
	for _, o := range d.Doctors {
		fmt.Fprintf(tw, "  %s\t%s\n", o.ID, o.Label)
	}
	return tw.Flush()
}

func renderDoctor(w io.Writer, d *clinic.DoctorDashboard) error {
	fmt.Fprintf(w, "Pending appointments: %d\n\n", len(d.Pending))
	if len(d.Pending) == 0 {
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "APPOINTMENT\tPATIENT ID\tPATIENT\tDATE")
	for _, p := range d.Pending {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.AppointmentID, p.PatientID, p.PatientName, p.Date)
	}
	return tw.Flush()
}

func renderDetail(w io.Writer, d *clinic.PatientDetail) error {
	fmt.Fprintf(w, "Patient: %s (%s)\nAppointment: %s\n\n", d.PatientName, d.PatientID, d.AppointmentID)
	if len(d.History) == 0 {
		fmt.Fprintln(w, "No previous visits.")
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "DATE\tNOTES\tPRESCRIPTION")
	for _, h := range d.History {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", h.Date, h.Notes, h.Prescription)
	}
	return tw.Flush()
}

func renderAdmin(w io.Writer, d *clinic.AdminDashboard) error {
	fmt.Fprintf(w, "Patients: %d  Doctors: %d  Appointments: %d\n\n", d.Patients, d.Doctors, d.Appointments)
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIALTY\tSTATUS")
	for _, r := range d.Roster {
		status := r.Status
		if r.Protected {
			status += " (protected)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Specialty, status)
	}
	return tw.Flush()
}
