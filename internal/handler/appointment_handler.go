package handler

import (
	"context"

	"healthmate/internal/clinic"
	"healthmate/internal/middleware"
	"healthmate/internal/rpc"
)

func (h *Handler) Dashboard(ctx context.Context, req *rpc.DashboardRequest) (*rpc.DashboardResponse, error) {
	v, err := h.svc.Route(ctx, middleware.SessionFrom(ctx))
	if err != nil {
		return nil, rpc.Error(err)
	}
	if req.Filter != "" {
		if v.Doctor != nil {
			v.Doctor.Pending = clinic.FilterPending(v.Doctor.Pending, req.Filter)
		}
		if v.Admin != nil {
			v.Admin.Roster = clinic.FilterRoster(v.Admin.Roster, req.Filter)
		}
	}
	return &rpc.DashboardResponse{View: v}, nil
}

func (h *Handler) BookAppointment(ctx context.Context, req *rpc.BookAppointmentRequest) (*rpc.AppointmentResponse, error) {
	a, err := h.svc.BookAppointment(ctx, middleware.SessionFrom(ctx), req.DoctorID, req.Date)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return &rpc.AppointmentResponse{Appointment: *a}, nil
}

// SelectPatient returns the detail panel. The selection itself lives only
// for this request; SaveDiagnosis names the appointment explicitly.
func (h *Handler) SelectPatient(ctx context.Context, req *rpc.SelectPatientRequest) (*rpc.SelectPatientResponse, error) {
	d, err := h.svc.SelectPatient(ctx, middleware.SessionFrom(ctx), req.AppointmentID, req.PatientID, req.PatientName)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return &rpc.SelectPatientResponse{Detail: d}, nil
}

func (h *Handler) SaveDiagnosis(ctx context.Context, req *rpc.SaveDiagnosisRequest) (*rpc.AppointmentResponse, error) {
	a, err := h.svc.SaveDiagnosis(ctx, middleware.SessionFrom(ctx), clinic.DiagnosisInput{
		AppointmentID: req.AppointmentID,
		BP:            req.BP,
		Weight:        req.Weight,
		Notes:         req.Notes,
		Prescription:  req.Prescription,
	})
	if err != nil {
		return nil, rpc.Error(err)
	}
	return &rpc.AppointmentResponse{Appointment: *a}, nil
}
