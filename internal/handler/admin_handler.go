package handler

import (
	"context"

	"healthmate/internal/clinic"
	"healthmate/internal/middleware"
	"healthmate/internal/rpc"
)

func (h *Handler) AddDoctor(ctx context.Context, req *rpc.AddDoctorRequest) (*rpc.AddDoctorResponse, error) {
	u, err := h.svc.AddDoctor(ctx, middleware.SessionFrom(ctx), clinic.AddDoctorRequest{
		Name:  req.Name,
		Spec:  req.Spec,
		Email: req.Email,
		Pass:  req.Password,
	})
	if err != nil {
		return nil, rpc.Error(err)
	}
	return &rpc.AddDoctorResponse{User: *u}, nil
}

// DeleteDoctor treats the request's confirmed flag as the answer to the
// confirmation prompt.
func (h *Handler) DeleteDoctor(ctx context.Context, req *rpc.DeleteDoctorRequest) (*rpc.DeleteDoctorResponse, error) {
	confirm := func(string) bool { return req.Confirmed }
	removed, err := h.svc.DeleteDoctor(ctx, middleware.SessionFrom(ctx), req.ID, confirm)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return &rpc.DeleteDoctorResponse{Removed: removed}, nil
}
