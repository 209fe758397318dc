package handler

import (
	"context"
	"fmt"

	"healthmate/internal/auth"
	"healthmate/internal/clinic"
	"healthmate/internal/middleware"
	"healthmate/internal/model"
	"healthmate/internal/rpc"
)

func (h *Handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	sess, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, rpc.Error(err)
	}

	tok, err := auth.MakeToken(sess.User.ID, string(sess.User.Role), h.secret, h.ttl)
	if err != nil {
		return nil, rpc.Error(fmt.Errorf("sign token: %w", err))
	}
	return &rpc.LoginResponse{Token: tok, User: *sess.User}, nil
}

// Signup registers the account but issues no token; the client logs in next.
func (h *Handler) Signup(ctx context.Context, req *rpc.SignupRequest) (*rpc.SignupResponse, error) {
	u, err := h.svc.Signup(ctx, clinic.SignupRequest{
		Name:  req.Name,
		Email: req.Email,
		Pass:  req.Password,
		Role:  model.Role(req.Role),
	})
	if err != nil {
		return nil, rpc.Error(err)
	}
	return &rpc.SignupResponse{User: *u}, nil
}

// Logout only records the event. Tokens stay valid until they expire.
func (h *Handler) Logout(ctx context.Context, _ *rpc.LogoutRequest) (*rpc.LogoutResponse, error) {
	if _, err := h.svc.Logout(ctx, middleware.SessionFrom(ctx)); err != nil {
		return nil, rpc.Error(err)
	}
	return &rpc.LogoutResponse{}, nil
}
