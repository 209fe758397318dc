// Package handler implements rpc.ClinicServiceServer on top of the clinic
// service. Each request carries its own session, rebuilt from the bearer
// token by the auth interceptor.
package handler

import (
	"time"

	"healthmate/internal/clinic"
	"healthmate/internal/rpc"
)

type Handler struct {
	rpc.UnimplementedClinicServiceServer
	svc    *clinic.Service
	secret string
	ttl    time.Duration
}

// New returns a handler that signs session tokens with secret, valid for ttl.
func New(svc *clinic.Service, secret string, ttl time.Duration) *Handler {
	return &Handler{svc: svc, secret: secret, ttl: ttl}
}
