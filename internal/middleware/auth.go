package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"

	"healthmate/internal/auth"
	"healthmate/internal/clinic"
	"healthmate/internal/rpc"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionLoader rebuilds a session from the user id in a token.
type SessionLoader interface {
	SessionFor(ctx context.Context, userID string) (*clinic.Session, error)
}

// skip auth for these
var open = map[string]bool{
	rpc.MethodLogin:  true,
	rpc.MethodSignup: true,
}

// WithSession returns ctx carrying sess.
func WithSession(ctx context.Context, sess *clinic.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFrom returns the session Auth attached, or an anonymous one.
func SessionFrom(ctx context.Context) *clinic.Session {
	if s, ok := ctx.Value(sessionKey).(*clinic.Session); ok {
		return s
	}
	return &clinic.Session{}
}

// Auth checks the bearer token and loads the caller's current record, so an
// account deleted after the token was issued stops working.
func Auth(secret string, users SessionLoader) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, rpc.Status(codes.Unauthenticated, "missing metadata", rpc.ReasonUnauthenticated)
		}

		// token from Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = strings.TrimPrefix(vals[0], "Bearer ")
		}
		if raw == "" {
			return nil, rpc.Status(codes.Unauthenticated, "no token", rpc.ReasonUnauthenticated)
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, rpc.Status(codes.Unauthenticated, "bad token", rpc.ReasonUnauthenticated)
		}

		sess, err := users.SessionFor(ctx, claims.UserID)
		if err != nil {
			return nil, rpc.Error(err)
		}
		return next(WithSession(ctx, sess), req)
	}
}
