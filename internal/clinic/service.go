// Package clinic holds the portal's core: authentication, the role router,
// and the three dashboards. View builders are pure functions of the two
// collections and the session; mutations run one read-modify-write cycle
// against the store and publish an audit event.
package clinic

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"healthmate/internal/events"
	"healthmate/internal/model"
	"healthmate/internal/store"
)

const dateLayout = "2006-01-02"

type Service struct {
	store  *store.Store
	events events.Publisher
	mirror bool
	now    func() time.Time
	newID  func(prefix string) string
}

type Option func(*Service)

// WithEvents sets the audit publisher. The default drops events.
func WithEvents(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithSessionMirror makes login and logout write the persisted currentUser
// record, and lets Restore read it back.
func WithSessionMirror() Option {
	return func(s *Service) { s.mirror = true }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		events: events.Nop{},
		now:    time.Now,
		newID:  newID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// newID returns a time-ordered token such as "u-01890a5d-ac96-774b-bcce-b302099a8057".
func newID(prefix string) string {
	return prefix + "-" + uuid.Must(uuid.NewV7()).String()
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

func (s *Service) publish(ctx context.Context, typ, subject string, actor *model.User, data map[string]string) {
	e := events.Event{Type: typ, Subject: subject, At: s.now().UTC(), Data: data}
	if actor != nil {
		e.Actor = actor.ID
	}
	if err := s.events.Publish(ctx, e); err != nil {
		log.Printf("events: %s %s: %v", typ, subject, err)
	}
}

// requireRole returns the session user when it has role.
func requireRole(sess *Session, role model.Role) (*model.User, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if sess.User.Role != role {
		return nil, fmt.Errorf("%w: %s only", ErrForbidden, role)
	}
	return sess.User, nil
}
