package clinic

import "healthmate/internal/model"

// Session is who is logged in plus the doctor's selected patient. It is
// passed explicitly to every operation; the CLI persists User through the
// store's session mirror, the server rebuilds it from the request token.
type Session struct {
	User             *model.User
	CurrentPatientID string
}

func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}
