package mock

import "github.com/fwojciec/redline"

// Compile-time interface verification.
var _ redline.SessionStore = (*SessionStore)(nil)

// SessionStore is a mock implementation of redline.SessionStore.
type SessionStore struct {
	LoadFn func(dir string) (*redline.Session, error)
	SaveFn func(dir string, s *redline.Session) error
}

func (s *SessionStore) Load(dir string) (*redline.Session, error) {
	return s.LoadFn(dir)
}

func (s *SessionStore) Save(dir string, sess *redline.Session) error {
	return s.SaveFn(dir, sess)
}
