package session

import "github.com/mediview-health/mediview/pkg/domain"

// MemStore is an in-memory Store. It backs tests and any context where the
// session should not outlive the process.
type MemStore struct {
	sess    Session
	present bool
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(token string, role domain.Role) error {
	s.sess = Session{Token: token, Role: role}
	s.present = true
	return nil
}

func (s *MemStore) Clear() error {
	s.sess = Session{}
	s.present = false
	return nil
}

func (s *MemStore) Read() (Session, bool) {
	if !s.present || s.sess.Token == "" {
		return Session{}, false
	}
	sess := s.sess
	sess.Role = domain.ParseRole(string(sess.Role))
	return sess, true
}
