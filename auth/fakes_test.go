package auth

import (
	"context"
	"strings"
	"sync"
	"time"
)

// memStore is an in-memory UserStore.
type memStore struct {
	mu      sync.Mutex
	byID    map[int64]*User
	nextID  int64
	lookups int
	err     error // returned by every call when set
}

func newMemStore(users ...*User) *memStore {
	s := &memStore{byID: map[int64]*User{}, nextID: 100}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *memStore) FindUserByID(_ context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *memStore) FindUserByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *memStore) UserExists(ctx context.Context, email string) (bool, error) {
	_, err := s.FindUserByEmail(ctx, email)
	if err == ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *memStore) InsertUser(_ context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, existing := range s.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, ErrEmailTaken
		}
	}
	s.nextID++
	stored := *u
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.byID[stored.ID] = &stored
	return &stored, nil
}

// plainHasher keeps tests fast; the digest is a reversible marker.
type plainHasher struct {
	mu       sync.Mutex
	verified []string
}

func (h *plainHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }

func (h *plainHasher) Verify(secret, digest string) bool {
	h.mu.Lock()
	h.verified = append(h.verified, digest)
	h.mu.Unlock()
	return digest == "hashed:"+secret
}

var (
	testSecret = []byte("test-secret")
	testNow    = time.Unix(1_700_000_000, 0)
)

func adminUser() *User {
	return &User{ID: 1, Name: "Admin", Email: "admin@example.com", Password: "hashed:adminpass", Role: AdminRole}
}

func plainUser() *User {
	return &User{ID: 7, Name: "Mario", Email: "mario@example.com", Password: "hashed:mariopass", Role: "user", CustomerName: "ACME"}
}
