package http

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/repository"
)

type memDB struct {
	mu          sync.Mutex
	clock       time.Time
	complaints  map[string]domain.Complaint
	comments    []domain.Comment
	profiles    map[string]*domain.Profile
	credentials map[string]*domain.Credential
	inserts     int
}

func newMemDB() *memDB {
	return &memDB{
		clock:       time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		complaints:  map[string]domain.Complaint{},
		profiles:    map[string]*domain.Profile{},
		credentials: map[string]*domain.Credential{},
	}
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type complaintStore struct{ *memDB }

func (s complaintStore) Create(_ context.Context, c *domain.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	c.ID = uuid.NewString()
	c.Status = domain.ComplaintStatusNew
	c.CreatedAt = s.tick()
	c.UpdatedAt = c.CreatedAt
	s.complaints[c.ID] = *c
	return nil
}

func (s complaintStore) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (s complaintStore) List(_ context.Context, f repository.ComplaintFilter) ([]domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Complaint{}
	for _, c := range s.complaints {
		if f.StudentID != nil && *f.StudentID != c.StudentID {
			continue
		}
		if f.Status != nil && *f.Status != c.Status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s complaintStore) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.Status = status
	c.UpdatedAt = s.tick()
	s.complaints[id] = c
	return nil
}

type commentStore struct{ *memDB }

func (s commentStore) Create(_ context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	c.ID = uuid.NewString()
	c.CreatedAt = s.tick()
	s.comments = append(s.comments, *c)
	return nil
}

func (s commentStore) ListByComplaint(_ context.Context, complaintID string) ([]domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Comment{}
	for _, c := range s.comments {
		if c.ComplaintID == complaintID {
			p := s.profiles[c.AuthorID]
			c.Author = &domain.CommentAuthor{FullName: p.FullName, Role: p.Role}
			out = append(out, c)
		}
	}
	return out, nil
}

type profileStore struct{ *memDB }

func (s profileStore) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

type credentialStore struct{ *memDB }

func (s credentialStore) CreateAccount(_ context.Context, cred *domain.Credential, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.credentials[cred.Email]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	cred.ID = uuid.NewString()
	profile.ID = cred.ID
	s.credentials[cred.Email] = cred
	s.profiles[profile.ID] = profile
	return nil
}

func (s credentialStore) GetByEmail(_ context.Context, email string) (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.credentials[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (r *memRevoker) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = true
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revoked[tokenID], nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

var errDown = errors.New("connection refused")
