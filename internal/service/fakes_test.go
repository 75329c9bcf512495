package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/events"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/repository"
)

// memStore mimics the relational store: schema defaults, FK-joined comments, ordering.
type memStore struct {
	mu          sync.Mutex
	clock       time.Time
	complaints  map[string]domain.Complaint
	comments    []domain.Comment
	profiles    map[string]*domain.Profile
	credentials map[string]*domain.Credential
	failNext    error
}

func newMemStore() *memStore {
	return &memStore{
		clock:       time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		complaints:  map[string]domain.Complaint{},
		profiles:    map[string]*domain.Profile{},
		credentials: map[string]*domain.Credential{},
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *memStore) addProfile(name string, role domain.Role) *auth.Principal {
	profile := &domain.Profile{ID: uuid.NewString(), FullName: name, Role: role}
	m.profiles[profile.ID] = profile
	return &auth.Principal{Profile: profile}
}

type memComplaints struct{ *memStore }

func (r memComplaints) Create(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	c.ID = uuid.NewString()
	c.Status = domain.ComplaintStatusNew
	c.CreatedAt = r.tick()
	c.UpdatedAt = c.CreatedAt
	r.complaints[c.ID] = *c
	return nil
}

func (r memComplaints) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (r memComplaints) List(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	result := []domain.Complaint{}
	for _, c := range r.complaints {
		if filter.StudentID != nil && c.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r memComplaints) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	c, ok := r.complaints[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.Status = status
	c.UpdatedAt = r.tick()
	r.complaints[id] = c
	return nil
}

type memComments struct{ *memStore }

func (r memComments) Create(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.complaints[c.ComplaintID]; !ok {
		return &pgconn.PgError{Code: "23503"}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = r.tick()
	stored := *c
	stored.Author = nil
	r.comments = append(r.comments, stored)
	return nil
}

func (r memComments) ListByComplaint(_ context.Context, complaintID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.Comment{}
	for _, c := range r.comments {
		if c.ComplaintID != complaintID {
			continue
		}
		profile := r.profiles[c.AuthorID]
		c.Author = &domain.CommentAuthor{FullName: profile.FullName, Role: profile.Role}
		result = append(result, c)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

type memProfiles struct{ *memStore }

func (r memProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

type memCredentials struct{ *memStore }

func (r memCredentials) CreateAccount(_ context.Context, cred *domain.Credential, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.credentials[cred.Email]; exists {
		return &pgconn.PgError{Code: "23505"}
	}
	cred.ID = uuid.NewString()
	cred.CreatedAt = r.tick()
	profile.ID = cred.ID
	profile.CreatedAt = cred.CreatedAt
	r.credentials[cred.Email] = cred
	r.profiles[profile.ID] = profile
	return nil
}

func (r memCredentials) GetByEmail(_ context.Context, email string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.credentials[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (r *memRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = ttl
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[tokenID]
	return ok, nil
}

// mockCommentRepository lets tests assert exactly which store calls happen.
type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.Comment, error) {
	args := m.Called(ctx, complaintID)
	return args.Get(0).([]domain.Comment), args.Error(1)
}
