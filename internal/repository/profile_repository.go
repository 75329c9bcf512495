package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
)

const uniqueViolationCode = "23505"

// ProfileRepository reads role-bearing profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

// CredentialRepository manages sign-in credentials.
type CredentialRepository interface {
	// CreateAccount stores the credential and its profile atomically.
	CreateAccount(ctx context.Context, cred *domain.Credential, profile *domain.Profile) error
	GetByEmail(ctx context.Context, email string) (*domain.Credential, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const query = `SELECT id, full_name, role, created_at FROM profiles WHERE id=$1`

	var profile domain.Profile
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Role,
		&profile.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

type credentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &credentialRepository{pool: pool}
}

func (r *credentialRepository) CreateAccount(ctx context.Context, cred *domain.Credential, profile *domain.Profile) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const credQuery = `
        INSERT INTO credentials (email, password_hash)
        VALUES ($1, $2)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, credQuery, cred.Email, cred.PasswordHash).Scan(&cred.ID, &cred.CreatedAt); err != nil {
		return err
	}

	const profileQuery = `
        INSERT INTO profiles (id, full_name, role)
        VALUES ($1, $2, $3)
        RETURNING created_at`
	profile.ID = cred.ID
	if err := tx.QueryRow(ctx, profileQuery, profile.ID, profile.FullName, string(profile.Role)).Scan(&profile.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	const query = `SELECT id, email, password_hash, created_at FROM credentials WHERE email=$1`

	var cred domain.Credential
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&cred.ID,
		&cred.Email,
		&cred.PasswordHash,
		&cred.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &cred, nil
}

// IsUniqueViolation reports whether err came from a unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
