package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/martin/hirepilot/internal/types"
)

// CreateUser inserts a candidate account and returns the new id.
func (s *Store) CreateUser(ctx context.Context, name, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
		name, email,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// UsersByIDs returns the user records for the given id set. Unknown ids are
// silently absent from the result.
func (s *Store) UsersByIDs(ctx context.Context, ids []uuid.UUID) ([]types.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email FROM users WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var user types.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

// HRAccount is a recruiter login record.
type HRAccount struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
}

// CreateHR inserts a recruiter account with an already-hashed password.
func (s *Store) CreateHR(ctx context.Context, username, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO hr_accounts (username, password_hash) VALUES ($1, $2) RETURNING id`,
		username, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create HR account: %w", err)
	}
	return id, nil
}

// GetHRByUsername returns a recruiter account, or nil when it does not
// exist.
func (s *Store) GetHRByUsername(ctx context.Context, username string) (*HRAccount, error) {
	var hr HRAccount
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash FROM hr_accounts WHERE username = $1`,
		username,
	).Scan(&hr.ID, &hr.Username, &hr.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get HR account: %w", err)
	}
	return &hr, nil
}
