package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, is_active, date_joined`

var userUniqueFields = map[string]string{
	"users_username_key": "username",
	"users_email_key":    "email",
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (username, email, password_hash, first_name, last_name, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, date_joined
	`
	err = tx.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.IsActive,
	).Scan(&user.ID, &user.DateJoined)
	if err != nil {
		return uniqueFieldError(err, userUniqueFields)
	}

	profile.UserID = user.ID
	query = `
		INSERT INTO profiles (user_id, country)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query, profile.UserID, profile.Country).
		Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return tx.Commit()
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string, excludeID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)`
	err := r.db.GetContext(ctx, &exists, query, username, excludeID)
	return exists, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2)`
	err := r.db.GetContext(ctx, &exists, query, email, excludeID)
	return exists, err
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	users := []*domain.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &users, query, normalizeLimit(limit), offset)
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4, is_active = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.IsActive, user.ID,
	)
	if err != nil {
		return uniqueFieldError(err, userUniqueFields)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) FindCandidates(ctx context.Context, userID int, interestNames, skillNames []string) ([]*domain.User, error) {
	users := []*domain.User{}
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id <> $1
		  AND EXISTS (
			SELECT 1 FROM profiles p
			WHERE p.user_id = u.id
			  AND (
				EXISTS (
					SELECT 1 FROM profile_skills ps
					JOIN skills s ON s.id = ps.skill_id
					WHERE ps.profile_id = p.id AND lower(btrim(s.skill_name)) = ANY($2)
				)
				OR EXISTS (
					SELECT 1 FROM profile_interests pi
					JOIN interests i ON i.id = pi.interest_id
					WHERE pi.profile_id = p.id AND lower(btrim(i.interest_name)) = ANY($3)
				)
			  )
		  )
		ORDER BY u.id
	`
	err := r.db.SelectContext(ctx, &users, query, userID, pq.Array(interestNames), pq.Array(skillNames))
	return users, err
}
