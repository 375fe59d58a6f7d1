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

const profileColumns = `id, user_id, country, created_at, updated_at`

var profileUniqueFields = map[string]string{
	"profiles_user_id_key": "user",
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile, skillIDs, interestIDs []int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO profiles (user_id, country)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query, profile.UserID, profile.Country).
		Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return uniqueFieldError(err, profileUniqueFields)
	}

	if err := replaceProfileTags(ctx, tx, profile.ID, &skillIDs, &interestIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	return r.loadTags(ctx, []*domain.Profile{profile})
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
}

func (r *profileRepository) getOne(ctx context.Context, query string, arg int) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.GetContext(ctx, &profile, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	if err := r.loadTags(ctx, []*domain.Profile{&profile}); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, filter repository.ProfileFilter) ([]*domain.Profile, error) {
	profiles := []*domain.Profile{}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filter.Country != "" {
		query += fmt.Sprintf(" AND country = $%d", argCount)
		args = append(args, filter.Country)
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile, skillIDs, interestIDs *[]int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE profiles
		SET country = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING updated_at
	`
	if err := tx.QueryRowContext(ctx, query, profile.Country, profile.ID).Scan(&profile.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		return err
	}

	if err := replaceProfileTags(ctx, tx, profile.ID, skillIDs, interestIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	return r.loadTags(ctx, []*domain.Profile{profile})
}

func replaceProfileTags(ctx context.Context, tx *sqlx.Tx, profileID int, skillIDs, interestIDs *[]int) error {
	if skillIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM profile_skills WHERE profile_id = $1`, profileID); err != nil {
			return err
		}
		query := `
			INSERT INTO profile_skills (profile_id, skill_id)
			SELECT $1, unnest($2::int[])
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.ExecContext(ctx, query, profileID, pq.Array(*skillIDs)); err != nil {
			return fmt.Errorf("failed to set profile skills: %w", err)
		}
	}

	if interestIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM profile_interests WHERE profile_id = $1`, profileID); err != nil {
			return err
		}
		query := `
			INSERT INTO profile_interests (profile_id, interest_id)
			SELECT $1, unnest($2::int[])
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.ExecContext(ctx, query, profileID, pq.Array(*interestIDs)); err != nil {
			return fmt.Errorf("failed to set profile interests: %w", err)
		}
	}

	return nil
}

type profileSkillRow struct {
	ProfileID int `db:"profile_id"`
	domain.Skill
}

type profileInterestRow struct {
	ProfileID int `db:"profile_id"`
	domain.Interest
}

// loadTags fills Skills and Interests for all profiles with two queries.
func (r *profileRepository) loadTags(ctx context.Context, profiles []*domain.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	ids := make([]int, 0, len(profiles))
	byID := make(map[int]*domain.Profile, len(profiles))
	for _, p := range profiles {
		p.Skills = []domain.Skill{}
		p.Interests = []domain.Interest{}
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	var skills []profileSkillRow
	query := `
		SELECT ps.profile_id, s.id, s.skill_name
		FROM profile_skills ps
		JOIN skills s ON s.id = ps.skill_id
		WHERE ps.profile_id = ANY($1)
		ORDER BY s.skill_name
	`
	if err := r.db.SelectContext(ctx, &skills, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load profile skills: %w", err)
	}
	for _, row := range skills {
		byID[row.ProfileID].Skills = append(byID[row.ProfileID].Skills, row.Skill)
	}

	var interests []profileInterestRow
	query = `
		SELECT pi.profile_id, i.id, i.interest_name
		FROM profile_interests pi
		JOIN interests i ON i.id = pi.interest_id
		WHERE pi.profile_id = ANY($1)
		ORDER BY i.interest_name
	`
	if err := r.db.SelectContext(ctx, &interests, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load profile interests: %w", err)
	}
	for _, row := range interests {
		byID[row.ProfileID].Interests = append(byID[row.ProfileID].Interests, row.Interest)
	}

	return nil
}
