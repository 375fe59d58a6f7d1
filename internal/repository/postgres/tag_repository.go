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

// tagTable describes where one kind of tag lives.
type tagTable struct {
	table       string
	nameColumn  string
	uniqueIndex string
	notFound    error
}

type tagRepository[T domain.Skill | domain.Interest] struct {
	db *sqlx.DB
	t  tagTable
}

func NewSkillRepository(db *sqlx.DB) repository.SkillRepository {
	return &tagRepository[domain.Skill]{db: db, t: tagTable{
		table:       "skills",
		nameColumn:  "skill_name",
		uniqueIndex: "skills_skill_name_key",
		notFound:    domain.ErrSkillNotFound,
	}}
}

func NewInterestRepository(db *sqlx.DB) repository.InterestRepository {
	return &tagRepository[domain.Interest]{db: db, t: tagTable{
		table:       "interests",
		nameColumn:  "interest_name",
		uniqueIndex: "interests_interest_name_key",
		notFound:    domain.ErrInterestNotFound,
	}}
}

func (r *tagRepository[T]) Create(ctx context.Context, name string) (*T, error) {
	var tag T
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING id, %s`, r.t.table, r.t.nameColumn, r.t.nameColumn)
	if err := r.db.GetContext(ctx, &tag, query, name); err != nil {
		return nil, r.mapErr(err)
	}
	return &tag, nil
}

func (r *tagRepository[T]) GetByID(ctx context.Context, id int) (*T, error) {
	var tag T
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = $1`, r.t.nameColumn, r.t.table)
	if err := r.db.GetContext(ctx, &tag, query, id); err != nil {
		return nil, r.mapErr(err)
	}
	return &tag, nil
}

func (r *tagRepository[T]) List(ctx context.Context, filter repository.TagFilter) ([]*T, error) {
	tags := []*T{}

	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE 1=1`, r.t.nameColumn, r.t.table)
	args := []interface{}{}
	argCount := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND %s ILIKE $%d", r.t.nameColumn, argCount)
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", r.t.nameColumn, argCount, argCount+1)
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	err := r.db.SelectContext(ctx, &tags, query, args...)
	return tags, err
}

func (r *tagRepository[T]) Update(ctx context.Context, id int, name string) (*T, error) {
	var tag T
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE id = $2 RETURNING id, %s`, r.t.table, r.t.nameColumn, r.t.nameColumn)
	if err := r.db.GetContext(ctx, &tag, query, name, id); err != nil {
		return nil, r.mapErr(err)
	}
	return &tag, nil
}

func (r *tagRepository[T]) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.t.table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return r.t.notFound
	}
	return nil
}

func (r *tagRepository[T]) CountByIDs(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ANY($1)`, r.t.table)
	err := r.db.GetContext(ctx, &count, query, pq.Array(ids))
	return count, err
}

func (r *tagRepository[T]) mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return r.t.notFound
	}
	return uniqueFieldError(err, map[string]string{r.t.uniqueIndex: r.t.nameColumn})
}
