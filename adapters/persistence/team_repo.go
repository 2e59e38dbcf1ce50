package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/career-path/internal/domain/team"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

type postgresTeamRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresTeamRepo(db *pgxpool.Pool, logger logger.Logger) team.Repository {
	return &postgresTeamRepo{db: db, logger: logger}
}

var teamColumns = []string{
	"id", "name", "role", "bio", "photo_url", "linkedin_url", "email", "sort_order", "created_at", "updated_at",
}

func scanMember(row pgx.Row) (*team.Member, error) {
	m := &team.Member{}
	err := row.Scan(
		&m.ID, &m.Name, &m.Role, &m.Bio, &m.PhotoURL, &m.LinkedInURL,
		&m.Email, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, team.ErrMemberNotFound
		}
		return nil, apperror.NewInternal("failed to scan team member row", err)
	}
	return m, nil
}

func (r *postgresTeamRepo) Save(ctx context.Context, m *team.Member) error {
	sql, args, err := psql.Insert("team_members").
		Columns(teamColumns...).
		Values(m.ID, m.Name, m.Role, m.Bio, m.PhotoURL, m.LinkedInURL, m.Email, m.SortOrder, m.CreatedAt, m.UpdatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build insert team member query", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperror.NewInternal("failed to save team member", err)
	}
	return nil
}

func (r *postgresTeamRepo) Update(ctx context.Context, m *team.Member) error {
	sql, args, err := psql.Update("team_members").
		SetMap(map[string]any{
			"name":         m.Name,
			"role":         m.Role,
			"bio":          m.Bio,
			"photo_url":    m.PhotoURL,
			"linkedin_url": m.LinkedInURL,
			"email":        m.Email,
			"sort_order":   m.SortOrder,
			"updated_at":   m.UpdatedAt,
		}).
		Where(sq.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build update team member query", err)
	}
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewInternal("failed to update team member", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return team.ErrMemberNotFound
	}
	return nil
}

func (r *postgresTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete team member", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return team.ErrMemberNotFound
	}
	return nil
}

func (r *postgresTeamRepo) FindByID(ctx context.Context, id uuid.UUID) (*team.Member, error) {
	sql, args, err := psql.Select(teamColumns...).From("team_members").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find team member query", err)
	}
	return scanMember(r.db.QueryRow(ctx, sql, args...))
}

func (r *postgresTeamRepo) List(ctx context.Context) ([]*team.Member, error) {
	sql, args, err := psql.Select(teamColumns...).From("team_members").OrderBy("sort_order ASC", "created_at ASC").ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list team members query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query team members", err)
	}
	defer rows.Close()

	members := make([]*team.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating team member rows", err)
	}
	return members, nil
}
