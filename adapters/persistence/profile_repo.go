package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Store {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = `id, owner_id, saved_careers, saved_scholarships, roadmap_progress,
	career_goal, target_year, current_class, preferred_stream, motivational_enabled,
	version, created_at, updated_at`

// scanProfile fails when a collection column does not decode.
func scanProfile(row pgx.Row) (*profile.UserProfile, error) {
	p := &profile.UserProfile{}
	var careersBytes, scholarshipsBytes, progressBytes []byte

	err := row.Scan(
		&p.ID, &p.OwnerID, &careersBytes, &scholarshipsBytes, &progressBytes,
		&p.CareerGoal, &p.TargetYear, &p.CurrentClass, &p.PreferredStream, &p.MotivationalEnabled,
		&p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(careersBytes, &p.SavedCareers); err != nil {
		return nil, fmt.Errorf("profile %s: decode saved_careers: %w", p.ID, err)
	}
	if err := json.Unmarshal(scholarshipsBytes, &p.SavedScholarships); err != nil {
		return nil, fmt.Errorf("profile %s: decode saved_scholarships: %w", p.ID, err)
	}
	if err := json.Unmarshal(progressBytes, &p.RoadmapProgress); err != nil {
		return nil, fmt.Errorf("profile %s: decode roadmap_progress: %w", p.ID, err)
	}
	p.Normalize()
	return p, nil
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.UserProfile) (*profile.UserProfile, error) {
	draft := p.Clone()
	careersBytes, err := json.Marshal(draft.SavedCareers)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal saved_careers", err)
	}
	scholarshipsBytes, err := json.Marshal(draft.SavedScholarships)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal saved_scholarships", err)
	}
	progressBytes, err := json.Marshal(draft.RoadmapProgress)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal roadmap_progress", err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO user_profiles (id, owner_id, saved_careers, saved_scholarships, roadmap_progress,
			career_goal, target_year, current_class, preferred_stream, motivational_enabled,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, $11)
		ON CONFLICT (owner_id) DO NOTHING
		RETURNING ` + profileColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(), draft.OwnerID, careersBytes, scholarshipsBytes, progressBytes,
		draft.CareerGoal, draft.TargetYear, draft.CurrentClass, draft.PreferredStream, draft.MotivationalEnabled,
		now,
	)
	saved, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileExists
		}
		return nil, apperror.NewInternal("failed to create profile", err)
	}
	return saved, nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, id uuid.UUID, expectedVersion int64, patch profile.Patch) (*profile.UserProfile, error) {
	builder := psql.Update("user_profiles").
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "version": expectedVersion}).
		Suffix("RETURNING " + profileColumns)

	if patch.SavedCareers != nil {
		b, err := json.Marshal(*patch.SavedCareers)
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal saved_careers", err)
		}
		builder = builder.Set("saved_careers", b)
	}
	if patch.SavedScholarships != nil {
		b, err := json.Marshal(*patch.SavedScholarships)
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal saved_scholarships", err)
		}
		builder = builder.Set("saved_scholarships", b)
	}
	if patch.RoadmapProgress != nil {
		b, err := json.Marshal(patch.RoadmapProgress)
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal roadmap_progress", err)
		}
		builder = builder.Set("roadmap_progress", b)
	}
	if g := patch.Goals; g != nil {
		builder = builder.SetMap(map[string]any{
			"career_goal":          g.CareerGoal,
			"target_year":          g.TargetYear,
			"current_class":        g.CurrentClass,
			"preferred_stream":     g.PreferredStream,
			"motivational_enabled": g.MotivationalEnabled,
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build update profile query", err)
	}

	saved, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewInternal("failed to update profile", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_profiles WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, apperror.NewInternal("failed to check profile version", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: expected version %d", profile.ErrStaleVersion, expectedVersion)
	}
	return nil, profile.ErrProfileNotFound
}

func (r *postgresProfileRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE owner_id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		r.logger.Error("Failed to read profile", err, zap.String("owner_id", ownerID.String()))
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) List(ctx context.Context, limit, offset int) ([]*profile.UserProfile, error) {
	sql, args, err := psql.Select(profileColumns).
		From("user_profiles").
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list profiles query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	out := make([]*profile.UserProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan profile row", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return out, nil
}
