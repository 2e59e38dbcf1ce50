package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/career-path/internal/domain/feedback"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

type postgresFeedbackRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresFeedbackRepo(db *pgxpool.Pool, logger logger.Logger) feedback.Repository {
	return &postgresFeedbackRepo{db: db, logger: logger}
}

func (r *postgresFeedbackRepo) Save(ctx context.Context, f *feedback.Feedback) error {
	query := `
		INSERT INTO feedback (id, name, district, state, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, f.ID, f.Name, f.District, f.State, f.Email, f.Message, f.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save feedback", err)
	}
	return nil
}

func (r *postgresFeedbackRepo) List(ctx context.Context, limit, offset int) ([]*feedback.Feedback, error) {
	sql, args, err := psql.Select("id", "name", "district", "state", "email", "message", "created_at").
		From("feedback").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list feedback query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query feedback", err)
	}
	defer rows.Close()

	items := make([]*feedback.Feedback, 0)
	for rows.Next() {
		f := &feedback.Feedback{}
		if err := rows.Scan(&f.ID, &f.Name, &f.District, &f.State, &f.Email, &f.Message, &f.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan feedback row", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating feedback rows", err)
	}
	return items, nil
}

func (r *postgresFeedbackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete feedback", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return feedback.ErrFeedbackNotFound
	}
	return nil
}
