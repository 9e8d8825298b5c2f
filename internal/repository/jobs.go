package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/common"
	"github.com/gradpath/transcript-service/internal/entity"
)

// ParseJobRepository is the audit trail for pipeline runs. Every upload gets
// a row regardless of outcome, so failed parses stay diagnosable.
type ParseJobRepository interface {
	Start(ctx context.Context, userID uuid.UUID, filename string, fileSize int, strategy constants.StrategyName) (*entity.ParseJob, error)
	MarkRunning(ctx context.Context, jobID uuid.UUID) error
	MarkTextOK(ctx context.Context, jobID uuid.UUID, method string, pages int, confidence float32) error
	MarkParseOK(ctx context.Context, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, message string) error
	SetRawOutput(ctx context.Context, jobID uuid.UUID, raw []byte) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ParseJob, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.ParseJob, error)
}

type parseJobRepo struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewParseJobRepository(pool *pgxpool.Pool, log *slog.Logger) ParseJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &parseJobRepo{pool: pool, log: log}
}

func (r *parseJobRepo) Start(ctx context.Context, userID uuid.UUID, filename string, fileSize int, strategy constants.StrategyName) (*entity.ParseJob, error) {
	job := &entity.ParseJob{
		ID:        uuid.New(),
		UserID:    userID,
		Filename:  filename,
		FileSize:  fileSize,
		Status:    constants.JobStatusQueued,
		Strategy:  strategy,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO parse_jobs (id, user_id, filename, file_size, status, strategy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		job.ID, job.UserID, job.Filename, job.FileSize, string(job.Status), string(job.Strategy),
		job.CreatedAt, job.UpdatedAt)
	if err != nil {
		r.log.Error("parse_job start failed", "user_id", userID, "err", err)
		return nil, common.NewAppError("DB_INSERT_FAILED", "start parse job", common.WrapError(common.ErrDatabase, err.Error()))
	}
	r.log.Info("parse_job started", "job_id", job.ID, "user_id", userID, "filename", filename)
	return job, nil
}

func (r *parseJobRepo) MarkRunning(ctx context.Context, jobID uuid.UUID) error {
	return r.setStatus(ctx, jobID, constants.JobStatusRunning, `
		UPDATE parse_jobs SET status = $2, updated_at = now() WHERE id = $1`,
		jobID, string(constants.JobStatusRunning))
}

func (r *parseJobRepo) MarkTextOK(ctx context.Context, jobID uuid.UUID, method string, pages int, confidence float32) error {
	return r.setStatus(ctx, jobID, constants.JobStatusTextOK, `
		UPDATE parse_jobs SET status = $2, text_method = $3, text_pages = $4, confidence = $5, updated_at = now()
		WHERE id = $1`,
		jobID, string(constants.JobStatusTextOK), method, pages, confidence)
}

func (r *parseJobRepo) MarkParseOK(ctx context.Context, jobID uuid.UUID) error {
	return r.setStatus(ctx, jobID, constants.JobStatusParseOK, `
		UPDATE parse_jobs SET status = $2, updated_at = now() WHERE id = $1`,
		jobID, string(constants.JobStatusParseOK))
}

func (r *parseJobRepo) MarkFailed(ctx context.Context, jobID uuid.UUID, message string) error {
	err := r.setStatus(ctx, jobID, constants.JobStatusFailed, `
		UPDATE parse_jobs SET status = $2, error_message = $3, updated_at = now() WHERE id = $1`,
		jobID, string(constants.JobStatusFailed), message)
	if err == nil {
		r.log.Warn("parse_job failed", "job_id", jobID, "error", message)
	}
	return err
}

// SetRawOutput attaches the strategy's raw intermediate payload (the model's
// JSON reply) to the job. It is written on failure too.
func (r *parseJobRepo) SetRawOutput(ctx context.Context, jobID uuid.UUID, raw []byte) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE parse_jobs SET raw_output = $2, updated_at = now() WHERE id = $1`,
		jobID, string(raw))
	if err != nil {
		r.log.Error("parse_job raw output update failed", "job_id", jobID, "err", err)
		return common.NewAppError("DB_UPDATE_FAILED", "update parse job", common.WrapError(common.ErrDatabase, err.Error()))
	}
	if tag.RowsAffected() == 0 {
		return common.NewAppError("JOB_NOT_FOUND", "no such parse job", common.ErrNotFound)
	}
	return nil
}

func (r *parseJobRepo) setStatus(ctx context.Context, jobID uuid.UUID, status constants.JobStatus, sql string, args ...any) error {
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		r.log.Error("parse_job status update failed", "job_id", jobID, "status", status, "err", err)
		return common.NewAppError("DB_UPDATE_FAILED", "update parse job", common.WrapError(common.ErrDatabase, err.Error()))
	}
	if tag.RowsAffected() == 0 {
		return common.NewAppError("JOB_NOT_FOUND", "no such parse job", common.ErrNotFound)
	}
	return nil
}

func (r *parseJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ParseJob, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, filename, file_size, status, strategy, text_method, text_pages,
			confidence, error_message, raw_output, created_at, updated_at
		FROM parse_jobs WHERE id = $1`, jobID)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("JOB_NOT_FOUND", "no such parse job", common.ErrNotFound)
	}
	if err != nil {
		r.log.Error("parse_job load failed", "job_id", jobID, "err", err)
		return nil, common.NewAppError("DB_QUERY_FAILED", "load parse job", common.WrapError(common.ErrDatabase, err.Error()))
	}
	return job, nil
}

func (r *parseJobRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.ParseJob, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, filename, file_size, status, strategy, text_method, text_pages,
			confidence, error_message, raw_output, created_at, updated_at
		FROM parse_jobs WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		r.log.Error("parse_job list failed", "user_id", userID, "err", err)
		return nil, common.NewAppError("DB_QUERY_FAILED", "list parse jobs", common.WrapError(common.ErrDatabase, err.Error()))
	}
	defer rows.Close()

	var jobs []entity.ParseJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, common.WrapError(err, "scan parse job")
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*entity.ParseJob, error) {
	var (
		job              entity.ParseJob
		status, strategy string
	)
	err := row.Scan(&job.ID, &job.UserID, &job.Filename, &job.FileSize, &status, &strategy,
		&job.TextMethod, &job.TextPages, &job.Confidence, &job.ErrorMessage, &job.RawOutput,
		&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	job.Status = constants.JobStatus(status)
	job.Strategy = constants.StrategyName(strategy)
	return &job, nil
}
