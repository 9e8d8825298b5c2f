package repository

import (
	"context"
	"encoding/json"
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

// TranscriptRepository stores one transcript document per user, replaced
// wholesale on every successful parse.
type TranscriptRepository interface {
	UpsertForUser(ctx context.Context, t *entity.Transcript) error
	GetByUser(ctx context.Context, userID uuid.UUID) (*entity.Transcript, error)
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
}

type transcriptRepo struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewTranscriptRepository(pool *pgxpool.Pool, log *slog.Logger) TranscriptRepository {
	if log == nil {
		log = slog.Default()
	}
	return &transcriptRepo{pool: pool, log: log}
}

func (r *transcriptRepo) UpsertForUser(ctx context.Context, t *entity.Transcript) error {
	info, err := json.Marshal(t.StudentInfo)
	if err != nil {
		return common.WrapError(err, "marshal student info")
	}
	courses, err := json.Marshal(t.Courses)
	if err != nil {
		return common.WrapError(err, "marshal courses")
	}
	termTotals, err := json.Marshal(t.TermTotals)
	if err != nil {
		return common.WrapError(err, "marshal term totals")
	}
	overall, err := json.Marshal(t.OverallTotals)
	if err != nil {
		return common.WrapError(err, "marshal overall totals")
	}

	if t.UploadDate.IsZero() {
		t.UploadDate = time.Now().UTC()
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO transcripts (user_id, student_info, courses, term_totals, overall_totals, source, upload_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			student_info   = EXCLUDED.student_info,
			courses        = EXCLUDED.courses,
			term_totals    = EXCLUDED.term_totals,
			overall_totals = EXCLUDED.overall_totals,
			source         = EXCLUDED.source,
			upload_date    = EXCLUDED.upload_date`,
		t.UserID, info, courses, termTotals, overall, string(t.Source), t.UploadDate)
	if err != nil {
		r.log.Error("transcript upsert failed", "user_id", t.UserID, "err", err)
		return common.NewAppError("DB_UPSERT_FAILED", "store transcript", common.WrapError(common.ErrDatabase, err.Error()))
	}
	r.log.Info("transcript upserted", "user_id", t.UserID, "courses", len(t.Courses), "source", t.Source)
	return nil
}

func (r *transcriptRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*entity.Transcript, error) {
	var (
		info, courses, termTotals, overall []byte
		source                             string
		uploadDate                         time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT student_info, courses, term_totals, overall_totals, source, upload_date
		FROM transcripts WHERE user_id = $1`, userID).
		Scan(&info, &courses, &termTotals, &overall, &source, &uploadDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("TRANSCRIPT_NOT_FOUND", "no transcript for user", common.ErrNotFound)
	}
	if err != nil {
		r.log.Error("transcript load failed", "user_id", userID, "err", err)
		return nil, common.NewAppError("DB_QUERY_FAILED", "load transcript", common.WrapError(common.ErrDatabase, err.Error()))
	}

	t := entity.Transcript{
		UserID:     userID,
		Source:     constants.StrategyName(source),
		UploadDate: uploadDate,
	}
	if err := json.Unmarshal(info, &t.StudentInfo); err != nil {
		return nil, common.WrapError(err, "unmarshal student info")
	}
	if err := json.Unmarshal(courses, &t.Courses); err != nil {
		return nil, common.WrapError(err, "unmarshal courses")
	}
	if err := json.Unmarshal(termTotals, &t.TermTotals); err != nil {
		return nil, common.WrapError(err, "unmarshal term totals")
	}
	if err := json.Unmarshal(overall, &t.OverallTotals); err != nil {
		return nil, common.WrapError(err, "unmarshal overall totals")
	}
	return &t, nil
}

func (r *transcriptRepo) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transcripts WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Error("transcript delete failed", "user_id", userID, "err", err)
		return common.NewAppError("DB_DELETE_FAILED", "delete transcript", common.WrapError(common.ErrDatabase, err.Error()))
	}
	if tag.RowsAffected() == 0 {
		return common.NewAppError("TRANSCRIPT_NOT_FOUND", "no transcript for user", common.ErrNotFound)
	}
	r.log.Info("transcript deleted", "user_id", userID)
	return nil
}
