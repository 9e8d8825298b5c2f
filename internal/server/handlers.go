package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gradpath/transcript-service/internal/common"
	"github.com/gradpath/transcript-service/internal/entity"
)

const uploadFormField = "transcript"

func userIDParam(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("user_id"))
	if err != nil {
		return uuid.Nil, common.NewAppError("BAD_USER_ID", "user_id must be a UUID", common.ErrInvalidInput)
	}
	return id, nil
}

type uploadResponse struct {
	JobID      uuid.UUID          `json:"jobId"`
	Transcript *entity.Transcript `json:"transcript"`
}

func (s *Server) uploadTranscript(ctx echo.Context) error {
	userID, err := userIDParam(ctx)
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile(uploadFormField)
	if err != nil {
		return common.NewAppError("MISSING_FILE", "multipart field 'transcript' is required", common.ErrInvalidInput)
	}
	src, err := fh.Open()
	if err != nil {
		return common.WrapError(err, "open upload")
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return common.WrapError(err, "read upload")
	}

	transcript, job, err := s.opts.Pipeline.ProcessUpload(
		ctx.Request().Context(), userID, fh.Filename, fh.Header.Get(echo.HeaderContentType), data)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, uploadResponse{JobID: job.ID, Transcript: transcript})
}

func (s *Server) getTranscript(ctx echo.Context) error {
	userID, err := userIDParam(ctx)
	if err != nil {
		return err
	}
	t, err := s.opts.Transcripts.GetByUser(ctx.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (s *Server) deleteTranscript(ctx echo.Context) error {
	userID, err := userIDParam(ctx)
	if err != nil {
		return err
	}
	if err := s.opts.Transcripts.DeleteForUser(ctx.Request().Context(), userID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) exportTranscript(ctx echo.Context) error {
	userID, err := userIDParam(ctx)
	if err != nil {
		return err
	}
	b, err := s.opts.Exporter.ExportTranscriptXLSX(ctx.Request().Context(), userID)
	if err != nil {
		return err
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transcript.xlsx"`)
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", b)
}

func (s *Server) listJobs(ctx echo.Context) error {
	userID, err := userIDParam(ctx)
	if err != nil {
		return err
	}
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return common.NewAppError("BAD_LIMIT", "limit must be a non-negative integer", common.ErrInvalidInput)
		}
	}
	jobs, err := s.opts.Jobs.ListByUser(ctx.Request().Context(), userID, limit)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []entity.ParseJob{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"jobs": jobs})
}

func (s *Server) health(ctx echo.Context) error {
	if s.opts.Health != nil {
		if err := s.opts.Health(ctx.Request().Context()); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "error": err.Error()})
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
