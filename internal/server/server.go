package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/gradpath/transcript-service/internal/entity"
	"github.com/gradpath/transcript-service/internal/repository"
)

// Pipeline is the upload processing boundary the handlers depend on.
type Pipeline interface {
	ProcessUpload(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*entity.Transcript, *entity.ParseJob, error)
}

// Exporter renders a stored transcript as XLSX bytes.
type Exporter interface {
	ExportTranscriptXLSX(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// HealthFunc reports backing-store health for the readiness endpoint.
type HealthFunc func(ctx context.Context) error

type Options struct {
	Address        string
	MaxUploadBytes int64
	Pipeline       Pipeline
	Transcripts    repository.TranscriptRepository
	Jobs           repository.ParseJobRepository
	Exporter       Exporter
	Health         HealthFunc
	Logger         *slog.Logger
	DisableReqLogs bool
}

type Server struct {
	opts *Options
	app  *echo.Echo
}

func NewServer(opts *Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	s := &Server{opts: opts, app: echo.New()}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(middleware.Recover())
	s.app.Use(middleware.BodyLimit(bodyLimit(s.opts.MaxUploadBytes)))

	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.opts.Logger)

	s.app.GET("/healthz", s.health)

	v1 := s.app.Group("/v1")
	v1.POST("/users/:user_id/transcript", s.uploadTranscript)
	v1.GET("/users/:user_id/transcript", s.getTranscript)
	v1.DELETE("/users/:user_id/transcript", s.deleteTranscript)
	v1.GET("/users/:user_id/transcript/export", s.exportTranscript)
	v1.GET("/users/:user_id/jobs", s.listJobs)
}

func (s *Server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// ServeHTTP makes the server usable directly in httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}
