package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/common"
	"github.com/gradpath/transcript-service/internal/entity"
	"github.com/gradpath/transcript-service/internal/extract"
	"github.com/gradpath/transcript-service/internal/parser"
	"github.com/gradpath/transcript-service/internal/repository"
)

type fakeExtractor struct {
	result extract.TextExtractionResult
	err    error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte) (extract.TextExtractionResult, error) {
	return f.result, f.err
}

type fakeStrategy struct {
	transcript *entity.Transcript
	err        error
	gotText    string
}

func (f *fakeStrategy) Name() constants.StrategyName { return constants.StrategyRegex }

func (f *fakeStrategy) Parse(_ context.Context, text string) (*entity.Transcript, error) {
	f.gotText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.transcript, nil
}

type fakeRawStrategy struct {
	fakeStrategy
	raw    []byte
	gotReq parser.Request
}

func (f *fakeRawStrategy) ParseRequest(_ context.Context, req parser.Request) (*entity.Transcript, []byte, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.raw, f.err
	}
	return f.transcript, f.raw, nil
}

type fakeTranscripts struct {
	stored *entity.Transcript
	err    error
}

func (f *fakeTranscripts) UpsertForUser(_ context.Context, t *entity.Transcript) error {
	if f.err != nil {
		return f.err
	}
	f.stored = t
	return nil
}

func (f *fakeTranscripts) GetByUser(_ context.Context, _ uuid.UUID) (*entity.Transcript, error) {
	return f.stored, nil
}

func (f *fakeTranscripts) DeleteForUser(_ context.Context, _ uuid.UUID) error { return nil }

type fakeJobs struct {
	statuses  []constants.JobStatus
	failMsg   string
	rawOutput []byte
}

var _ repository.ParseJobRepository = (*fakeJobs)(nil)

func (f *fakeJobs) Start(_ context.Context, userID uuid.UUID, filename string, fileSize int, strategy constants.StrategyName) (*entity.ParseJob, error) {
	f.statuses = append(f.statuses, constants.JobStatusQueued)
	return &entity.ParseJob{ID: uuid.New(), UserID: userID, Filename: filename, FileSize: fileSize,
		Status: constants.JobStatusQueued, Strategy: strategy}, nil
}

func (f *fakeJobs) MarkRunning(_ context.Context, _ uuid.UUID) error {
	f.statuses = append(f.statuses, constants.JobStatusRunning)
	return nil
}

func (f *fakeJobs) MarkTextOK(_ context.Context, _ uuid.UUID, _ string, _ int, _ float32) error {
	f.statuses = append(f.statuses, constants.JobStatusTextOK)
	return nil
}

func (f *fakeJobs) MarkParseOK(_ context.Context, _ uuid.UUID) error {
	f.statuses = append(f.statuses, constants.JobStatusParseOK)
	return nil
}

func (f *fakeJobs) MarkFailed(_ context.Context, _ uuid.UUID, msg string) error {
	f.statuses = append(f.statuses, constants.JobStatusFailed)
	f.failMsg = msg
	return nil
}

func (f *fakeJobs) SetRawOutput(_ context.Context, _ uuid.UUID, raw []byte) error {
	f.rawOutput = raw
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, _ uuid.UUID) (*entity.ParseJob, error) {
	return nil, common.ErrNotFound
}

func (f *fakeJobs) ListByUser(_ context.Context, _ uuid.UUID, _ int) ([]entity.ParseJob, error) {
	return nil, nil
}

func newProcessor(ext *fakeExtractor, strat *fakeStrategy, store *fakeTranscripts, jobs *fakeJobs) *Processor {
	return NewProcessor(nil, ext, strat, store, jobs)
}

func TestProcessUpload(t *testing.T) {
	userID := uuid.New()
	strat := &fakeStrategy{transcript: &entity.Transcript{
		Courses: []entity.Course{{Subject: "CSE", CourseCode: "1001"}},
		Source:  constants.StrategyRegex,
	}}
	store := &fakeTranscripts{}
	jobs := &fakeJobs{}
	p := newProcessor(
		&fakeExtractor{result: extract.TextExtractionResult{Text: "transcript text", Method: "pdf-lib", Pages: 2}},
		strat, store, jobs)

	tr, job, err := p.ProcessUpload(context.Background(), userID, "transcript.pdf", "application/pdf", []byte("%PDF-"))
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.NotNil(t, job)

	assert.Equal(t, userID, tr.UserID)
	assert.False(t, tr.UploadDate.IsZero())
	assert.Equal(t, "transcript text", strat.gotText)
	assert.Same(t, tr, store.stored)
	assert.Equal(t, []constants.JobStatus{
		constants.JobStatusQueued,
		constants.JobStatusRunning,
		constants.JobStatusTextOK,
		constants.JobStatusParseOK,
	}, jobs.statuses)
}

func TestProcessUploadRejectsNonPDF(t *testing.T) {
	jobs := &fakeJobs{}
	p := newProcessor(&fakeExtractor{}, &fakeStrategy{}, &fakeTranscripts{}, jobs)

	_, _, err := p.ProcessUpload(context.Background(), uuid.New(), "resume.docx", "application/msword", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedMedia))
	assert.Empty(t, jobs.statuses, "rejected uploads never open a job")
}

func TestProcessUploadAcceptsPDFExtensionWithoutContentType(t *testing.T) {
	strat := &fakeStrategy{transcript: &entity.Transcript{}}
	p := newProcessor(&fakeExtractor{result: extract.TextExtractionResult{Text: "t"}},
		strat, &fakeTranscripts{}, &fakeJobs{})

	_, _, err := p.ProcessUpload(context.Background(), uuid.New(), "transcript.PDF", "", []byte("%PDF-"))
	assert.NoError(t, err)
}

func TestProcessUploadExtractFailureMarksJob(t *testing.T) {
	jobs := &fakeJobs{}
	p := newProcessor(
		&fakeExtractor{err: common.NewAppError("EXTRACT_FAILED", "no text layer", common.ErrExtraction)},
		&fakeStrategy{}, &fakeTranscripts{}, jobs)

	tr, job, err := p.ProcessUpload(context.Background(), uuid.New(), "t.pdf", "application/pdf", []byte("x"))
	require.Error(t, err)
	assert.Nil(t, tr)
	require.NotNil(t, job, "audit row survives the failure")
	assert.Contains(t, jobs.statuses, constants.JobStatusFailed)
	assert.Contains(t, jobs.failMsg, "EXTRACT_FAILED")
}

func TestProcessUploadParseFailureMarksJob(t *testing.T) {
	jobs := &fakeJobs{}
	p := newProcessor(
		&fakeExtractor{result: extract.TextExtractionResult{Text: "t"}},
		&fakeStrategy{err: errors.New("schema validation failed")},
		&fakeTranscripts{}, jobs)

	tr, _, err := p.ProcessUpload(context.Background(), uuid.New(), "t.pdf", "application/pdf", []byte("x"))
	require.Error(t, err)
	assert.Nil(t, tr)
	assert.Contains(t, jobs.statuses, constants.JobStatusFailed)
	assert.NotContains(t, jobs.statuses, constants.JobStatusParseOK)
}

func TestProcessUploadPersistsRawOutput(t *testing.T) {
	jobs := &fakeJobs{}
	strat := &fakeRawStrategy{
		fakeStrategy: fakeStrategy{transcript: &entity.Transcript{}},
		raw:          []byte(`{"courses":[]}`),
	}
	p := NewProcessor(nil,
		&fakeExtractor{result: extract.TextExtractionResult{Text: "t", Confidence: 0.9}},
		strat, &fakeTranscripts{}, jobs)

	_, _, err := p.ProcessUpload(context.Background(), uuid.New(), "t.pdf", "application/pdf", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, []byte(`{"courses":[]}`), jobs.rawOutput)
	assert.Equal(t, "t.pdf", strat.gotReq.FilenameHint)
	assert.Equal(t, float32(0.9), strat.gotReq.Confidence)
	assert.Equal(t, "t", strat.gotReq.Text)
}

func TestProcessUploadPersistsRawOutputOnFailure(t *testing.T) {
	jobs := &fakeJobs{}
	strat := &fakeRawStrategy{
		fakeStrategy: fakeStrategy{err: errors.New("model extraction failed")},
		raw:          []byte("Sorry, I cannot parse this."),
	}
	p := NewProcessor(nil,
		&fakeExtractor{result: extract.TextExtractionResult{Text: "t"}},
		strat, &fakeTranscripts{}, jobs)

	_, _, err := p.ProcessUpload(context.Background(), uuid.New(), "t.pdf", "application/pdf", []byte("x"))
	require.Error(t, err)

	assert.Equal(t, []byte("Sorry, I cannot parse this."), jobs.rawOutput,
		"the offending payload stays on the audit row")
	assert.Contains(t, jobs.statuses, constants.JobStatusFailed)
}

func TestProcessUploadStoreFailureMarksJob(t *testing.T) {
	jobs := &fakeJobs{}
	p := newProcessor(
		&fakeExtractor{result: extract.TextExtractionResult{Text: "t"}},
		&fakeStrategy{transcript: &entity.Transcript{}},
		&fakeTranscripts{err: common.NewAppError("DB_UPSERT_FAILED", "store transcript", common.ErrDatabase)},
		jobs)

	_, _, err := p.ProcessUpload(context.Background(), uuid.New(), "t.pdf", "application/pdf", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDatabase))
	assert.Contains(t, jobs.statuses, constants.JobStatusFailed)
}
