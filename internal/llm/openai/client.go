package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gradpath/transcript-service/internal/common"
	"github.com/gradpath/transcript-service/internal/llm"
)

// ExtractTranscript implements llm.TranscriptExtractor using text-only
// chat/completions with a JSON response format. The response is validated
// against the transcript schema; if strict validation fails we run one
// sanitize pass and re-validate before giving up.
func (c *Client) ExtractTranscript(ctx context.Context, req llm.ExtractRequest) (llm.TranscriptDocument, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"seed", c.cfg.Seed,
		"text_len", len(req.Text),
		"text_confidence", req.TextConfidence,
	)

	schema := llm.BuildTranscriptJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"seed":            c.cfg.Seed,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(req)},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.TranscriptDocument{}, nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.TranscriptDocument{}, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.TranscriptDocument{}, raw, fmt.Errorf("no choices in openai response")
	}
	content := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		cleaned, repaired, sErr := llm.SanitizeTranscriptJSON(content)
		if sErr != nil {
			c.log.Error("llm.extract.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return llm.TranscriptDocument{}, content, common.NewAppError("LLM_BAD_JSON", "model returned unparseable JSON", common.WrapError(common.ErrSchema, sErr.Error()))
		}
		if vErr := llm.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			c.log.Error("llm.extract.schema_validation_failed",
				"req_id", rid, "error", vErr, "content", string(content),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return llm.TranscriptDocument{}, content, common.NewAppError("LLM_SCHEMA_MISMATCH", "model response failed schema validation", common.WrapError(common.ErrSchema, vErr.Error()))
		}
		c.log.Warn("llm.extract.sanitize_applied",
			"req_id", rid, "repaired", repaired,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		content = cleaned
	}

	var doc llm.TranscriptDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.TranscriptDocument{}, content, common.NewAppError("LLM_BAD_JSON", "unparseable transcript document", common.WrapError(common.ErrSchema, err.Error()))
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"student", doc.StudentInfo.Name,
		"courses", len(doc.Courses),
		"gpa", doc.OverallTotals.GPA,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, content, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Warn("openai response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
