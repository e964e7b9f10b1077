package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/internal/sentiment/dto"
	"stock-sentiment-tracker/pkg/logger"

	"golang.org/x/time/rate"
)

// Label names of the three-class sentiment classifier. cardiffnlp models
// answer with LABEL_n; newer revisions use the plain names.
var (
	negativeLabels = []string{"LABEL_0", "negative"}
	positiveLabels = []string{"LABEL_2", "positive"}
)

// huggingFaceRepository classifies text with a hosted inference model.
type huggingFaceRepository struct {
	client         *http.Client
	cfg            config.HuggingFace
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewHuggingFaceRepository creates a SentimentRepository backed by the HuggingFace inference API.
func NewHuggingFaceRepository(cfg config.HuggingFace, log *logger.Logger) SentimentRepository {
	return &huggingFaceRepository{
		client:         &http.Client{Timeout: cfg.Timeout},
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute),
	}
}

// Classify performs one inference call and returns P(positive) - P(negative).
func (r *huggingFaceRepository) Classify(ctx context.Context, text string) (float64, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: wait for request limit: %v", ErrClientFailure, err)
	}

	body, err := json.Marshal(dto.HuggingFaceRequest{Inputs: text})
	if err != nil {
		return 0, fmt.Errorf("%w: marshal payload: %v", ErrClientFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.ModelURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: create request: %v", ErrClientFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.Token)

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClientFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%w: status %d: %s", ErrServerFailure, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%w: status %d: %s", ErrClientFailure, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result dto.HuggingFaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result) == 0 || len(result[0]) == 0 {
		return 0, fmt.Errorf("%w: empty label distribution", ErrMalformedResponse)
	}

	return ScoreFromDistribution(result[0]), nil
}

// ScoreFromDistribution maps a negative/neutral/positive distribution to
// P(positive) - P(negative). Missing labels count as zero.
func ScoreFromDistribution(dist []dto.LabelScore) float64 {
	scores := make(map[string]float64, len(dist))
	for _, ls := range dist {
		scores[ls.Label] = ls.Score
	}
	return pick(scores, positiveLabels) - pick(scores, negativeLabels)
}

func pick(scores map[string]float64, labels []string) float64 {
	for _, l := range labels {
		if v, ok := scores[l]; ok {
			return v
		}
	}
	return 0
}
