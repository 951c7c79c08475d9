package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nikh2951/health-link/internal/model"
	apperrors "github.com/nikh2951/health-link/pkg/errors"
	"github.com/nikh2951/health-link/pkg/logger"
)

// ClientConfig configures the generative-text HTTP client.
type ClientConfig struct {
	Endpoint       string
	APIKey         string
	Model          string
	Timeout        time.Duration
	RequestsPerMin int
}

// Client calls a generative-text endpoint. Requests are rate limited and
// guarded by a circuit breaker; every failure surfaces as an
// InsightProvider error the caller is expected to swallow.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	limiter *rate.Limiter
	breaker *breaker
	logger  *logger.Logger
}

func NewClient(cfg ClientConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = 10
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMin)), 1),
		breaker: newBreaker(3, 30*time.Second),
		logger:  log,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func prompt(vitals model.Vitals) string {
	return fmt.Sprintf(
		"Given the following blood pressure data (Systolic/Diastolic %s and Heart Rate %s) for the week, "+
			"provide a brief, professional health summary in 2 sentences. "+
			"Focus on stability and actionable minor advice like hydration or rest. "+
			"Do not give clinical diagnoses.",
		vitals.BP, vitals.HR)
}

// GetInsight asks the provider for an advisory sentence. The caller must
// substitute Fallback on any error.
func (c *Client) GetInsight(ctx context.Context, vitals model.Vitals) (string, error) {
	if !c.limiter.Allow() {
		return "", apperrors.InsightProvider(fmt.Errorf("insight request quota exhausted"))
	}

	var text string
	err := c.breaker.execute(func() error {
		var callErr error
		text, callErr = c.call(ctx, vitals)
		return callErr
	})
	if err != nil {
		c.logger.Warn(err, "insight request failed")
		return "", apperrors.InsightProvider(err)
	}
	return text, nil
}

func (c *Client) call(ctx context.Context, vitals model.Vitals) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt(vitals)}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.Endpoint, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insight endpoint returned %s", resp.Status)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("insight response has no text")
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
