package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

var ErrNoHeartRate = errors.New("no heart rate reading")

// Client talks to the health metrics service (workout summaries, live heart rate).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetWorkoutMetrics returns the metrics recorded between start and end.
// nil, nil means the health service has nothing for that window.
func (c *Client) GetWorkoutMetrics(ctx context.Context, start, end time.Time) (_ *history.HealthMetrics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "health.client.getWorkoutMetrics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := url.Values{}
	query.Set("start", start.UTC().Format(time.RFC3339))
	query.Set("end", end.UTC().Format(time.RFC3339))
	reqURL := fmt.Sprintf("%s/metrics/workout?%s", c.baseURL, query.Encode())

	metrics := &history.HealthMetrics{}
	found, err := c.getJSON(ctx, reqURL, metrics)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return metrics, nil
}

type heartRateResponse struct {
	HeartRate *int      `json:"heartRate"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *Client) LatestHeartRate(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "health.client.latestHeartRate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var resp heartRateResponse
	found, err := c.getJSON(ctx, c.baseURL+"/metrics/heart-rate/latest", &resp)
	if err != nil {
		return 0, err
	}
	if !found || resp.HeartRate == nil {
		return 0, ErrNoHeartRate
	}
	return *resp.HeartRate, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, dest any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read health response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		log.Tracef("health service has no data for %s", reqURL)
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("health service status %d: %s", resp.StatusCode, respBytes)
	}

	if err := json.Unmarshal(respBytes, dest); err != nil {
		return false, fmt.Errorf("unmarshal health response: %w", err)
	}
	return true, nil
}
