package adaptation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const recommendationsCacheKey = "adaptation-recommendations"

var _ Analyzer = (*AnalyzerClient)(nil)

type cachedRecommendation struct {
	ProgramID  string             `json:"programId"`
	Adaptation program.Adaptation `json:"adaptation"`
}

type analyzeResponse struct {
	Recommendations []program.Adaptation `json:"recommendations"`
}

// AnalyzerClient calls the external workout analyzer. Recommendations are cached
// in a redis hash, which is served when the analyzer is unreachable.
type AnalyzerClient struct {
	baseURL     string
	httpClient  *http.Client
	redisClient *redis.Client
}

func NewAnalyzerClient(baseURL string, httpClient *http.Client, redisClient *redis.Client) *AnalyzerClient {
	return &AnalyzerClient{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  httpClient,
		redisClient: redisClient,
	}
}

func (c *AnalyzerClient) Analyze(ctx context.Context, req AnalyzeRequest) (_ []program.Adaptation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adaptation.analyzer.analyze")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	recommendations, err := c.analyze(ctx, req)
	if err != nil {
		cached, cacheErr := c.cached(ctx, req.ProgramID)
		if cacheErr != nil || len(cached) == 0 {
			return nil, multierr.Append(err, cacheErr)
		}
		log.Warnf("analyzer unreachable, serving %d cached recommendations: %s", len(cached), err)
		return cached, nil
	}

	c.replaceCached(ctx, req.ProgramID, recommendations)
	return recommendations, nil
}

// replaceCached swaps the program's cached recommendations for the latest ones.
// Entries of other programs are left untouched.
func (c *AnalyzerClient) replaceCached(ctx context.Context, programID string, recommendations []program.Adaptation) {
	latest := make(map[string]struct{}, len(recommendations))
	for _, r := range recommendations {
		latest[r.ID] = struct{}{}
	}

	entries, err := c.cachedEntries(ctx)
	if err != nil {
		log.Errorf("replace cached recommendations [%s]: %s", programID, err)
	}
	var stale []string
	for id, cr := range entries {
		if _, ok := latest[id]; !ok && cr.ProgramID == programID {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		sort.Strings(stale)
		if err := c.redisClient.HDel(ctx, recommendationsCacheKey, stale...).Err(); err != nil {
			log.Errorf("delete stale recommendations [%s]: %s", programID, err)
		}
	}

	for _, r := range recommendations {
		if r.ID == "" {
			continue
		}
		data, err := json.Marshal(cachedRecommendation{ProgramID: programID, Adaptation: r})
		if err != nil {
			log.Errorf("marshal recommendation %s: %s", r.ID, err)
			continue
		}
		if err := c.redisClient.HSet(ctx, recommendationsCacheKey, r.ID, string(data)).Err(); err != nil {
			log.Errorf("cache recommendation %s: %s", r.ID, err)
		}
	}
}

func (c *AnalyzerClient) analyze(ctx context.Context, analyzeReq AnalyzeRequest) ([]program.Adaptation, error) {
	reqBody, err := json.Marshal(analyzeReq)
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analyzer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyzer status %d: %s", resp.StatusCode, respBytes)
	}

	var ar analyzeResponse
	if err := json.Unmarshal(respBytes, &ar); err != nil {
		return nil, fmt.Errorf("unmarshal analyzer response: %w", err)
	}
	if ar.Recommendations == nil {
		ar.Recommendations = []program.Adaptation{}
	}
	return ar.Recommendations, nil
}

func (c *AnalyzerClient) cached(ctx context.Context, programID string) ([]program.Adaptation, error) {
	entries, err := c.cachedEntries(ctx)
	if err != nil {
		return nil, err
	}

	var recommendations []program.Adaptation
	for _, cr := range entries {
		if cr.ProgramID == programID {
			recommendations = append(recommendations, cr.Adaptation)
		}
	}
	sortByPriority(recommendations)
	return recommendations, nil
}

func (c *AnalyzerClient) cachedEntries(ctx context.Context) (map[string]cachedRecommendation, error) {
	all, err := c.redisClient.HGetAll(ctx, recommendationsCacheKey).Result()
	if err != nil {
		return nil, fmt.Errorf("get cached recommendations: %w", err)
	}

	entries := make(map[string]cachedRecommendation, len(all))
	for id, raw := range all {
		var cr cachedRecommendation
		if err := json.Unmarshal([]byte(raw), &cr); err != nil {
			log.Errorf("unmarshal cached recommendation %s: %s", id, err)
			continue
		}
		entries[id] = cr
	}
	return entries, nil
}

// Clear deletes the recommendation remotely and from the cache.
// The cached copy is removed even when the remote delete fails.
func (c *AnalyzerClient) Clear(ctx context.Context, adaptationID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adaptation.analyzer.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = multierr.Append(err, c.deleteRemote(ctx, adaptationID))
	if delErr := c.redisClient.HDel(ctx, recommendationsCacheKey, adaptationID).Err(); delErr != nil {
		err = multierr.Append(err, fmt.Errorf("delete cached recommendation: %w", delErr))
	}
	return err
}

func (c *AnalyzerClient) deleteRemote(ctx context.Context, adaptationID string) error {
	reqURL := fmt.Sprintf("%s/recommendations/%s", c.baseURL, url.PathEscape(adaptationID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("delete recommendation %s, analyzer status %d", adaptationID, resp.StatusCode)
	}
}
