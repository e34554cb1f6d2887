package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoadRunner fires a fixed number of requests at an API with bounded
// concurrency and aggregates the outcome.
type LoadRunner struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// LoadResult summarizes one run
type LoadResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	P95Time        time.Duration `json:"p95_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

type requestOutcome struct {
	duration   time.Duration
	statusCode int
	err        error
}

func NewLoadRunner(baseURL string, concurrency, requests int, authToken string) *LoadRunner {
	return &LoadRunner{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *LoadRunner) RunGET(ctx context.Context, path string) *LoadResult {
	return r.run(ctx, http.MethodGet, r.BaseURL+path, nil)
}

func (r *LoadRunner) RunPUT(ctx context.Context, path string, payload interface{}) *LoadResult {
	return r.runJSON(ctx, http.MethodPut, path, payload)
}

func (r *LoadRunner) RunPOST(ctx context.Context, path string, payload interface{}) *LoadResult {
	return r.runJSON(ctx, http.MethodPost, path, payload)
}

func (r *LoadRunner) runJSON(ctx context.Context, method, path string, payload interface{}) *LoadResult {
	url := r.BaseURL + path
	body, err := json.Marshal(payload)
	if err != nil {
		return &LoadResult{URL: url, Method: method, Errors: []string{fmt.Sprintf("encode payload: %v", err)}}
	}
	return r.run(ctx, method, url, body)
}

func (r *LoadRunner) run(ctx context.Context, method, url string, payload []byte) *LoadResult {
	outcomes := make([]requestOutcome, r.Requests)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)

	start := time.Now()
	for i := 0; i < r.Requests; i++ {
		i := i
		g.Go(func() error {
			outcomes[i] = r.do(gctx, method, url, payload)
			return nil
		})
	}
	_ = g.Wait()

	return summarize(method, url, r.Concurrency, outcomes, time.Since(start))
}

func (r *LoadRunner) do(ctx context.Context, method, url string, payload []byte) requestOutcome {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return requestOutcome{err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if r.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.AuthToken)
	}

	start := time.Now()
	resp, err := r.Client.Do(req)
	if err != nil {
		return requestOutcome{err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return requestOutcome{duration: time.Since(start), statusCode: resp.StatusCode}
}

func summarize(method, url string, concurrency int, outcomes []requestOutcome, elapsed time.Duration) *LoadResult {
	result := &LoadResult{
		URL:           url,
		Method:        method,
		Concurrency:   concurrency,
		TotalRequests: len(outcomes),
		TotalTime:     elapsed,
		StatusCodes:   make(map[int]int),
	}

	durations := make([]time.Duration, 0, len(outcomes))
	var total time.Duration
	for _, o := range outcomes {
		if o.err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, o.err.Error())
			continue
		}
		durations = append(durations, o.duration)
		total += o.duration
		result.StatusCodes[o.statusCode]++
		if o.statusCode >= 200 && o.statusCode < 300 {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
	}

	if len(durations) > 0 {
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
		result.AverageTime = total / time.Duration(len(durations))
		result.P95Time = durations[(len(durations)*95+99)/100-1]
		result.MaxTime = durations[len(durations)-1]
	}
	if elapsed > 0 {
		result.RequestsPerSec = float64(len(outcomes)) / elapsed.Seconds()
	}
	return result
}

// Log writes the result as one structured line
func (r *LoadResult) Log(log *zap.Logger) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("url", r.URL),
		zap.Int("concurrency", r.Concurrency),
		zap.Int("total", r.TotalRequests),
		zap.Int("success", r.SuccessCount),
		zap.Int("failure", r.FailureCount),
		zap.Duration("elapsed", r.TotalTime),
		zap.Duration("avg", r.AverageTime),
		zap.Duration("p95", r.P95Time),
		zap.Duration("max", r.MaxTime),
		zap.Float64("rps", r.RequestsPerSec),
		zap.Any("status_codes", r.StatusCodes),
	}
	if len(r.Errors) > 0 {
		shown := r.Errors
		if len(shown) > 5 {
			shown = shown[:5]
		}
		fields = append(fields, zap.Strings("errors", shown))
	}
	log.Info("load result", fields...)
}
