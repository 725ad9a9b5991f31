package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"isstracker/internal/metrics"

	"github.com/goccy/go-json"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrLaunchNotFound   = errors.New("launch not found")
	errNotFound         = errors.New("resource not found")
)

const defaultTimeout = 30 * time.Second

// newHTTPClient возвращает переданный клиент или новый с таймаутом
func newHTTPClient(client *http.Client, timeout time.Duration) *http.Client {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:    10,
			IdleConnTimeout: 30 * time.Second,
		},
	}
}

// getJSON выполняет GET и декодирует тело в dest.
// 404 отдается как errNotFound, прочие не-2xx как ErrUnexpectedStatus.
func getJSON(ctx context.Context, client *http.Client, api, url, userAgent string, dest interface{}) error {
	start := time.Now()
	err := doGetJSON(ctx, client, url, userAgent, dest)
	metrics.ExternalRequestDuration.WithLabelValues(api).Observe(time.Since(start).Seconds())

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.ExternalRequests.WithLabelValues(api, result).Inc()

	return err
}

func doGetJSON(ctx context.Context, client *http.Client, url, userAgent string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}

	return nil
}
