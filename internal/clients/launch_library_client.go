package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"isstracker/internal/logger"
	"isstracker/internal/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

type LaunchLibraryClient interface {
	// FetchUpcoming возвращает сырые записи из поля results
	FetchUpcoming(ctx context.Context, limit int) ([]map[string]interface{}, error)
	// FetchLaunch возвращает ErrLaunchNotFound на 404
	FetchLaunch(ctx context.Context, id string) (map[string]interface{}, error)
}

const launchLibraryBreaker = "launch-library"

type launchLibraryClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[map[string]interface{}]
}

func NewLaunchLibraryClient(baseURL, userAgent string, timeout time.Duration, httpClient *http.Client, log logger.Logger) LaunchLibraryClient {
	metrics.CircuitBreakerState.WithLabelValues(launchLibraryBreaker).Set(0)

	cb := gobreaker.NewCircuitBreaker[map[string]interface{}](gobreaker.Settings{
		Name:        launchLibraryBreaker,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 404 на конкретный запуск - нормальный ответ, а не отказ API
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrLaunchNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				logger.String("name", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &launchLibraryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: newHTTPClient(httpClient, timeout),
		cb:         cb,
	}
}

func (c *launchLibraryClient) FetchUpcoming(ctx context.Context, limit int) ([]map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/launch/upcoming/?limit=%d", c.baseURL, limit)

	page, err := c.cb.Execute(func() (map[string]interface{}, error) {
		var data map[string]interface{}
		if err := getJSON(ctx, c.httpClient, "launchlibrary", endpoint, c.userAgent, &data); err != nil {
			if errors.Is(err, errNotFound) {
				return nil, fmt.Errorf("%w: 404", ErrUnexpectedStatus)
			}
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch upcoming launches: %w", err)
	}

	raw, ok := page["results"].([]interface{})
	if !ok {
		return nil, errors.New("fetch upcoming launches: response has no results array")
	}

	results := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		// Не-объекты отбросит парсер выше, здесь просто пропускаем
		if record, ok := item.(map[string]interface{}); ok {
			results = append(results, record)
		}
	}

	return results, nil
}

func (c *launchLibraryClient) FetchLaunch(ctx context.Context, id string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/launch/%s/", c.baseURL, url.PathEscape(id))

	data, err := c.cb.Execute(func() (map[string]interface{}, error) {
		var data map[string]interface{}
		if err := getJSON(ctx, c.httpClient, "launchlibrary", endpoint, c.userAgent, &data); err != nil {
			if errors.Is(err, errNotFound) {
				return nil, ErrLaunchNotFound
			}
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		if errors.Is(err, ErrLaunchNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch launch %s: %w", id, err)
	}
	if data == nil {
		return nil, fmt.Errorf("fetch launch %s: empty response", id)
	}

	return data, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
