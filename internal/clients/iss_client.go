package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"isstracker/internal/models"
)

type ISSClient interface {
	GetPosition(ctx context.Context) (map[string]interface{}, error)
}

type issClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewISSClient - клиент wheretheiss.at. httpClient может быть nil.
func NewISSClient(baseURL, userAgent string, timeout time.Duration, httpClient *http.Client) ISSClient {
	return &issClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: newHTTPClient(httpClient, timeout),
	}
}

func (c *issClient) GetPosition(ctx context.Context) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/satellites/%d", c.baseURL, models.ISSNoradID)

	var data map[string]interface{}
	if err := getJSON(ctx, c.httpClient, "wheretheiss", url, c.userAgent, &data); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: 404", ErrUnexpectedStatus)
		}
		return nil, fmt.Errorf("fetch ISS position: %w", err)
	}
	if data == nil {
		return nil, errors.New("fetch ISS position: empty response")
	}

	return data, nil
}
