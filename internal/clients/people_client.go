package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// PeopleClient - open-notify, список людей на орбите
type PeopleClient interface {
	GetAstros(ctx context.Context) (map[string]interface{}, error)
}

type peopleClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewPeopleClient(baseURL, userAgent string, timeout time.Duration, httpClient *http.Client) PeopleClient {
	return &peopleClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: newHTTPClient(httpClient, timeout),
	}
}

func (c *peopleClient) GetAstros(ctx context.Context) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := getJSON(ctx, c.httpClient, "opennotify", c.baseURL+"/astros.json", c.userAgent, &data); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: 404", ErrUnexpectedStatus)
		}
		return nil, fmt.Errorf("fetch astronauts: %w", err)
	}
	if data == nil {
		return nil, errors.New("fetch astronauts: empty response")
	}

	return data, nil
}
