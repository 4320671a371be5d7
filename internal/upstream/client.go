package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pricing-ai-gateway/internal/auth"
	"pricing-ai-gateway/internal/logging"

	"github.com/go-resty/resty/v2"
)

// Response는 가격 서비스 응답의 상태 코드와 원본 본문입니다.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client forwards requests to the pricing service, signed with the internal key.
type Client struct {
	baseURL     string
	internalKey string
	httpClient  *resty.Client
}

func New(baseURL, internalKey string, timeout time.Duration, logger *slog.Logger) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(logging.RestyLogger{Logger: logging.OrDiscard(logger)})

	return &Client{
		baseURL:     baseURL,
		internalKey: internalKey,
		httpClient:  httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Forward는 method와 body를 그대로 baseURL+path로 보냅니다. 2xx가 아닌 응답도 오류가 아닙니다.
func (c *Client) Forward(ctx context.Context, method, path string, body []byte) (*Response, error) {
	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(auth.HeaderAPIKey, c.internalKey)

	if len(body) > 0 {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("failed to call pricing service %s %s: %w", method, path, err)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
