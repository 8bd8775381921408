package questionsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Loader returns the raw content of a bank file.
type Loader interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// maxBankSize bounds a single bank download.
const maxBankSize = 8 << 20

// HTTPLoader downloads bank files relative to a base URL.
type HTTPLoader struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

func NewHTTPLoader(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPLoader {
	return &HTTPLoader{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		logger:  logger,
	}
}

func (l *HTTPLoader) Load(ctx context.Context, name string) ([]byte, error) {
	url := l.baseURL + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Warn("bank request failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.logger.Warn("bank request rejected", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %s returned %s", ErrNetwork, name, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBankSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNetwork, name, err)
	}

	return body, nil
}
