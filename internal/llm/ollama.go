package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	gobreaker "github.com/sony/gobreaker/v2"
)

type OllamaConfig func(client *OllamaClient)

// OllamaClient talks to an Ollama-compatible /api/chat endpoint. Calls go
// through a circuit breaker when one is configured.
type OllamaClient struct {
	base    url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*ChatResponse]
}

const defaultTimeout = 60 * time.Second

func NewOllamaClient(baseUrl string, opts ...OllamaConfig) (*OllamaClient, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := &OllamaClient{
		base: *base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, cfg := range opts {
		cfg(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) OllamaConfig {
	return func(client *OllamaClient) {
		client.http = httpClient
	}
}

func WithBreaker(cb *gobreaker.CircuitBreaker[*ChatResponse]) OllamaConfig {
	return func(client *OllamaClient) {
		client.breaker = cb
	}
}

func (oc *OllamaClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, apperr.NewValidation("missing chat messages")
	}
	if req.Model == "" {
		return nil, apperr.NewValidation("missing model name")
	}

	call := func() (*ChatResponse, error) {
		var resp ChatResponse
		if err := oc.do(ctx, http.MethodPost, "/api/chat", req, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}

	if oc.breaker == nil {
		return call()
	}
	resp, err := oc.breaker.Execute(call)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("llm unavailable: %w", err)
	}
	return resp, err
}

func (oc *OllamaClient) do(ctx context.Context, method, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := oc.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := oc.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
