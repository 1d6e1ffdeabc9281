package velero_api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"vdash/internal/core"
	"vdash/internal/core/domain"
	"vdash/internal/ports"
)

const maxErrorBodySize = 64 << 10

var _ ports.VeleroAPI = (*Client)(nil)

// Client talks to the dashboard backend. It has no base URL of its own; every
// request is routed by RoutingTransport.
type Client struct {
	httpClient *http.Client
}

func ProvideClient(router *core.RequestRouter, configRepository core.ConfigRepository) (*Client, error) {
	config, err := configRepository.LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewClient(&http.Client{
		Transport: NewRoutingTransport(router, nil),
		Timeout:   config.RequestTimeout,
	}), nil
}

func NewClient(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

func (c *Client) ListBackups(ctx context.Context) ([]domain.Backup, error) {
	var backups []domain.Backup
	if err := c.do(ctx, http.MethodGet, "/backups", nil, &backups); err != nil {
		return nil, err
	}
	return backups, nil
}

func (c *Client) CreateRestore(ctx context.Context, request domain.CreateRestoreRequest) (*domain.Restore, error) {
	var restore domain.Restore
	if err := c.do(ctx, http.MethodPost, "/restores", request, &restore); err != nil {
		return nil, err
	}
	return &restore, nil
}

func (c *Client) CreateRestoreWithModifications(
	ctx context.Context,
	request domain.CreateRestoreWithModificationsRequest,
) (*domain.Restore, error) {
	var restore domain.Restore
	if err := c.do(ctx, http.MethodPost, "/restores/with-modifications", request, &restore); err != nil {
		return nil, err
	}
	return &restore, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return nil
}

// newAPIError extracts FastAPI's {"detail": ...} when present and falls back
// to the raw body.
func newAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	var payload struct {
		Detail interface{} `json:"detail"`
	}
	detail := strings.TrimSpace(string(data))
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != nil {
		if text, ok := payload.Detail.(string); ok {
			detail = text
		} else if encoded, err := json.Marshal(payload.Detail); err == nil {
			detail = string(encoded)
		}
	}
	return &domain.APIError{StatusCode: resp.StatusCode, Detail: detail}
}
