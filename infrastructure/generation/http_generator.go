// Package generation calls the external text-to-graph service.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

const (
	serviceName     = "mindmap-generator"
	maxResponseSize = 4 << 20
)

// HTTPGenerator posts {prompt, context} as JSON and decodes the
// {success, data, error} envelope. Deadlines come from the caller's context.
type HTTPGenerator struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPGenerator creates a generator client. A nil client uses
// http.DefaultClient.
func NewHTTPGenerator(url string, client *http.Client, logger *zap.Logger) *HTTPGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGenerator{url: url, client: client, logger: logger}
}

func (g *HTTPGenerator) Generate(ctx context.Context, req ports.GenerationRequest) (*ports.GenerationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.NewNetworkError("invalid generator url", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, pkgerrors.NewTimeoutError("mind map generation").WithCause(err)
		}
		return nil, pkgerrors.NewNetworkError("generator unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, pkgerrors.NewNetworkError("failed to read generator response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Warn("Generator returned an error status",
			zap.Int("status", resp.StatusCode),
			zap.Int("bodySize", len(raw)),
		)
		return nil, pkgerrors.NewExternalError(serviceName, fmt.Errorf("status %d", resp.StatusCode))
	}

	var out ports.GenerationResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, pkgerrors.NewExternalError(serviceName, fmt.Errorf("malformed response: %w", err))
	}

	g.logger.Debug("Generator responded",
		zap.Bool("success", out.Success),
		zap.Int("nodes", len(out.Data.Nodes)),
		zap.Int("connections", len(out.Data.Connections)),
	)
	return &out, nil
}
