// Package ai implements the command-generator boundary as a single
// configuration-driven HTTP provider.
//
// Provider differences (auth header shape, system prompt placement,
// response layout) live entirely in the model's APIFormat; every response is
// normalized into domain.GeneratedCommand at this boundary, so the core
// never branches on provider-specific shapes.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// Factory creates generator instances. Clients are shared via the injected
// cache so repeated invocations reuse connections.
type Factory struct {
	cache *ClientCache
}

// NewFactory builds a factory around a client cache.
func NewFactory(cache *ClientCache) *Factory {
	if cache == nil {
		cache = NewClientCache()
	}
	return &Factory{cache: cache}
}

// ForModel builds a generator bound to one model definition.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.CommandGenerator, error) {
	if model.Endpoint == "" {
		return nil, fmt.Errorf("%w: model %q has no endpoint", domain.ErrConfiguration, model.Name)
	}
	return &httpGenerator{model: model, client: f.cache.For(model)}, nil
}

type httpGenerator struct {
	model  domain.ModelDefinition
	client *http.Client
}

type promptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateCommand implements ports.CommandGenerator.
func (g *httpGenerator) GenerateCommand(ctx context.Context, req domain.GenerateRequest) (domain.GeneratedCommand, error) {
	messages, err := renderRunPrompt(req)
	if err != nil {
		return domain.GeneratedCommand{}, fmt.Errorf("render prompt: %w", err)
	}
	raw, err := g.complete(ctx, messages)
	if err != nil {
		return domain.GeneratedCommand{}, err
	}
	gen, err := ParseGeneratedCommand(raw)
	if err != nil {
		return domain.GeneratedCommand{}, err
	}
	return gen, nil
}

// Answer implements ports.CommandGenerator.
func (g *httpGenerator) Answer(ctx context.Context, req domain.AskRequest) (string, error) {
	messages, err := renderAskPrompt(req)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return g.complete(ctx, messages)
}

// complete performs one chat-completion round trip.
func (g *httpGenerator) complete(ctx context.Context, messages []promptMessage) (string, error) {
	apiKey, err := g.resolveAPIKey()
	if err != nil {
		return "", err
	}

	body, err := g.buildRequestBody(messages)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	format := g.model.APIFormat
	if apiKey != "" {
		httpReq.Header.Set(format.GetAuthHeaderName(), format.GetAuthHeaderPrefix()+apiKey)
	}
	for name, value := range format.ExtraHeaders {
		httpReq.Header.Set(name, value)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrGeneration, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: provider returned %s: %s", domain.ErrGeneration, resp.Status, firstLine(string(data)))
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%w: malformed provider response: %v", domain.ErrGeneration, err)
	}
	text, err := extractPath(doc, format.GetResponsePath())
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return text, nil
}

func (g *httpGenerator) resolveAPIKey() (string, error) {
	if g.model.AuthEnvVar == "" {
		return "", nil
	}
	key := os.Getenv(g.model.AuthEnvVar)
	if key == "" {
		return "", fmt.Errorf("%w: %s is not set for model %q (run 'djinn settings init')",
			domain.ErrConfiguration, g.model.AuthEnvVar, g.model.Name)
	}
	return key, nil
}

func (g *httpGenerator) buildRequestBody(messages []promptMessage) ([]byte, error) {
	maxTokens := g.model.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	payload := map[string]interface{}{
		"model":      g.model.ModelID,
		"max_tokens": maxTokens,
	}

	if g.model.APIFormat.SystemInBody {
		var system string
		var rest []promptMessage
		for _, msg := range messages {
			if msg.Role == "system" && system == "" {
				system = msg.Content
				continue
			}
			rest = append(rest, msg)
		}
		if system != "" {
			payload["system"] = system
		}
		payload["messages"] = rest
	} else {
		payload["messages"] = messages
	}

	return json.Marshal(payload)
}

var _ ports.CommandGenerator = (*httpGenerator)(nil)
