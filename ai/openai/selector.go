// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/semsimilar/ai"
	"github.com/poiesic/semsimilar/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// SenseSelector implements ai.SenseSelector using OpenAI-compatible chat APIs.
type SenseSelector struct {
	client      llms.Model
	maxAttempts int
	logger      *slog.Logger
}

var _ ai.SenseSelector = (*SenseSelector)(nil)

// selection is the structure of the model's JSON response.
type selection struct {
	Sense string `json:"sense"`
}

// newSenseSelector is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSenseSelector(config *ai.Config) (*SenseSelector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &SenseSelector{
		client:      client,
		maxAttempts: config.MaxAttempts,
		logger:      slog.Default().With("component", "openai-selector"),
	}, nil
}

// NewSenseSelector creates a new sense selector using the provided configuration.
//
// Returns ai.SenseSelector interface to enforce abstraction.
func NewSenseSelector(config *ai.Config) (ai.SenseSelector, error) {
	return newSenseSelector(config)
}

// SelectSense asks the model which candidate fits target. Malformed replies
// are retried; "none" or an empty answer selects nothing.
func (s *SenseSelector) SelectSense(ctx context.Context, target string, window []string, candidates []core.SenseEntry) (string, error) {
	if len(candidates) == 0 {
		return "", nil
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, buildSystemPrompt()),
		llms.TextParts(llms.ChatMessageTypeHuman, buildUserPrompt(target, window, candidates)),
	}

	var result selection
	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return "", err
		}

		if len(response.Choices) < 1 {
			s.logger.Debug("no choices returned from model")
			return "", nil
		}

		responseText := cleanResponse(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			s.logger.Warn("error parsing selector response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		s.logger.Error("failed to parse selector response after retries", "err", lastErr)
		return "", lastErr
	}

	id := strings.TrimSpace(result.Sense)
	if strings.EqualFold(id, noSense) {
		id = ""
	}
	s.logger.Debug("selected sense", "target", target, "sense", id, "candidates", len(candidates))
	return id, nil
}
