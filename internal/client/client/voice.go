package client

import (
	"context"
	"fmt"
	"strings"
)

func (g *Gateway) VoiceToText(ctx context.Context, text string) (*VoiceText, error) {
	return g.voice(ctx, "/api/voice-to-text", text)
}

func (g *Gateway) TextToSpeech(ctx context.Context, text string) (*VoiceText, error) {
	return g.voice(ctx, "/api/text-to-speech", text)
}

func (g *Gateway) voice(ctx context.Context, path, text string) (*VoiceText, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidArgument)
	}
	var resp VoiceText
	if err := g.post(ctx, path, map[string]string{"text": text}, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) VoiceStatus(ctx context.Context) (*VoiceStatus, error) {
	var resp VoiceStatus
	if err := g.get(ctx, "/api/voice/status", g.timeouts.Check, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) Health(ctx context.Context) (*HealthStatus, error) {
	var resp HealthStatus
	if err := g.get(ctx, "/api/health", g.timeouts.Check, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
