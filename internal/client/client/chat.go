package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

func (g *Gateway) SendChatMessage(ctx context.Context, text string) (*ChatReply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message is empty", ErrInvalidArgument)
	}
	var resp ChatReply
	if err := g.post(ctx, "/api/chat", map[string]string{"message": text}, g.timeouts.Chat, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) ChatHistory(ctx context.Context, page, perPage int) (*ChatHistoryPage, error) {
	var resp ChatHistoryPage
	req := Request{
		Method:  http.MethodGet,
		Path:    "/api/chat-history",
		Query:   pageQuery(page, perPage, defaultChatPerPage),
		Timeout: g.timeouts.History,
	}
	if err := g.exec.Do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
