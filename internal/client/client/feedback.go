package client

import (
	"context"
	"fmt"
	"strings"
)

func (g *Gateway) SendFeedback(ctx context.Context, message string, rating int) (*MessageResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: feedback is empty", ErrInvalidArgument)
	}
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5, or 0 to skip", ErrInvalidArgument)
	}
	var resp MessageResponse
	if err := g.post(ctx, "/api/feedback", feedbackRequest{Message: message, Rating: rating}, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
