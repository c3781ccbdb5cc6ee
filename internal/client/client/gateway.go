package client

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultDiagnosisPerPage = 10
	defaultChatPerPage      = 20
	// DefaultSearchRadius is the hospital search radius in meters.
	DefaultSearchRadius = 5000
)

// Gateway maps each backend capability to one Executor call with a fixed
// endpoint, payload shape and timeout. Errors from the Executor are returned
// as they are.
type Gateway struct {
	exec     *Executor
	timeouts Timeouts
}

func NewGateway(exec *Executor, timeouts Timeouts) *Gateway {
	return &Gateway{exec: exec, timeouts: timeouts.withDefaults()}
}

func (g *Gateway) get(ctx context.Context, path string, timeout time.Duration, out any) error {
	return g.exec.Do(ctx, Request{Method: http.MethodGet, Path: path, Timeout: timeout}, out)
}

func (g *Gateway) post(ctx context.Context, path string, body any, timeout time.Duration, out any) error {
	return g.exec.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Timeout: timeout}, out)
}
