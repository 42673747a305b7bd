// Package agent forwards invocation requests to the agent runtime that
// actually runs the language-model chains. The gateway owns auth, limits
// and observability; the runtime owns the business payloads.
package agent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Proxy struct {
	upstream *url.URL
	client   *http.Client
}

func NewProxy(upstream string, timeout time.Duration) (*Proxy, error) {
	u, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("parse agent upstream url: %w", err)
	}
	return &Proxy{
		upstream: u,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Do forwards a JSON invocation body to the named runtime operation
// (invoke, batch, stream). The caller owns the response body.
func (p *Proxy) Do(ctx context.Context, operation string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.upstream.JoinPath(operation).String(), body)
	if err != nil {
		return nil, fmt.Errorf("build agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call agent runtime: %w", err)
	}
	return resp, nil
}
