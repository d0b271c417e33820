package authflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/stephenoneal/warrant/pkg/protocol"
)

// ProviderError is an error object returned by the provider in place of a response.
type ProviderError struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Message == "" {
		return e.Type
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// StreamProvider exchanges provider messages as JSON documents over a pair of streams.
//
// Each request is written to w as one JSON document, and the matching response is read
// from r. The documents use the provider's own field names, so an operator can relay
// them through any transport, for example the AWS CLI's --cli-input-json.
type StreamProvider struct {
	mu  sync.Mutex
	enc *json.Encoder
	dec *json.Decoder
	err error // set once a read is abandoned; the stream is out of step after that
}

// NewStreamProvider creates a provider that reads responses from r and writes requests to w.
func NewStreamProvider(r io.Reader, w io.Writer) *StreamProvider {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &StreamProvider{
		enc: enc,
		dec: json.NewDecoder(r),
	}
}

// InitiateAuth writes req and reads the provider's challenge.
func (p *StreamProvider) InitiateAuth(ctx context.Context, req *protocol.InitiateAuthRequest) (*protocol.InitiateAuthResponse, error) {
	var resp protocol.InitiateAuthResponse
	if err := p.roundTrip(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RespondToAuthChallenge writes req and reads the provider's result.
func (p *StreamProvider) RespondToAuthChallenge(ctx context.Context, req *protocol.RespondToAuthChallengeRequest) (*protocol.RespondToAuthChallengeResponse, error) {
	var resp protocol.RespondToAuthChallengeResponse
	if err := p.roundTrip(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *StreamProvider) roundTrip(ctx context.Context, req, resp any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return fmt.Errorf("stream unusable after abandoned read: %w", p.err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.enc.Encode(req); err != nil {
		return fmt.Errorf("failed to write request: %w", err)
	}

	// Decoding blocks on the reader, which cannot be interrupted, so it runs aside.
	done := make(chan error, 1)
	var raw json.RawMessage
	go func() {
		done <- p.dec.Decode(&raw)
	}()

	select {
	case <-ctx.Done():
		p.err = ctx.Err()
		return p.err
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
	}

	var perr ProviderError
	if err := json.Unmarshal(raw, &perr); err == nil && perr.Type != "" {
		return &perr
	}

	if err := json.Unmarshal(raw, resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
