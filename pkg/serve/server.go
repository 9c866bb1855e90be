package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/praetorian-inc/macrolex/pkg/scanner"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

// Version is the server protocol version
const Version = "1.1.0"

// Server reads NDJSON scan requests and answers each with the comments and
// tokens of the submitted text. Requests are answered in arrival order.
type Server struct {
	core    *scanner.Core
	in      *json.Decoder
	out     *json.Encoder
	metrics *Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records every answered request in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer creates a server scanning with core.
func NewServer(core *scanner.Core, in io.Reader, out io.Writer, opts ...Option) *Server {
	s := &Server{
		core: core,
		in:   json.NewDecoder(bufio.NewReader(in)),
		out:  json.NewEncoder(out),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run answers requests until the input ends, a "close" request arrives or
// ctx is cancelled. Cancellation and failed writes to the output are reported
// as errors.
func (s *Server) Run(ctx context.Context) error {
	settings := s.core.Settings()
	err := s.respond("ready", ReadyData{
		Version:          Version,
		MacroEndIdent:    settings.MacroEndIdent,
		MacroStartMarker: settings.MacroStartMarker,
	}, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reqs := make(chan Request)
	readErr := make(chan error, 1)
	go s.read(ctx, reqs, readErr)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-reqs:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// reqs closes only after the reader has stored its error.
				if err := <-readErr; err != io.EOF {
					return s.respond("decode", nil, err)
				}
				return nil
			}
			if req.Type == "close" {
				return nil
			}
			start := time.Now()
			respType, data, err := s.dispatch(req)
			s.metrics.observe(respType, data, err, time.Since(start))
			if err := s.respond(respType, data, err); err != nil {
				return err
			}
		}
	}
}

// read decodes requests onto reqs until the decoder fails.
func (s *Server) read(ctx context.Context, reqs chan<- Request, readErr chan<- error) {
	defer close(reqs)
	for {
		var req Request
		if err := s.in.Decode(&req); err != nil {
			readErr <- err
			return
		}
		select {
		case reqs <- req:
		case <-ctx.Done():
			readErr <- ctx.Err()
			return
		}
	}
}

// dispatch runs one request and returns the response type and data.
func (s *Server) dispatch(req Request) (string, any, error) {
	switch req.Type {
	case "scan":
		var p ScanPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return req.Type, nil, fmt.Errorf("invalid payload: %w", err)
		}
		core, err := s.coreFor(p.EndIdent)
		if err != nil {
			return req.Type, nil, err
		}
		return req.Type, core.Scan(p.Content, p.Source), nil

	case "scan_batch":
		var p ScanBatchPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return req.Type, nil, fmt.Errorf("invalid payload: %w", err)
		}
		core, err := s.coreFor(p.EndIdent)
		if err != nil {
			return req.Type, nil, err
		}
		return req.Type, core.ScanBatch(p.Items), nil

	case "locate":
		var p LocatePayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return req.Type, nil, fmt.Errorf("invalid payload: %w", err)
		}
		if p.Offset < 0 || p.Offset > len(p.Content) {
			return req.Type, nil, fmt.Errorf("byte offset %d out of range [0, %d]", p.Offset, len(p.Content))
		}
		return req.Type, types.ComputeLocation(types.TextLocation{}, p.Content, p.Offset), nil

	default:
		return "unknown", nil, fmt.Errorf("unknown request type: %s", req.Type)
	}
}

// coreFor returns the server's core, or a copy ending macros at endIdent.
func (s *Server) coreFor(endIdent string) (*scanner.Core, error) {
	if endIdent == "" {
		return s.core, nil
	}
	settings := s.core.Settings()
	settings.MacroEndIdent = endIdent
	return scanner.NewCoreWithSettings(settings, nil)
}

// respond writes one response line. A non-nil err makes it a failure.
// The returned error is the write error, if any.
func (s *Server) respond(respType string, data any, err error) error {
	resp := Response{Type: respType}
	if err == nil {
		resp.Data, err = json.Marshal(data)
	}
	if err != nil {
		resp.Data = nil
		resp.Error = err.Error()
	} else {
		resp.Success = true
	}
	if err := s.out.Encode(resp); err != nil {
		return fmt.Errorf("writing %s response: %w", respType, err)
	}
	return nil
}
