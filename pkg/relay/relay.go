// Package relay defines the JSON message envelopes exchanged between the
// extraction side and the contact sync side, and a dispatcher for them.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/codeGROOVE-dev/rolodex/pkg/contact"
	"github.com/codeGROOVE-dev/rolodex/pkg/profile"
)

// Message actions.
const (
	ActionSync            = "syncToContacts"
	ActionInjectHelper    = "injectHelper"
	ActionRequestApproval = "REQUEST_APPROVAL"
)

// ErrUnknownAction is returned when a request names an unregistered action.
var ErrUnknownAction = errors.New("unknown action")

// Request is an inbound message envelope.
type Request struct {
	Action    string                 `json:"action"`
	Profile   *contact.Contact       `json:"profileData,omitempty"`
	Approvals []profile.ApprovalItem `json:"approvals,omitempty"`
}

// Response is the reply envelope for a request.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Decode parses a request envelope.
func Decode(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if req.Action == "" {
		return Request{}, errors.New("request has no action")
	}
	return req, nil
}

// Encode serializes a response envelope.
func Encode(resp Response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		// Response has no unmarshalable fields; this cannot happen.
		return []byte(`{"success":false,"error":"encode failure"}`)
	}
	return data
}

// HandlerFunc processes one decoded request.
type HandlerFunc func(ctx context.Context, req Request) Response

// Mux dispatches requests to handlers by action.
type Mux struct {
	logger   *slog.Logger
	handlers map[string]HandlerFunc
}

// NewMux creates an empty dispatcher.
func NewMux(logger *slog.Logger) *Mux {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mux{logger: logger, handlers: make(map[string]HandlerFunc)}
}

// Handle registers a handler for an action, replacing any existing one.
func (m *Mux) Handle(action string, h HandlerFunc) {
	m.handlers[action] = h
}

// Dispatch decodes a raw request, routes it, and returns the encoded
// response. Malformed or unroutable requests produce error responses
// rather than dropped messages.
func (m *Mux) Dispatch(ctx context.Context, raw []byte) []byte {
	req, err := Decode(raw)
	if err != nil {
		m.logger.WarnContext(ctx, "malformed relay request", "error", err)
		return Encode(Response{Success: false, Error: err.Error()})
	}

	h, ok := m.handlers[req.Action]
	if !ok {
		m.logger.WarnContext(ctx, "unknown relay action", "action", req.Action)
		return Encode(Response{Success: false, Error: fmt.Sprintf("%s: %q", ErrUnknownAction, req.Action)})
	}

	m.logger.DebugContext(ctx, "dispatching relay request", "action", req.Action)
	return Encode(h(ctx, req))
}

// SyncHandler returns the handler for contact sync requests. It validates
// the payload and hands the contact to sync.
func SyncHandler(logger *slog.Logger, sync func(ctx context.Context, c contact.Contact) error) HandlerFunc {
	return func(ctx context.Context, req Request) Response {
		if req.Profile == nil {
			return Response{Success: false, Error: "No profile data provided"}
		}
		if req.Profile.FullName == "" {
			return Response{Success: false, Error: "Profile data missing required name field"}
		}

		if logger != nil {
			logger.InfoContext(ctx, "starting contact sync", "name", req.Profile.FullName)
		}
		if err := sync(ctx, *req.Profile); err != nil {
			return Response{Success: false, Error: err.Error()}
		}
		return Response{
			Success: true,
			Message: fmt.Sprintf("Opened Google Contacts with search for %q and added helper panel.", req.Profile.FullName),
		}
	}
}
