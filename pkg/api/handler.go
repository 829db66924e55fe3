// Package api exposes the generation and subscribe endpoints over HTTP.
// Errors are translated into fixed response shapes here; nothing below
// this layer knows about status codes.
package api

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/viralprompt/scriptgen/pkg/gateway"
	"github.com/viralprompt/scriptgen/pkg/identity"
	"github.com/viralprompt/scriptgen/pkg/provider"
	"github.com/viralprompt/scriptgen/pkg/quota"
	"github.com/viralprompt/scriptgen/pkg/subscribe"
)

const limitReachedMessage = "Free limit reached. Leave your email to get paid plans."

// Handler serves the public API.
type Handler struct {
	config Config
}

// Generate serves the generation endpoint: POST only, permissive CORS,
// pre-flight OPTIONS answered with 204.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	cors(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var req GenerateRequest
	if err := readJSON(w, r, h.config.MaxBodyBytes, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.config.Gateway.Generate(r.Context(), gateway.Request{
		Request: provider.Request{
			Prompt:   req.Prompt,
			Mode:     provider.Mode(req.Mode),
			Format:   req.Format,
			Tone:     req.Tone,
			Duration: req.Duration,
			WithTags: req.WithTags,
		},
		Email:        req.Email,
		ForwardedFor: r.Header.Get(identity.ForwardedForHeader),
		RemoteAddr:   remoteHost(r),
	})
	if err != nil {
		h.handleGenerateError(w, r, err)
		return
	}

	resp := GenerateResponse{
		Result:    result.Text,
		Remaining: result.Remaining,
		Score: &ScoreInfo{
			Score: result.Score.Score,
			Label: result.Score.Label,
			Tips:  result.Score.Tips,
		},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.config.Logger.Error("response encoding failed",
			quota.Field{Key: "error", Value: err.Error()},
		)
	}
}

// Subscribe serves the email capture endpoint.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if h.config.Subscribers == nil {
		h.writeError(w, http.StatusServiceUnavailable, "Subscriptions unavailable")
		return
	}

	var req SubscribeRequest
	if err := readJSON(w, r, h.config.MaxBodyBytes, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := subscribe.Normalize(req.Email)
	if err := subscribe.Validate(email); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid email")
		return
	}

	plan := strings.TrimSpace(req.Plan)
	if plan == "" {
		plan = subscribe.DefaultPlan
	}

	sub := subscribe.Subscriber{
		Email:        email,
		Plan:         plan,
		IP:           identity.Resolve("", r.Header.Get(identity.ForwardedForHeader), remoteHost(r)),
		SubscribedAt: nowUTC(),
	}
	if err := h.config.Subscribers.AddSubscriber(r.Context(), sub); err != nil {
		h.config.Logger.Error("subscribe failed",
			quota.Field{Key: "email", Value: email},
			quota.Field{Key: "error", Value: err.Error()},
		)
		h.writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := writeJSON(w, http.StatusOK, SubscribeResponse{OK: true}); err != nil {
		h.config.Logger.Error("response encoding failed",
			quota.Field{Key: "error", Value: err.Error()},
		)
	}
}

// handleGenerateError maps the gateway's error taxonomy onto the endpoint's
// fixed response shapes. Store and provider faults both surface as 500; the
// distinction lives in the logs.
func (h *Handler) handleGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, gateway.ErrEmptyPrompt):
		h.writeError(w, http.StatusBadRequest, "Empty prompt")

	case errors.Is(err, gateway.ErrLimitReached):
		if encErr := writeJSON(w, http.StatusPaymentRequired, LimitResponse{
			Error:     limitReachedMessage,
			OverLimit: true,
			Remaining: 0,
		}); encErr != nil {
			h.config.Logger.Error("response encoding failed",
				quota.Field{Key: "error", Value: encErr.Error()},
			)
		}

	default:
		kind := "provider"
		if errors.Is(err, quota.ErrStoreUnavailable) {
			kind = "quota_store"
		}
		h.config.Logger.Error("generation request failed",
			quota.Field{Key: "kind", Value: kind},
			quota.Field{Key: "path", Value: r.URL.Path},
			quota.Field{Key: "error", Value: err.Error()},
		)
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) writeError(w http.ResponseWriter, code int, msg string) {
	if err := writeJSON(w, code, ErrorResponse{Error: msg}); err != nil {
		h.config.Logger.Error("response encoding failed",
			quota.Field{Key: "error", Value: err.Error()},
		)
	}
}

// remoteHost strips the port from the request's socket address.
func remoteHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
