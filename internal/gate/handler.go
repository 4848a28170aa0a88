package gate

import (
	"net/http"

	"github.com/redmonkez12/wardrobe-api/internal/httputil"
	"github.com/redmonkez12/wardrobe-api/internal/logging"
)

// SessionSource resolves the caller's session from a request
type SessionSource interface {
	CurrentSession(r *http.Request) Session
}

// Handler exposes the sequencer over HTTP
type Handler struct {
	sequencer *Sequencer
	sessions  SessionSource
}

func NewHandler(sequencer *Sequencer, sessions SessionSource) *Handler {
	return &Handler{sequencer: sequencer, sessions: sessions}
}

// DecisionResponse is the wire form of a Decision
type DecisionResponse struct {
	Decision string `json:"decision"`
	Path     string `json:"path,omitempty"`
	ReturnTo string `json:"return_to,omitempty"`
}

// BlockedResponse is returned by Require when a request may not proceed
type BlockedResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	Redirect string `json:"redirect,omitempty"`
}

func toResponse(d Decision) DecisionResponse {
	return DecisionResponse{Decision: d.Kind.String(), Path: d.Path, ReturnTo: d.ReturnTo}
}

// Check evaluates the gate for a client-side navigation
// @Summary      Evaluate route gate
// @Description  Decide whether the client may render a path, must redirect, or should keep loading
// @Tags         gate
// @Produce      json
// @Param        path  query string true  "Requested client path"
// @Param        level query string false "session, verified or onboarded (default)"
// @Success      200 {object} DecisionResponse
// @Failure      400 {object} httputil.ErrorResponse "Unknown level"
// @Router       /gate [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	level, err := ParseLevel(r.URL.Query().Get("level"))
	if err != nil {
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidGateLevel, http.StatusBadRequest)
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		path = PathHome
	}

	decision := h.sequencer.Resolve(r.Context(), level, h.sessions.CurrentSession(r), path)
	logger.Debug("gate evaluated", "level", level, "target", path, "decision", decision)

	httputil.RespondJSON(w, toResponse(decision), http.StatusOK)
}

// Require guards API routes at the given level, using the request path as
// the navigation target
func (h *Handler) Require(level Level) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := h.sequencer.Resolve(r.Context(), level, h.sessions.CurrentSession(r), r.URL.Path)

			switch decision.Kind {
			case KindAllow:
				next.ServeHTTP(w, r)
			case KindLoading:
				w.Header().Set("Retry-After", "1")
				httputil.RespondJSON(w, BlockedResponse{
					Error: "session is still resolving, retry shortly",
					Code:  httputil.CodeSessionPending,
				}, http.StatusServiceUnavailable)
			default:
				logging.GetLoggerFromContext(r.Context()).Info("request blocked by gate", "redirect", decision.Path)
				respondBlocked(w, decision)
			}
		})
	}
}

func respondBlocked(w http.ResponseWriter, d Decision) {
	resp := BlockedResponse{Redirect: d.Path}
	status := http.StatusForbidden

	switch d.Path {
	case PathAuth:
		resp.Error, resp.Code = "authentication required", httputil.CodeMissingAuth
		status = http.StatusUnauthorized
	case PathVerifyEmail:
		resp.Error, resp.Code = "email not verified, please check your inbox", httputil.CodeEmailNotVerified
	case PathOnboarding:
		resp.Error, resp.Code = "onboarding must be completed first", httputil.CodeOnboardingRequired
	default:
		resp.Error, resp.Code = "onboarding already completed", httputil.CodeOnboardingCompleted
	}

	httputil.RespondJSON(w, resp, status)
}
