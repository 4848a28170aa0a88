package onboarding

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/wardrobe-api/internal/auth"
	"github.com/redmonkez12/wardrobe-api/internal/httputil"
	"github.com/redmonkez12/wardrobe-api/internal/logging"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type StatusResponse struct {
	Completed bool     `json:"completed"`
	Profile   *Profile `json:"profile"`
}

// Status reports whether the signed-in user finished onboarding
// @Summary      Onboarding status
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} StatusResponse
// @Failure      401 {object} gate.BlockedResponse
// @Failure      403 {object} gate.BlockedResponse "Email not verified"
// @Router       /onboarding/status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	p, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		logger.Error("failed to load onboarding status", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to load onboarding status", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, StatusResponse{Completed: p != nil && p.Completed, Profile: p}, http.StatusOK)
}

// Complete saves the onboarding profile and marks onboarding done
// @Summary      Complete onboarding
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProfileInput true "Profile"
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorResponse "Invalid profile"
// @Failure      401 {object} gate.BlockedResponse
// @Failure      403 {object} gate.BlockedResponse "Email not verified"
// @Router       /onboarding/complete [post]
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req ProfileInput
	if err := httputil.DecodeJSON(w, r, &req, httputil.MaxBodyBytes); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	p, err := h.service.Complete(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDisplayNameRequired), errors.Is(err, ErrDisplayNameTooLong):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeDisplayNameRequired, http.StatusBadRequest)
		default:
			logger.Error("failed to complete onboarding", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to complete onboarding", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}
