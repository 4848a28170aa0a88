package closet

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

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

type ListResponse struct {
	Items []Item `json:"items"`
}

// List returns the signed-in user's closet
// @Summary      List closet items
// @Tags         closet
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Filter by category"
// @Success      200 {object} ListResponse
// @Failure      400 {object} httputil.ErrorResponse "Unknown category"
// @Failure      403 {object} gate.BlockedResponse "Onboarding not completed"
// @Router       /closet/items [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	items, err := h.service.List(r.Context(), userID, r.URL.Query().Get("category"))
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidCategory, http.StatusBadRequest)
			return
		}
		logger.Error("failed to list closet items", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list closet items", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, ListResponse{Items: items}, http.StatusOK)
}

// Create saves a new item to the closet
// @Summary      Add closet item
// @Tags         closet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ItemInput true "Item"
// @Success      201 {object} Item
// @Failure      400 {object} httputil.ErrorResponse "Invalid item"
// @Failure      403 {object} gate.BlockedResponse "Onboarding not completed"
// @Router       /closet/items [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	// image_url may hold the data URL returned by /process-clothing-image
	var req ItemInput
	if err := httputil.DecodeJSON(w, r, &req, httputil.MaxImageBytes); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	item, err := h.service.Add(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCategory):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidCategory, http.StatusBadRequest)
		case errors.Is(err, ErrNameRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		default:
			logger.Error("failed to create closet item", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to create closet item", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("closet item added", "item_id", item.ID, "category", item.Category)
	httputil.RespondJSON(w, item, http.StatusCreated)
}

// Delete removes an item from the closet
// @Summary      Delete closet item
// @Tags         closet
// @Security     BearerAuth
// @Param        id path string true "Item ID"
// @Success      204
// @Failure      400 {object} httputil.ErrorResponse "Invalid item ID"
// @Failure      404 {object} httputil.ErrorResponse "Item not found"
// @Router       /closet/items/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid item ID", httputil.CodeInvalidItemID, http.StatusBadRequest)
		return
	}

	if err := h.service.Remove(r.Context(), userID, itemID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeItemNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to delete closet item", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to delete closet item", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
