package vision

import (
	"net/http"

	"github.com/redmonkez12/wardrobe-api/internal/httputil"
	"github.com/redmonkez12/wardrobe-api/internal/logging"
)

type Handler struct {
	model Model
}

func NewHandler(model Model) *Handler {
	return &Handler{model: model}
}

type ImageRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

type AnalyzeResponse struct {
	Analysis *Analysis `json:"analysis"`
}

type ProcessResponse struct {
	ProcessedImage string `json:"processedImage"`
}

// Every failure is reported as a 500 with a bare error message
func respondFailure(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logging.GetLoggerFromContext(r.Context()).Error(msg, "error", err.Error())
	httputil.RespondError(w, err.Error(), http.StatusInternalServerError)
}

func decodeImageRequest(w http.ResponseWriter, r *http.Request) (Image, error) {
	var req ImageRequest
	if err := httputil.DecodeJSON(w, r, &req, httputil.MaxImageBytes); err != nil {
		return Image{}, err
	}
	return DecodeImage(req.ImageBase64)
}

// AnalyzeClothing describes the garment in a photo
// @Summary      Analyze clothing photo
// @Description  Returns category, color, brand, name, pattern, style, seasons, occasions and styling tips
// @Tags         vision
// @Accept       json
// @Produce      json
// @Param        request body ImageRequest true "Base64 image or data URL"
// @Success      200 {object} AnalyzeResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /analyze-clothing [post]
func (h *Handler) AnalyzeClothing(w http.ResponseWriter, r *http.Request) {
	img, err := decodeImageRequest(w, r)
	if err != nil {
		respondFailure(w, r, "invalid analyze request", err)
		return
	}

	analysis, err := h.model.AnalyzeClothing(r.Context(), img)
	if err != nil {
		respondFailure(w, r, "clothing analysis failed", err)
		return
	}

	httputil.RespondJSON(w, AnalyzeResponse{Analysis: analysis}, http.StatusOK)
}

// ProcessClothingImage returns a cleaned-up product photo as a data URL
// @Summary      Process clothing photo
// @Description  Removes the background and returns the result as a data URL
// @Tags         vision
// @Accept       json
// @Produce      json
// @Param        request body ImageRequest true "Base64 image or data URL"
// @Success      200 {object} ProcessResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /process-clothing-image [post]
func (h *Handler) ProcessClothingImage(w http.ResponseWriter, r *http.Request) {
	img, err := decodeImageRequest(w, r)
	if err != nil {
		respondFailure(w, r, "invalid process request", err)
		return
	}

	processed, err := h.model.ProcessClothingImage(r.Context(), img)
	if err != nil {
		respondFailure(w, r, "clothing image processing failed", err)
		return
	}

	httputil.RespondJSON(w, ProcessResponse{ProcessedImage: processed.DataURL()}, http.StatusOK)
}

// Preflight answers OPTIONS with an empty 204. The AI routes are open to any
// origin, so the wildcard is set even when no Origin header was sent.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusNoContent)
}
