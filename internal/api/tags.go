package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Sirius241/Pharmacy-Managment-System/domain"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/tags"
)

const maxTagUploadBytes = 5 << 20

func (h *Handler) encodeTag(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "drugID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid drug id")
		return
	}

	var drug domain.Drug
	if err := h.db.GetContext(r.Context(), &drug,
		`SELECT id, name, COALESCE(description, '') AS description FROM drugs WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, h.localize(r, "Drug not found."))
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load drug")
		return
	}

	png, err := tags.Encode(drug.ID, drug.Name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to encode tag")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) decodeTag(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxTagUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "expected multipart form with an image file")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	payload, err := tags.Decode(file)
	if err != nil {
		if errors.Is(err, tags.ErrNoTagDetected) {
			respondJSON(w, http.StatusOK, map[string]any{
				"detected": false,
				"message":  h.localize(r, "No QR tag detected."),
			})
			return
		}
		respondError(w, http.StatusBadRequest, "unable to read image")
		return
	}

	description, err := h.tags.Describe(r.Context(), payload)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to look up medicine details")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"detected":    true,
		"payload":     payload,
		"description": h.localize(r, description),
	})
}
