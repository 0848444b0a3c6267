package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mediavault/mediavault-backend/internal/models"
	"github.com/mediavault/mediavault-backend/internal/services"
)

const maxUploadBytes = 10 << 20 // 10MB

type MediaHandler struct {
	Media *services.MediaService
}

func NewMediaHandler(media *services.MediaService) *MediaHandler {
	return &MediaHandler{Media: media}
}

// Upload handles multipart media uploads.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file provided: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	fileName := r.FormValue("fileName")
	if fileName == "" {
		fileName = fileHeader.Filename
	}
	// Object store keys should not contain spaces
	fileName = strings.ReplaceAll(fileName, " ", "-")

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	isPublic := true
	if v := r.FormValue("isPublic"); v != "" {
		isPublic, _ = strconv.ParseBool(v)
	}

	var tags []string
	if v := r.FormValue("tags"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	media, err := h.Media.Upload(r.Context(), services.UploadMedia{
		FileName:    fileName,
		ContentType: contentType,
		Description: r.FormValue("description"),
		IsPublic:    isPublic,
		Tags:        tags,
		Size:        fileHeader.Size,
	}, data)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, media)
}

// List returns visible media with optional search and pagination.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)
	searchText := r.URL.Query().Get("searchText")

	media, err := h.Media.List(r.Context(), limit, offset, searchText)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, media)
}

func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	media, err := h.Media.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, media)
}

// Update merges the provided fields into the media record.
func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.MediaUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	media, err := h.Media.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, media)
}

// Delete soft-deletes the media record after removing its bytes from the
// storage backend.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Media.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Restore brings a soft-deleted media record back.
func (h *MediaHandler) Restore(w http.ResponseWriter, r *http.Request) {
	media, err := h.Media.Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, media)
}

// GetBySharableID resolves a public sharable link, counting the view.
func (h *MediaHandler) GetBySharableID(w http.ResponseWriter, r *http.Request) {
	media, err := h.Media.GetBySharableID(r.Context(), chi.URLParam(r, "sharableId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, media)
}
