package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/auth-flow-api/internal/application/media"
	"github.com/auth-flow-api/internal/domain"
	"github.com/auth-flow-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

const maxUploadSize = 10 << 20 // 10 MiB

// FileHandler handles file uploads and downloads backed by object storage.
type FileHandler struct {
	svc media.Service
}

func NewFileHandler(svc media.Service) *FileHandler { return &FileHandler{svc: svc} }

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, false)
}

func (h *FileHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, true)
}

func (h *FileHandler) upload(w http.ResponseWriter, r *http.Request, profileImage bool) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	input := media.UploadInput{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		IsPrivate:   r.FormValue("private") == "true",
		OwnerID:     a.AccountID,
	}

	var f *domain.File
	if profileImage {
		f, err = h.svc.UploadProfileImage(r.Context(), input)
	} else {
		f, err = h.svc.Upload(r.Context(), input)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rc, f, err := h.svc.Download(r.Context(), chi.URLParam(r, "id"), a.AccountID, isAdmin(a))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", f.Type)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

func (h *FileHandler) Link(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	url, err := h.svc.Link(r.Context(), chi.URLParam(r, "id"), a.AccountID, isAdmin(a))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), a.AccountID, isAdmin(a)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "file deleted"})
}

func isAdmin(a *domain.Account) bool {
	return a.Role == domain.RoleAdmin || a.Role == domain.RoleSuperAdmin
}
