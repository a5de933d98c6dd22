package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sagarc03/galleria"
)

// Multipart form field names for picture uploads.
const (
	formFieldImage = "image"
	formFieldName  = "name"
	formFieldDesc  = "desc"
)

const (
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
)

func (h *Handler) handleUploadPicture(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	galleryID, err := parseID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.pictures.MaxUploadSize()+multipartOverhead)
	err = r.ParseMultipartForm(multipartMemory)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	case errors.As(err, &tooLarge):
		HandleError(w, fmt.Errorf("upload picture: %w", galleria.ErrPayloadTooLarge))
		return
	case errors.Is(err, http.ErrNotMultipart):
		// no parts means no file; the service reports it
	default:
		HandleError(w, galleria.InvalidInput("invalid multipart form"))
		return
	}

	var file *galleria.ImageFile
	f, header, err := r.FormFile(formFieldImage)
	switch {
	case err == nil:
		defer func() { _ = f.Close() }()
		file = &galleria.ImageFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      f,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		HandleError(w, galleria.InvalidInput("invalid image part"))
		return
	}

	in := galleria.PictureInput{
		Name:        r.FormValue(formFieldName),
		Description: r.FormValue(formFieldDesc),
	}

	picture, err := h.pictures.Upload(r.Context(), user, galleryID, in, file)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, picture)
}

func (h *Handler) handleListPictures(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	galleryID, err := parseID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	result, err := h.pictures.List(r.Context(), user, galleryID, parsePage(r))
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetPicture(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	galleryID, err := parseID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	picID, err := parseID(r, "picID")
	if err != nil {
		HandleError(w, err)
		return
	}

	picture, err := h.pictures.Get(r.Context(), user, galleryID, picID)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, picture)
}

func (h *Handler) handleDeletePicture(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	galleryID, err := parseID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	picID, err := parseID(r, "picID")
	if err != nil {
		HandleError(w, err)
		return
	}

	if err := h.pictures.Delete(r.Context(), user, galleryID, picID); err != nil {
		HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
