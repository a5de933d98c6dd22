package http

import (
	"net/http"

	"github.com/sagarc03/galleria"
)

func (h *Handler) handleCreateGallery(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	var in galleria.GalleryInput
	if err := decodeJSON(w, r, &in); err != nil {
		HandleError(w, err)
		return
	}

	gallery, err := h.galleries.Create(r.Context(), user, in)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, gallery)
}

func (h *Handler) handleListGalleries(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	result, err := h.galleries.List(r.Context(), user, parsePage(r))
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetGallery(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	gallery, err := h.galleries.Get(r.Context(), user, id)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, gallery)
}

func (h *Handler) handleUpdateGallery(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	var patch galleria.GalleryPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		HandleError(w, err)
		return
	}

	gallery, err := h.galleries.Update(r.Context(), user, id, patch)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, gallery)
}

func (h *Handler) handleDeleteGallery(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		HandleError(w, err)
		return
	}

	if err := h.galleries.Delete(r.Context(), user, id); err != nil {
		HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
