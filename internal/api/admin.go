package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aggiefind/aggiefind/internal/store"
)

// AdminHandler handles the moderation endpoints. All routes are gated behind
// RequireAdmin.
type AdminHandler struct {
	Store *store.Store
}

type adminUpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	DateFound   *string `json:"dateFound"`
	Status      *string `json:"status"`
	Verified    *bool   `json:"verified"`
}

// List handles GET /api/admin/items.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListItems("")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Update handles PUT /api/admin/items/{id}: moderation edits, bypassing the
// creator-only field permissions. Marking an item verified records which
// admin verified it; unmarking clears the attribution.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.GetItem(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var req adminUpdateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.DateFound != nil {
		item.DateFound = *req.DateFound
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Verified != nil {
		item.Verified = *req.Verified
		if item.Verified {
			claims := GetClaims(r.Context())
			username := claims.Username
			item.VerifiedBy = &username
		} else {
			item.VerifiedBy = nil
		}
	}

	if err := h.Store.ReplaceItem(*item); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/admin/items/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := h.Store.DeleteItem(id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	if claims := GetClaims(r.Context()); claims != nil {
		slog.Info("item removed by admin", "item", id, "admin", claims.Username)
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
