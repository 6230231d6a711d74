package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aggiefind/aggiefind/internal/model"
	"github.com/aggiefind/aggiefind/internal/store"
)

// UserItemsHandler handles the authenticated per-user item endpoints,
// including the claim workflow.
type UserItemsHandler struct {
	Store *store.Store
}

// updateItemRequest uses pointers so absent fields are distinguishable from
// zero values; only present fields are considered for update.
type updateItemRequest struct {
	Action       string  `json:"action"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	DropLocation *string `json:"dropLocation"`
	ShareContact *bool   `json:"shareContact"`
	ContactName  *string `json:"contactName"`
	ContactPhone *string `json:"contactPhone"`
	DateFound    *string `json:"dateFound"`
	Status       *string `json:"status"`
}

// List handles GET /api/user/items, returning only the caller's own reports.
func (h *UserItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	items, err := h.Store.ListItemsByCreator(claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Update handles PUT /api/user/items/{id}.
//
// The request is one of three shapes: partial field edits, a status change,
// or {action:"confirm"}. Field writes go through model.FieldPermissions;
// fields the caller may not write are silently ignored, never rejected. A
// status change from a non-creator does not touch status: it installs a
// pending claim for the creator to confirm. Confirmation deletes the item.
func (h *UserItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	item, err := h.Store.GetItem(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	isCreator := item.IsCreator(claims.UserID)

	if req.Action == "confirm" {
		h.confirmClaim(w, claims.Username, item, isCreator)
		return
	}

	applyField := func(field string, set func()) {
		if model.CanWrite(field, isCreator) {
			set()
		}
	}
	if req.Name != nil {
		applyField("name", func() { item.Name = *req.Name })
	}
	if req.Description != nil {
		applyField("description", func() { item.Description = *req.Description })
	}
	if req.Location != nil {
		applyField("location", func() { item.Location = *req.Location })
	}
	if req.DropLocation != nil {
		applyField("dropLocation", func() { item.DropLocation = *req.DropLocation })
	}
	if req.ShareContact != nil {
		applyField("shareContact", func() { item.ShareContact = *req.ShareContact })
	}
	if req.ContactName != nil {
		applyField("contactName", func() { item.ContactName = *req.ContactName })
	}
	if req.ContactPhone != nil {
		applyField("contactPhone", func() { item.ContactPhone = *req.ContactPhone })
	}
	if req.DateFound != nil {
		applyField("dateFound", func() { item.DateFound = *req.DateFound })
	}

	if req.Status != nil {
		if isCreator {
			// The creator resolves their own report directly.
			item.Status = *req.Status
		} else {
			// A non-creator asserting a status change becomes a pending
			// claim, overwriting any previous one. The response carries the
			// claim so the client can surface the claimant and whatever
			// contact or drop-off info the creator chose to share.
			claim := &model.Claim{
				ByID:          claims.UserID,
				ByName:        claims.Username,
				DesiredStatus: *req.Status,
				At:            time.Now().UnixMilli(),
			}
			if user, err := h.Store.GetUser(claims.UserID); err == nil && user != nil {
				if user.Name != "" {
					claim.ByName = user.Name
				}
				claim.ByEmail = user.Email
			}
			item.PendingClaim = claim
			slog.Info("claim requested", "item", item.ID, "by", claims.Username, "desiredStatus", claim.DesiredStatus)
		}
	}

	if err := h.Store.ReplaceItem(*item); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// confirmClaim resolves a pending claim. Only the creator may confirm, and
// only when a claim exists; confirmation deletes the item outright, so no
// claim history is retained.
func (h *UserItemsHandler) confirmClaim(w http.ResponseWriter, username string, item *model.Item, isCreator bool) {
	if !isCreator {
		jsonError(w, http.StatusForbidden, "only the creator can confirm a claim")
		return
	}
	if item.PendingClaim == nil {
		jsonError(w, http.StatusConflict, "no pending claim to confirm")
		return
	}

	if err := h.Store.DeleteItem(item.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	slog.Info("claim confirmed, item removed", "item", item.ID, "creator", username)
	jsonResponse(w, http.StatusOK, map[string]any{"deleted": true, "id": item.ID})
}

// Delete handles DELETE /api/user/items/{id}. Any authenticated caller may
// delete any item; ownership is not checked, matching the backend revision
// this service replaces.
func (h *UserItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteItem(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
