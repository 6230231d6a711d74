package api

import (
	"net/http"
	"strings"

	"github.com/aggiefind/aggiefind/internal/imaging"
	"github.com/aggiefind/aggiefind/internal/model"
	"github.com/aggiefind/aggiefind/internal/store"
)

// ItemsHandler handles the public item endpoints.
type ItemsHandler struct {
	Store *store.Store
}

type createItemRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	DateFound    string   `json:"dateFound"`
	FoundBy      string   `json:"foundBy"`
	Status       string   `json:"status"`
	PostType     string   `json:"postType"`
	DropLocation string   `json:"dropLocation"`
	ImageURL     string   `json:"imageUrl"`
	Visibility   string   `json:"visibility"`
	Users        []string `json:"users"`
	ShareContact bool     `json:"shareContact"`
	ContactName  string   `json:"contactName"`
	ContactPhone string   `json:"contactPhone"`
}

// Create handles POST /api/items. Authentication is optional: a valid token
// makes the caller the item's creator, otherwise the report is anonymous.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		jsonError(w, http.StatusBadRequest, "missing name")
		return
	}

	postType := req.PostType
	if postType != model.PostTypeLost && postType != model.PostTypeFound {
		postType = model.PostTypeLost
	}
	status := req.Status
	if status == "" {
		status = postType
	}
	visibility := req.Visibility
	if visibility != model.VisibilityPrivate {
		visibility = model.VisibilityPublic
	}
	users := req.Users
	if users == nil {
		users = []string{}
	}

	item := model.Item{
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Location:     strings.TrimSpace(req.Location),
		DateFound:    strings.TrimSpace(req.DateFound),
		FoundBy:      strings.TrimSpace(req.FoundBy),
		PostType:     postType,
		Status:       status,
		Visibility:   visibility,
		Users:        users,
		DropLocation: req.DropLocation,
		ImageURL:     req.ImageURL,
		ShareContact: req.ShareContact,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	}

	// Resolve the creator from the token, if any. The store is the source of
	// truth for display name and email, not the token.
	if claims := GetClaims(r.Context()); claims != nil {
		user, err := h.Store.GetUser(claims.UserID)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if user != nil {
			item.CreatorID = &user.ID
			item.CreatorName = user.Name
			if item.CreatorName == "" {
				item.CreatorName = user.Username
			}
			item.CreatorEmail = user.Email
		}
	}

	created, err := h.Store.CreateItem(item)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// List handles GET /api/items. The optional q parameter substring-filters
// across name, description, location, and foundBy.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := h.Store.ListItems(query)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.GetItem(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// UploadPhoto handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, err := h.Store.GetItem(id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.SavePhoto(id, data); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	item.ImageURL = "/api/items/" + id + "/image"
	if err := h.Store.ReplaceItem(*item); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// GetPhoto handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, err := h.Store.ReadPhoto(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
