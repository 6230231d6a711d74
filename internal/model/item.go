package model

import "strings"

// Item represents a lost or found report.
type Item struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	DropLocation string   `json:"dropLocation,omitempty"`
	ShareContact bool     `json:"shareContact"`
	ContactName  string   `json:"contactName,omitempty"`
	ContactPhone string   `json:"contactPhone,omitempty"`
	DateFound    string   `json:"dateFound"`
	FoundBy      string   `json:"foundBy"`
	PostType     string   `json:"postType"`
	Status       string   `json:"status"`
	Visibility   string   `json:"visibility"`
	Users        []string `json:"users"`
	ImageURL     string   `json:"imageUrl,omitempty"`

	// Creator fields are null/empty for anonymous posts.
	CreatorID    *string `json:"creatorId"`
	CreatorName  string  `json:"creatorName,omitempty"`
	CreatorEmail string  `json:"creatorEmail,omitempty"`

	// Moderation flags, settable by admins only.
	Verified   bool    `json:"verified"`
	VerifiedBy *string `json:"verifiedBy"`

	PendingClaim *Claim `json:"pendingClaim,omitempty"`

	// Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// Claim is a non-creator's unresolved request to change an item's status.
// An item holds at most one; a new claim overwrites the previous one.
type Claim struct {
	ByID          string `json:"byId"`
	ByName        string `json:"byName"`
	ByEmail       string `json:"byEmail,omitempty"`
	DesiredStatus string `json:"desiredStatus"`
	At            int64  `json:"at"`
}

// Post types, fixed at creation.
const (
	PostTypeLost  = "lost"
	PostTypeFound = "found"
)

// Item statuses. StatusClaimed is declared in the API contract but no code
// path assigns it; claim confirmation deletes the item instead.
const (
	StatusLost    = "lost"
	StatusFound   = "found"
	StatusClaimed = "claimed"
)

// Visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// IsCreator reports whether the given user ID is the item's creator.
// Anonymous items have no creator, so this is false for every caller.
func (it *Item) IsCreator(userID string) bool {
	return it.CreatorID != nil && *it.CreatorID == userID
}

// Matches reports whether the query occurs, case-insensitively, in any of
// the item's searchable fields. Fields are OR-combined, not ranked.
func (it *Item) Matches(query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{it.Name, it.Description, it.Location, it.FoundBy} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Field permission levels for item updates.
const (
	PermCreator = "creator" // only the item's creator may write
	PermAnyone  = "anyone"  // any caller, authenticated or not checked
)

// FieldPermissions maps each updatable item field to the role required to
// write it. dateFound being writable by anyone is inherited from the
// original backend, which never permission-checked it; it is kept here as a
// visible table row rather than silently corrected. Requests touching fields
// the caller may not write succeed with those fields ignored.
var FieldPermissions = map[string]string{
	"name":         PermCreator,
	"description":  PermCreator,
	"location":     PermCreator,
	"dropLocation": PermCreator,
	"shareContact": PermCreator,
	"contactName":  PermCreator,
	"contactPhone": PermCreator,
	"status":       PermCreator, // non-creator status requests become pending claims
	"dateFound":    PermAnyone,
}

// CanWrite reports whether a caller may write the named field, given whether
// they are the item's creator.
func CanWrite(field string, isCreator bool) bool {
	switch FieldPermissions[field] {
	case PermAnyone:
		return true
	case PermCreator:
		return isCreator
	default:
		return false
	}
}
