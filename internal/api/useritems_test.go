package api

import (
	"net/http"
	"testing"

	"github.com/aggiefind/aggiefind/internal/model"
)

func TestListOwnItems(t *testing.T) {
	server, _ := setupTestServer(t)
	aliceToken := registerAndLogin(t, server, "alice", "", "")
	bobToken := registerAndLogin(t, server, "bob", "", "")

	createItem(t, server.URL, aliceToken, map[string]any{"name": "Alice's keys"})
	createItem(t, server.URL, bobToken, map[string]any{"name": "Bob's jacket"})
	createItem(t, server.URL, "", map[string]any{"name": "Anonymous glove"})

	var mine []model.Item
	status := doJSON(t, "GET", server.URL+"/api/user/items", aliceToken, nil, &mine)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(mine) != 1 || mine[0].Name != "Alice's keys" {
		t.Errorf("expected only alice's item, got %+v", mine)
	}
}

func TestCreatorEditsFields(t *testing.T) {
	server, _ := setupTestServer(t)
	token := registerAndLogin(t, server, "alice", "", "")

	item := createItem(t, server.URL, token, map[string]any{
		"name":     "Backpack",
		"location": "Zuhl Library",
	})

	var updated model.Item
	status := doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, token, map[string]any{
		"location":     "Corbett Center",
		"dropLocation": "Front desk",
		"shareContact": true,
		"contactName":  "Alice",
		"contactPhone": "575-555-0100",
	}, &updated)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if updated.Location != "Corbett Center" || updated.DropLocation != "Front desk" {
		t.Errorf("expected location fields updated, got %+v", updated)
	}
	if !updated.ShareContact || updated.ContactName != "Alice" {
		t.Errorf("expected contact fields updated, got %+v", updated)
	}

	// Re-fetch: the change persisted.
	var fetched model.Item
	doJSON(t, "GET", server.URL+"/api/items/"+item.ID, "", nil, &fetched)
	if fetched.Location != "Corbett Center" {
		t.Errorf("expected persisted location, got %q", fetched.Location)
	}
}

func TestNonCreatorEditsSilentlyIgnored(t *testing.T) {
	server, _ := setupTestServer(t)
	aliceToken := registerAndLogin(t, server, "alice", "", "")
	bobToken := registerAndLogin(t, server, "bob", "", "")

	item := createItem(t, server.URL, aliceToken, map[string]any{
		"name":     "Backpack",
		"location": "Zuhl Library",
	})

	// Bob's edit of a creator-only field returns success but changes nothing.
	var resp model.Item
	status := doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, bobToken, map[string]any{
		"location": "Bob's house",
	}, &resp)
	if status != http.StatusOK {
		t.Fatalf("expected 200 (silently ignored), got %d", status)
	}
	if resp.Location != "Zuhl Library" {
		t.Errorf("expected location unchanged, got %q", resp.Location)
	}

	// dateFound, however, is writable by anyone.
	status = doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, bobToken, map[string]any{
		"dateFound": "2025-09-01",
	}, &resp)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if resp.DateFound != "2025-09-01" {
		t.Errorf("expected dateFound writable by non-creator, got %q", resp.DateFound)
	}
}

func TestCreatorDirectStatusChange(t *testing.T) {
	server, _ := setupTestServer(t)
	token := registerAndLogin(t, server, "alice", "", "")

	item := createItem(t, server.URL, token, map[string]any{"name": "Scarf", "postType": "lost"})

	var updated model.Item
	status := doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, token, map[string]any{
		"status": "found",
	}, &updated)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if updated.Status != model.StatusFound {
		t.Errorf("creator status change should apply directly, got %q", updated.Status)
	}
	if updated.PendingClaim != nil {
		t.Error("creator status change must not create a claim")
	}
}

func TestNonCreatorStatusChangeBecomesClaim(t *testing.T) {
	server, _ := setupTestServer(t)
	aliceToken := registerAndLogin(t, server, "alice", "", "")
	bobToken := registerAndLogin(t, server, "bob", "Bob Finder", "bob@nmsu.edu")

	item := createItem(t, server.URL, aliceToken, map[string]any{"name": "Scarf", "postType": "lost"})

	var updated model.Item
	status := doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, bobToken, map[string]any{
		"status": "found",
	}, &updated)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if updated.Status != model.StatusLost {
		t.Errorf("status must not change for a non-creator, got %q", updated.Status)
	}
	if updated.PendingClaim == nil {
		t.Fatal("expected a pending claim")
	}
	if updated.PendingClaim.DesiredStatus != "found" {
		t.Errorf("expected desiredStatus 'found', got %q", updated.PendingClaim.DesiredStatus)
	}
	if updated.PendingClaim.ByName != "Bob Finder" {
		t.Errorf("expected claimant name from store, got %q", updated.PendingClaim.ByName)
	}
	if updated.PendingClaim.ByEmail != "bob@nmsu.edu" {
		t.Errorf("expected claimant email, got %q", updated.PendingClaim.ByEmail)
	}
	if updated.PendingClaim.At == 0 {
		t.Error("expected claim timestamp")
	}

	// A second claim overwrites the first.
	carolToken := registerAndLogin(t, server, "carol", "", "")
	doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, carolToken, map[string]any{
		"status": "found",
	}, &updated)
	if updated.PendingClaim == nil || updated.PendingClaim.ByName != "carol" {
		t.Errorf("expected carol's claim to overwrite bob's, got %+v", updated.PendingClaim)
	}
}

func TestConfirmClaimDeletesItem(t *testing.T) {
	server, _ := setupTestServer(t)
	aliceToken := registerAndLogin(t, server, "alice", "", "")
	bobToken := registerAndLogin(t, server, "bob", "", "")

	item := createItem(t, server.URL, aliceToken, map[string]any{"name": "Scarf", "postType": "lost"})

	// Confirm before any claim exists: must fail and must not delete.
	status := doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, aliceToken, map[string]any{
		"action": "confirm",
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("expected 409 confirming without a claim, got %d", status)
	}
	if s := doJSON(t, "GET", server.URL+"/api/items/"+item.ID, "", nil, nil); s != http.StatusOK {
		t.Fatalf("item should survive a premature confirm, got %d", s)
	}

	// Bob claims it.
	doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, bobToken, map[string]any{
		"status": "found",
	}, nil)

	// A non-creator cannot confirm.
	status = doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, bobToken, map[string]any{
		"action": "confirm",
	}, nil)
	if status != http.StatusForbidden {
		t.Errorf("expected 403 for non-creator confirm, got %d", status)
	}

	// The creator confirms; the item is deleted.
	var ack struct {
		Deleted bool   `json:"deleted"`
		ID      string `json:"id"`
	}
	status = doJSON(t, "PUT", server.URL+"/api/user/items/"+item.ID, aliceToken, map[string]any{
		"action": "confirm",
	}, &ack)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for confirm, got %d", status)
	}
	if !ack.Deleted || ack.ID != item.ID {
		t.Errorf("expected deletion ack with item id, got %+v", ack)
	}

	if s := doJSON(t, "GET", server.URL+"/api/items/"+item.ID, "", nil, nil); s != http.StatusNotFound {
		t.Errorf("expected 404 after confirm, got %d", s)
	}
	var listed []model.Item
	doJSON(t, "GET", server.URL+"/api/items", "", nil, &listed)
	if len(listed) != 0 {
		t.Errorf("expected item absent from listings after confirm, got %d", len(listed))
	}
}

func TestUpdateUnknownItem(t *testing.T) {
	server, _ := setupTestServer(t)
	token := registerAndLogin(t, server, "alice", "", "")

	status := doJSON(t, "PUT", server.URL+"/api/user/items/no-such-id", token, map[string]any{
		"name": "anything",
	}, nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestDeleteItem(t *testing.T) {
	server, _ := setupTestServer(t)
	aliceToken := registerAndLogin(t, server, "alice", "", "")
	bobToken := registerAndLogin(t, server, "bob", "", "")

	item := createItem(t, server.URL, aliceToken, map[string]any{"name": "Doomed"})

	// Unauthenticated delete is rejected.
	status := doJSON(t, "DELETE", server.URL+"/api/user/items/"+item.ID, "", nil, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", status)
	}

	// Any authenticated caller may delete; ownership is not checked.
	var ack struct {
		Success bool `json:"success"`
	}
	status = doJSON(t, "DELETE", server.URL+"/api/user/items/"+item.ID, bobToken, nil, &ack)
	if status != http.StatusOK || !ack.Success {
		t.Fatalf("expected 200 {success:true}, got %d %+v", status, ack)
	}

	var listed []model.Item
	doJSON(t, "GET", server.URL+"/api/items", "", nil, &listed)
	if len(listed) != 0 {
		t.Errorf("expected no items after delete, got %d", len(listed))
	}

	status = doJSON(t, "DELETE", server.URL+"/api/user/items/"+item.ID, bobToken, nil, nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", status)
	}
}
