package kvstore

import (
	"context"
	"testing"
	"time"

	"formserver/internal/models"
	"formserver/internal/validation"
)

func TestStateFormSnapshot(t *testing.T) {
	ctx := context.Background()
	state := NewState(NewMemoryStore())

	got, err := state.LoadForm(ctx)
	if err != nil {
		t.Fatalf("LoadForm: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil before any save, got %+v", got)
	}

	form := &validation.Form{Name: "Anita", Email: "a@b.com", Country: "India", Phone: "9999999999"}
	if err := state.SaveForm(ctx, form); err != nil {
		t.Fatalf("SaveForm: %v", err)
	}
	got, err = state.LoadForm(ctx)
	if err != nil {
		t.Fatalf("LoadForm: %v", err)
	}
	if got == nil || got.Email != "a@b.com" || got.Country != "India" {
		t.Fatalf("snapshot mismatch: %+v", got)
	}
}

func TestStateSessionAndLoginFlag(t *testing.T) {
	ctx := context.Background()
	state := NewState(NewMemoryStore())

	if tok, _ := state.Session(ctx); tok != "" {
		t.Fatalf("expected empty session, got %q", tok)
	}
	loggedIn, _ := state.LoggedIn(ctx)
	if loggedIn {
		t.Fatal("expected logged-out default")
	}

	_ = state.SaveSession(ctx, "jwt-token")
	_ = state.SaveCurrentUser(ctx, models.PublicUser{Name: "Anita", Email: "a@b.com", Country: "India", CreatedAt: time.Now().UTC()})
	_ = state.SetLoggedIn(ctx, true)

	tok, _ := state.Session(ctx)
	if tok != "jwt-token" {
		t.Fatalf("session = %q", tok)
	}
	u, _ := state.CurrentUser(ctx)
	if u == nil || u.Email != "a@b.com" {
		t.Fatalf("current user = %+v", u)
	}
	loggedIn, _ = state.LoggedIn(ctx)
	if !loggedIn {
		t.Fatal("expected logged in")
	}

	if err := state.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	tok, _ = state.Session(ctx)
	loggedIn, _ = state.LoggedIn(ctx)
	if tok != "" || loggedIn {
		t.Fatalf("expected cleared session, got %q %v", tok, loggedIn)
	}
}
