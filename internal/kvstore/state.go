package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"formserver/internal/models"
	"formserver/internal/validation"
)

// Keys the form app persists under. The records carry no schema version.
const (
	KeyLatestUser  = "latestUser"
	KeyResetTokens = "resetTokens"
	KeySession     = "session"
	KeyCurrentUser = "currentUser"
	KeyLoggedIn    = "loggedIn"
)

// State wraps a Store with typed accessors, one per key.
type State struct {
	store Store
}

func NewState(store Store) *State {
	return &State{store: store}
}

// SaveForm stores the last-submitted form snapshot.
func (s *State) SaveForm(ctx context.Context, form *validation.Form) error {
	b, err := json.Marshal(form)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, KeyLatestUser, b)
}

// LoadForm returns the saved snapshot, or nil when none was saved.
func (s *State) LoadForm(ctx context.Context) (*validation.Form, error) {
	b, err := s.store.Get(ctx, KeyLatestUser)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var form validation.Form
	if err := json.Unmarshal(b, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (s *State) SaveSession(ctx context.Context, token string) error {
	return s.store.Set(ctx, KeySession, []byte(token))
}

func (s *State) Session(ctx context.Context) (string, error) {
	b, err := s.store.Get(ctx, KeySession)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(b), nil
}

func (s *State) SaveCurrentUser(ctx context.Context, u models.PublicUser) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, KeyCurrentUser, b)
}

func (s *State) CurrentUser(ctx context.Context) (*models.PublicUser, error) {
	b, err := s.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var u models.PublicUser
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *State) SetLoggedIn(ctx context.Context, v bool) error {
	return s.store.Set(ctx, KeyLoggedIn, []byte(strconv.FormatBool(v)))
}

func (s *State) LoggedIn(ctx context.Context) (bool, error) {
	b, err := s.store.Get(ctx, KeyLoggedIn)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	v, _ := strconv.ParseBool(string(b))
	return v, nil
}

// ClearSession removes everything a logout should drop.
func (s *State) ClearSession(ctx context.Context) error {
	if err := s.store.Delete(ctx, KeySession); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, KeyCurrentUser); err != nil {
		return err
	}
	return s.store.Delete(ctx, KeyLoggedIn)
}
