package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophcatalog/internal/client/client"
	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/dmitrijs2005/gophcatalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/go-playground/validator/v10"
)

type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// SessionStore owns the session of the current user and keeps its durable
// copy under common.SessionKeys.
//
// Contract:
//   - Login: authenticate and persist; any failure leaves the store anonymous.
//   - Logout: clear memory and storage; idempotent.
//   - RestoreSession: rebuild the session from storage without network calls.
type SessionStore struct {
	client   client.Client
	store    metadata.Store
	validate *validator.Validate
	logger   logging.Logger

	mu      sync.RWMutex
	session models.Session

	subs observers[models.Session]
}

// NewSessionStore constructs an anonymous SessionStore.
func NewSessionStore(c client.Client, store metadata.Store, logger logging.Logger) *SessionStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &SessionStore{
		client:   c,
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// Login trims the credentials and authenticates with a fixed session
// lifetime of common.DefaultSessionMinutes. Empty credentials fail with
// common.ErrCredentialsRequired before any network call and leave the
// current session as is.
func (s *SessionStore) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	creds := credentials{Username: strings.TrimSpace(username), Password: strings.TrimSpace(password)}
	if err := s.validate.Struct(creds); err != nil {
		return nil, common.ErrCredentialsRequired
	}

	resp, err := s.client.Login(ctx, creds.Username, creds.Password, common.DefaultSessionMinutes)
	if err != nil {
		s.clearSession(ctx)
		return nil, err
	}

	session := models.Session{
		Token:        resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.Profile(),
	}
	if err := s.persist(ctx, session); err != nil {
		s.clearSession(ctx)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.set(session)
	s.logger.Info(ctx, "logged in", "username", creds.Username)
	return resp, nil
}

// Logout drops the session from memory and storage.
func (s *SessionStore) Logout(ctx context.Context) error {
	return s.clearSession(ctx)
}

// RestoreSession loads a previously persisted session. A missing token
// leaves the store anonymous. An unreadable profile is dropped silently.
func (s *SessionStore) RestoreSession(ctx context.Context) error {
	token, ok, err := s.store.Get(ctx, common.StorageKeyAccessToken)
	if err != nil {
		s.set(models.Session{})
		return fmt.Errorf("failed to read session: %w", err)
	}
	if !ok || token == "" {
		return s.clearSession(ctx)
	}

	session := models.Session{Token: token}

	refresh, _, err := s.store.Get(ctx, common.StorageKeyRefreshToken)
	if err != nil {
		s.set(models.Session{})
		return fmt.Errorf("failed to read session: %w", err)
	}
	session.RefreshToken = refresh

	raw, ok, err := s.store.Get(ctx, common.StorageKeyUser)
	if err != nil {
		s.set(models.Session{})
		return fmt.Errorf("failed to read session: %w", err)
	}
	if ok {
		var user models.UserProfile
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			s.logger.Debug(ctx, "stored profile dropped", "error", err)
		} else {
			session.User = &user
		}
	}

	s.set(session)
	return nil
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *SessionStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.RefreshToken
}

// User returns a copy of the current profile, or nil.
func (s *SessionStore) User() *models.UserProfile {
	return s.Snapshot().User
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated()
}

// Snapshot returns a copy of the session that shares no memory with the store.
func (s *SessionStore) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// Subscribe registers fn to receive the session after every change.
func (s *SessionStore) Subscribe(fn func(models.Session)) (cancel func()) {
	return s.subs.subscribe(fn)
}

// persist writes the present fields of session in one transaction. Absent
// fields are removed so a previous login cannot leak into the new one.
func (s *SessionStore) persist(ctx context.Context, session models.Session) error {
	var user string
	if session.User != nil {
		b, err := json.Marshal(session.User)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		user = string(b)
	}

	values := map[string]string{
		common.StorageKeyAccessToken:  session.Token,
		common.StorageKeyRefreshToken: session.RefreshToken,
		common.StorageKeyUser:         user,
	}

	return s.store.InTx(ctx, func(ctx context.Context, repo metadata.Repository) error {
		for _, key := range common.SessionKeys {
			var err error
			if v := values[key]; v != "" {
				err = repo.Set(ctx, key, v)
			} else {
				err = repo.Delete(ctx, key)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// clearSession resets memory first, so the store is anonymous even when the
// storage cleanup fails.
func (s *SessionStore) clearSession(ctx context.Context) error {
	s.set(models.Session{})

	err := s.store.InTx(ctx, func(ctx context.Context, repo metadata.Repository) error {
		var errs []error
		for _, key := range common.SessionKeys {
			errs = append(errs, repo.Delete(ctx, key))
		}
		return errors.Join(errs...)
	})
	if err != nil {
		s.logger.Warn(ctx, "failed to clear stored session", "error", err)
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) set(session models.Session) {
	s.mu.Lock()
	s.session = session
	snapshot := s.session.Clone()
	s.mu.Unlock()

	s.subs.notify(snapshot)
}
