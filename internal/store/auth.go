// ABOUTME: Mock account flow: signup, login, and logout against one stored credential.
// ABOUTME: Passwords are kept as bcrypt hashes; tokens are opaque strings.
package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harperreed/fitness/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Auth failures. The messages are shown to the user as-is.
var (
	ErrMissingCredentials = errors.New("please enter both email and password")
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrNameTooShort       = errors.New("name must be at least 2 characters")
	ErrNoAccount          = errors.New("no account found with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrLoginFailed        = errors.New("login failed, please try again")
	ErrSignupFailed       = errors.New("signup failed, please try again")
)

const (
	minPasswordLen = 6
	minNameLen     = 2
)

// AuthStatus is the session state machine.
type AuthStatus string

const (
	StatusUnauthenticated AuthStatus = "unauthenticated"
	StatusAuthenticating  AuthStatus = "authenticating"
	StatusAuthenticated   AuthStatus = "authenticated"
)

// Account identifies the signed-in user.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthState is a point-in-time view of the session.
type AuthState struct {
	Status  AuthStatus `json:"status"`
	Token   string     `json:"token,omitempty"`
	Account *Account   `json:"account,omitempty"`
}

type credentials struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

func (c *credentials) account() *Account {
	return &Account{ID: c.ID, Email: c.Email}
}

// AuthState returns the current session.
func (s *Store) AuthState() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.auth
	if out.Account != nil {
		acct := *out.Account
		out.Account = &acct
	}
	return out
}

// IsAuthenticated reports whether a session with a token is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth.Status == StatusAuthenticated && s.auth.Token != ""
}

// Login checks email and password against the stored credential. On success
// the session token is persisted and the saved profile is reloaded.
func (s *Store) Login(ctx context.Context, email, password string) error {
	prev := s.beginAuth()
	ok := false
	defer func() {
		if !ok {
			s.restoreAuth(prev)
		}
	}()

	if err := sleepCtx(ctx, s.loginLatency); err != nil {
		return err
	}

	if email == "" || password == "" {
		return ErrMissingCredentials
	}
	if err := validateEmailPassword(email, password); err != nil {
		return err
	}

	s.mu.RLock()
	creds := s.creds
	s.mu.RUnlock()

	if creds == nil {
		return ErrNoAccount
	}
	if creds.Email != email {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		s.log.WithError(err).Error("compare password hash")
		return ErrLoginFailed
	}

	token := s.newToken()

	s.queue.flush()
	profile, found := s.storedProfile(ctx)

	s.mu.Lock()
	s.auth = AuthState{Status: StatusAuthenticated, Token: token, Account: creds.account()}
	if found {
		s.profile = profile
	}
	s.queue.set(AuthTokenKey, []byte(token))
	s.mu.Unlock()

	ok = true
	s.log.WithField("email", email).Info("logged in")
	return nil
}

// Signup replaces the stored credential, starts a session, and writes a
// fresh profile carrying name.
func (s *Store) Signup(ctx context.Context, email, password, name string) error {
	prev := s.beginAuth()
	ok := false
	defer func() {
		if !ok {
			s.restoreAuth(prev)
		}
	}()

	if err := sleepCtx(ctx, s.signupLatency); err != nil {
		return err
	}

	if email == "" || password == "" || name == "" {
		return ErrMissingFields
	}
	if err := validateEmailPassword(email, password); err != nil {
		return err
	}
	if utf8.RuneCountInString(name) < minNameLen {
		return ErrNameTooShort
	}

	s.mu.RLock()
	existing := s.creds
	s.mu.RUnlock()
	if existing != nil && existing.Email == email {
		return ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		s.log.WithError(err).Error("hash password")
		return ErrSignupFailed
	}

	creds := &credentials{
		ID:           strconv.FormatInt(s.now().UnixMilli(), 10),
		Email:        email,
		PasswordHash: string(hash),
	}
	token := s.newToken()
	profile := models.DefaultProfile()
	profile.Name = name

	s.mu.Lock()
	s.creds = creds
	s.profile = profile
	s.auth = AuthState{Status: StatusAuthenticated, Token: token, Account: creds.account()}
	s.queue.set(AuthTokenKey, []byte(token))
	s.persist(CredentialsKey, creds)
	s.persist(ProfileKey, profile)
	s.mu.Unlock()

	ok = true
	s.log.WithField("email", email).Info("signed up")
	return nil
}

// Logout ends the session, forgets the stored credential, and resets the
// in-memory profile. Workouts and logs are kept.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auth = AuthState{Status: StatusUnauthenticated}
	s.creds = nil
	s.profile = models.DefaultProfile()
	s.queue.delete(AuthTokenKey)
	s.queue.delete(CredentialsKey)
	s.log.Info("logged out")
}

func (s *Store) beginAuth() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.auth
	s.auth.Status = StatusAuthenticating
	return prev
}

// restoreAuth rolls back a failed attempt. A Logout that landed while the
// attempt was pending wins, so its state is left alone.
func (s *Store) restoreAuth(prev AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.auth.Status != StatusAuthenticating {
		return
	}
	s.auth = prev
}

func (s *Store) storedProfile(ctx context.Context) (models.Profile, bool) {
	p, ok := loadJSON[models.Profile](ctx, s, ProfileKey)
	if !ok {
		return p, false
	}
	if p.Goals == nil {
		p.Goals = []models.FitnessGoal{}
	}
	return p, true
}

func validateEmailPassword(email, password string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
