// ABOUTME: Tests for the mock account flow and session state machine.
// ABOUTME: Covers validation messages, credential hashing, and logout semantics.
package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/harperreed/fitness/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUser struct {
	email    string
	password string
	name     string
}

func newFakeUser() fakeUser {
	return fakeUser{
		email:    gofakeit.Email(),
		password: gofakeit.Password(true, true, true, false, false, 12),
		name:     gofakeit.FirstName() + " " + gofakeit.LastName(),
	}
}

func TestSignup(t *testing.T) {
	backend := newMemKV()
	s := loadedStore(t, backend)
	u := newFakeUser()

	require.NoError(t, s.Signup(context.Background(), u.email, u.password, u.name))

	assert.True(t, s.IsAuthenticated())
	state := s.AuthState()
	assert.Equal(t, StatusAuthenticated, state.Status)
	assert.Equal(t, "token_test", state.Token)
	require.NotNil(t, state.Account)
	assert.Equal(t, u.email, state.Account.Email)

	p := s.Profile()
	assert.Equal(t, u.name, p.Name)
	assert.False(t, p.Onboarded)

	s.Flush()
	token, ok := backend.raw(AuthTokenKey)
	require.True(t, ok)
	assert.Equal(t, "token_test", token)

	raw, ok := backend.raw(CredentialsKey)
	require.True(t, ok)
	assert.NotContains(t, raw, u.password)
	var creds credentials
	require.NoError(t, json.Unmarshal([]byte(raw), &creds))
	assert.Equal(t, u.email, creds.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(u.password)))

	raw, ok = backend.raw(ProfileKey)
	require.True(t, ok)
	var stored models.Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, u.name, stored.Name)
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		userName string
		want     error
	}{
		{"missing email", "", "secret1", "Alex", ErrMissingFields},
		{"missing password", "a@b.co", "", "Alex", ErrMissingFields},
		{"missing name", "a@b.co", "secret1", "", ErrMissingFields},
		{"no at sign", "alex.example.com", "secret1", "Alex", ErrInvalidEmail},
		{"short password", "a@b.co", "12345", "Alex", ErrPasswordTooShort},
		{"short name", "a@b.co", "secret1", "A", ErrNameTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedStore(t, newMemKV())
			err := s.Signup(context.Background(), tt.email, tt.password, tt.userName)
			require.ErrorIs(t, err, tt.want)
			assert.False(t, s.IsAuthenticated())
			assert.Equal(t, StatusUnauthenticated, s.AuthState().Status)
		})
	}
}

func TestSignupCountsRunes(t *testing.T) {
	s := loadedStore(t, newMemKV())
	// Two runes, four bytes.
	require.NoError(t, s.Signup(context.Background(), "zoe@example.com", "pässwö", "Zö"))
}

func TestSignupExistingEmail(t *testing.T) {
	s := loadedStore(t, newMemKV())
	u := newFakeUser()
	require.NoError(t, s.Signup(context.Background(), u.email, u.password, u.name))

	err := s.Signup(context.Background(), u.email, "another-pass", "Other")
	require.ErrorIs(t, err, ErrAccountExists)
	assert.Equal(t, "an account with this email already exists", err.Error())

	// A session that was active before the failed attempt is kept.
	assert.True(t, s.IsAuthenticated())
}

func TestSignupDifferentEmailReplacesAccount(t *testing.T) {
	s := loadedStore(t, newMemKV())
	first, second := newFakeUser(), newFakeUser()
	require.NoError(t, s.Signup(context.Background(), first.email, first.password, first.name))
	require.NoError(t, s.Signup(context.Background(), second.email, second.password, second.name))

	s.Logout()
	require.ErrorIs(t, s.Login(context.Background(), first.email, first.password), ErrNoAccount)
}

func TestLogin(t *testing.T) {
	backend := newMemKV()
	u := newFakeUser()

	signup := loadedStore(t, backend)
	require.NoError(t, signup.Signup(context.Background(), u.email, u.password, u.name))
	signup.Flush()

	// A fresh process: the stored profile has since gained a weight.
	backend.put(ProfileKey, `{"name":"`+u.name+`","weight":70,"goals":[],"onboarded":true}`)
	backend.put(AuthTokenKey, "")

	s := loadedStore(t, backend)
	require.False(t, s.IsAuthenticated())

	require.NoError(t, s.Login(context.Background(), u.email, u.password))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, u.email, s.AuthState().Account.Email)
	p := s.Profile()
	assert.True(t, p.Onboarded)
	require.NotNil(t, p.Weight)
	assert.Equal(t, 70.0, *p.Weight)

	s.Flush()
	token, _ := backend.raw(AuthTokenKey)
	assert.Equal(t, "token_test", token)
}

func TestLoginFailures(t *testing.T) {
	u := fakeUser{email: "alex@example.com", password: "correct-horse", name: "Alex"}

	tests := []struct {
		name     string
		signedUp bool
		email    string
		password string
		want     error
		message  string
	}{
		{"empty", true, "", "", ErrMissingCredentials, "please enter both email and password"},
		{"empty password", true, u.email, "", ErrMissingCredentials, "please enter both email and password"},
		{"invalid email", true, "alex", u.password, ErrInvalidEmail, "please enter a valid email address"},
		{"short password", true, u.email, "abc", ErrPasswordTooShort, "password must be at least 6 characters"},
		{"no account", false, u.email, u.password, ErrNoAccount, "no account found with this email"},
		{"wrong password", true, u.email, "wrong-horse", ErrInvalidCredentials, "invalid email or password"},
		{"wrong email", true, "sam@example.com", u.password, ErrInvalidCredentials, "invalid email or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedStore(t, newMemKV())
			if tt.signedUp {
				require.NoError(t, s.Signup(context.Background(), u.email, u.password, u.name))
				s.Logout()
				// Logout drops the credential; put it back without a session.
				require.NoError(t, s.Signup(context.Background(), u.email, u.password, u.name))
				s.mu.Lock()
				s.auth = AuthState{Status: StatusUnauthenticated}
				s.mu.Unlock()
			}

			err := s.Login(context.Background(), tt.email, tt.password)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, StatusUnauthenticated, s.AuthState().Status)
		})
	}
}

func TestLoginHonoursCancellation(t *testing.T) {
	s := loadedStore(t, newMemKV(), WithAuthLatency(time.Hour, time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Login(ctx, "a@b.co", "secret1") }()

	require.Eventually(t, func() bool {
		return s.AuthState().Status == StatusAuthenticating
	}, time.Second, time.Millisecond)

	cancel()
	err := <-done
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusUnauthenticated, s.AuthState().Status)
}

func TestLogoutDuringFailedLoginStaysLoggedOut(t *testing.T) {
	backend := newMemKV()
	s := loadedStore(t, backend)
	u := newFakeUser()
	require.NoError(t, s.Signup(context.Background(), u.email, u.password, u.name))
	s.loginLatency = 200 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- s.Login(context.Background(), u.email, u.password+"x") }()

	require.Eventually(t, func() bool {
		return s.AuthState().Status == StatusAuthenticating
	}, time.Second, time.Millisecond)
	s.Logout()

	err := <-done
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, AuthState{Status: StatusUnauthenticated}, s.AuthState())

	s.Flush()
	_, hasToken := backend.raw(AuthTokenKey)
	assert.False(t, hasToken)
}

func TestSignupLatency(t *testing.T) {
	s := loadedStore(t, newMemKV(), WithAuthLatency(0, 20*time.Millisecond))
	u := newFakeUser()

	start := time.Now()
	require.NoError(t, s.Signup(context.Background(), u.email, u.password, u.name))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestLogout(t *testing.T) {
	backend := newMemKV()
	s := loadedStore(t, backend)
	u := newFakeUser()
	require.NoError(t, s.Signup(context.Background(), u.email, u.password, u.name))
	s.CompleteWorkout("1")

	s.Logout()

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, AuthState{Status: StatusUnauthenticated}, s.AuthState())
	assert.Equal(t, models.DefaultProfile(), s.Profile())
	assert.Len(t, s.Activities(), 1, "logs survive logout")
	w, _ := s.Workout("1")
	assert.True(t, w.Completed)

	s.Flush()
	_, hasToken := backend.raw(AuthTokenKey)
	_, hasCreds := backend.raw(CredentialsKey)
	_, hasProfile := backend.raw(ProfileKey)
	assert.False(t, hasToken)
	assert.False(t, hasCreds)
	assert.True(t, hasProfile)
}

func TestLoadAllRestoresSession(t *testing.T) {
	backend := newMemKV()
	u := newFakeUser()
	first := loadedStore(t, backend)
	require.NoError(t, first.Signup(context.Background(), u.email, u.password, u.name))
	first.Flush()

	s := loadedStore(t, backend)

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "token_test", s.AuthState().Token)
	assert.Equal(t, u.name, s.Profile().Name)
}

func TestLoadAllTokenWithoutCredentials(t *testing.T) {
	backend := newMemKV()
	backend.put(AuthTokenKey, "token_orphan")

	s := loadedStore(t, backend)

	assert.False(t, s.IsAuthenticated())
}
