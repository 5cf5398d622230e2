package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestSignup_ReturnsUserWithoutPassword(t *testing.T) {
	e := newTestEnv(t)

	st, b := e.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, st, string(b))
	assert.NotContains(t, string(b), "secret1")
	assert.NotContains(t, string(b), "password")

	u := decode[userBody](t, b).User
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.Nil(t, u.Password)
}

func TestSignup_Validation(t *testing.T) {
	e := newTestEnv(t)

	cases := []struct {
		name string
		body map[string]string
		want string
	}{
		{"missing name", map[string]string{"email": "a@example.com", "password": "secret1"}, "name is required"},
		{"missing email", map[string]string{"name": "A", "password": "secret1"}, "email is required"},
		{"short password", map[string]string{"name": "A", "email": "a@example.com", "password": "123"}, "password must be at least 6 characters long"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, b := e.do(t, http.MethodPost, "/auth/signup", tc.body)
			assert.Equal(t, http.StatusBadRequest, st)
			assert.Equal(t, tc.want, errorMsg(t, b))
		})
	}
}

func TestSignup_AcceptsAnyNonEmptyEmail(t *testing.T) {
	e := newTestEnv(t)

	st, b := e.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": "Bob", "email": "bob", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, st, string(b))
	assert.Equal(t, "bob", decode[userBody](t, b).User.Email)

	st, b = e.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"email": "bob", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, st, string(b))
}

func TestSignup_DuplicateEmailIsConflict(t *testing.T) {
	e := newTestEnv(t)
	e.signup(t, "Ann", "ann@example.com", "secret1")

	st, b := e.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": "Other", "email": "ANN@example.com", "password": "secret2",
	})
	assert.Equal(t, http.StatusConflict, st)
	assert.Equal(t, "User with this email already exists", errorMsg(t, b))
}

func TestSignin_SucceedsAfterSignup(t *testing.T) {
	e := newTestEnv(t)
	id := e.signup(t, "Ann", "ann@example.com", "secret1")

	st, b := e.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"email": "ann@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, st, string(b))
	assert.Equal(t, id, decode[userBody](t, b).User.ID)
	assert.NotContains(t, string(b), "password")
}

func TestSignin_FailuresAreIndistinguishable(t *testing.T) {
	e := newTestEnv(t)
	e.signup(t, "Ann", "ann@example.com", "secret1")

	st1, b1 := e.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"email": "nobody@example.com", "password": "secret1",
	})
	st2, b2 := e.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"email": "ann@example.com", "password": "wrong-one",
	})
	assert.Equal(t, http.StatusUnauthorized, st1)
	assert.Equal(t, http.StatusUnauthorized, st2)
	assert.Equal(t, string(b1), string(b2))
	assert.Equal(t, "Invalid credentials", errorMsg(t, b1))
}

func TestSignin_MissingFieldsIsBadRequest(t *testing.T) {
	e := newTestEnv(t)
	st, b := e.do(t, http.MethodPost, "/auth/signin", map[string]string{"email": "ann@example.com"})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Equal(t, "password is required", errorMsg(t, b))
}

func TestSignin_MalformedBody(t *testing.T) {
	e := newTestEnv(t)
	req := jsonRequest(http.MethodPost, "/auth/signin", `{"email":`)
	st, b := e.send(t, req)
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Equal(t, "Invalid request body", errorMsg(t, b))
}

func TestSignin_RateLimited(t *testing.T) {
	e := newTestEnvWith(t, func(c *config.Config) { c.SigninRateMax = 2 })
	body := map[string]string{"email": "x@example.com", "password": "whatever"}

	for i := 0; i < 2; i++ {
		st, _ := e.do(t, http.MethodPost, "/auth/signin", body)
		require.Equal(t, http.StatusUnauthorized, st)
	}
	st, b := e.do(t, http.MethodPost, "/auth/signin", body)
	assert.Equal(t, http.StatusTooManyRequests, st)
	assert.True(t, strings.HasPrefix(errorMsg(t, b), "Too many attempts"))
}

func TestSeedAdmin_CanSignIn(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.deps.Auth.SeedAdmin(context.Background(), "Admin", "admin@example.com", "admin-pass"))

	st, b := e.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"email": "admin@example.com", "password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, st, string(b))
	assert.True(t, decode[userBody](t, b).User.IsAdmin)
}
