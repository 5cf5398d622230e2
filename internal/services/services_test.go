package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/repos"
	"storefront/internal/validate"
)

func newDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newAuth(t *testing.T, db *sqlx.DB) *AuthService {
	t.Helper()
	users, err := repos.NewUserRepo(db)
	require.NoError(t, err)
	s := NewAuthService(users)
	s.Cost = bcrypt.MinCost
	return s
}

func TestAuth_SignupHashesPassword(t *testing.T) {
	db := newDB(t)
	s := newAuth(t, db)
	ctx := context.Background()

	u, err := s.Signup(ctx, SignupInput{Name: "  Ann ", Email: " ann@example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.Hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte("secret1")))

	_, err = s.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "User with this email already exists", err.Error())
}

func TestAuth_SigninErrors(t *testing.T) {
	db := newDB(t)
	s := newAuth(t, db)
	ctx := context.Background()
	_, err := s.Signup(ctx, SignupInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Signin(ctx, SigninInput{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrBadCreds)
	_, err = s.Signin(ctx, SigninInput{Email: "ann@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrBadCreds)

	_, err = s.Signin(ctx, SigninInput{Email: "ann@example.com"})
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)

	u, err := s.Signin(ctx, SigninInput{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
}

func TestAuth_SeedAdminSkipsWithoutCredentials(t *testing.T) {
	db := newDB(t)
	s := newAuth(t, db)
	ctx := context.Background()

	require.NoError(t, s.SeedAdmin(ctx, "Admin", "", "pw"))
	require.NoError(t, s.SeedAdmin(ctx, "Admin", "admin@example.com", ""))
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM users`))
	assert.Zero(t, n)

	require.NoError(t, s.SeedAdmin(ctx, "Admin", "admin@example.com", "pw-admin"))
	u, err := s.Signin(ctx, SigninInput{Email: "admin@example.com", Password: "pw-admin"})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

func TestCatalog_GetUnknownIsNotFound(t *testing.T) {
	db := newDB(t)
	prods, err := repos.NewProductRepo(db)
	require.NoError(t, err)
	s := NewCatalogService(prods)

	_, err = s.Get(context.Background(), 123)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Product not found", err.Error())

	err = s.Delete(context.Background(), 123)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrders_PaymentMethodDefaultsToCard(t *testing.T) {
	db := newDB(t)
	auth := newAuth(t, db)
	ctx := context.Background()
	u, err := auth.Signup(ctx, SignupInput{Name: "B", Email: "b@example.com", Password: "secret1"})
	require.NoError(t, err)

	orders, err := repos.NewOrderRepo(db)
	require.NoError(t, err)
	s := NewOrderService(orders)

	o, err := s.Create(ctx, CreateOrderInput{
		UserID: u.ID,
		Items:  []OrderItemInput{{Product: OrderProductRef{ID: 7, Price: 2.5}, Quantity: 4}},
		Total:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, "card", o.PaymentMethod)
	assert.Equal(t, "pending", o.Status)
	require.Len(t, o.Items, 1)
	// the product row is gone or never existed: the item keeps its snapshot
	assert.Equal(t, 2.5, o.Items[0].Price)
	assert.Empty(t, o.Items[0].ProductName)

	_, err = s.Create(ctx, CreateOrderInput{
		UserID: u.ID,
		Items:  []OrderItemInput{{Product: OrderProductRef{ID: 7, Price: 2.5}, Quantity: 0}},
		Total:  10,
	})
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "quantity is required", ve.Msg)
}

type memStore struct {
	name, contentType string
	data              []byte
	err               error
}

func (m *memStore) Put(_ context.Context, name, contentType string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.name, m.contentType, m.data = name, contentType, b
	return "/images/products/" + name, nil
}

func TestUpload_ImageName(t *testing.T) {
	s := NewUploadService(&memStore{})
	s.Now = func() time.Time { return time.UnixMilli(1700000000123) }

	re := regexp.MustCompile(`^product_1700000000123_[0-9a-z]+\.png$`)
	assert.Regexp(t, re, s.imageName("Cat.PNG"))
	assert.Regexp(t, regexp.MustCompile(`^product_1700000000123_[0-9a-z]+$`), s.imageName("noext"))
	assert.Regexp(t, regexp.MustCompile(`^product_1700000000123_[0-9a-z]+$`), s.imageName("x.p/ng"))
	assert.NotEqual(t, s.imageName("a.png"), s.imageName("a.png"))
}

func TestUpload_Policy(t *testing.T) {
	store := &memStore{}
	s := NewUploadService(store)
	ctx := context.Background()
	data := []byte("\x89PNG fake")

	url, err := s.Image(ctx, "a.png", "image/png", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/images/products/product_"))
	assert.Equal(t, data, store.data)
	assert.Equal(t, "image/png", store.contentType)

	_, err = s.Image(ctx, "a.txt", "text/plain", 3, strings.NewReader("abc"))
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "File must be an image", ve.Msg)

	_, err = s.Image(ctx, "big.png", "image/png", MaxImageSize+1, strings.NewReader(""))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "File size must be less than 5MB", ve.Msg)

	// exactly at the limit is fine
	_, err = s.Image(ctx, "edge.png", "image/png", MaxImageSize, strings.NewReader("x"))
	require.NoError(t, err)

	store.err = errors.New("disk full")
	_, err = s.Image(ctx, "a.png", "image/png", 1, strings.NewReader("x"))
	require.Error(t, err)
	assert.False(t, errors.As(err, &ve))
}

func TestUpload_BodyLongerThanDeclaredSize(t *testing.T) {
	store := &memStore{}
	s := NewUploadService(store)
	body := bytes.Repeat([]byte{1}, MaxImageSize+1)

	_, err := s.Image(context.Background(), "a.png", "image/png", 10, bytes.NewReader(body))
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "File size must be less than 5MB", ve.Msg)
	assert.Empty(t, store.name)

	url, err := s.Image(context.Background(), "a.png", "image/png", 10, bytes.NewReader(body[:MaxImageSize]))
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.Len(t, store.data, MaxImageSize)
}

func TestStoreErr(t *testing.T) {
	assert.Nil(t, storeErr(nil, "x"))
	other := errors.New("boom")
	assert.Same(t, other, storeErr(other, "x"))
}
