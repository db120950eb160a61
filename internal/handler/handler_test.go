package handler

import (
	"database/sql"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/aslanbekov/rentnest/internal/cache"
	"github.com/aslanbekov/rentnest/internal/config"
	"github.com/aslanbekov/rentnest/internal/middleware"
	"github.com/aslanbekov/rentnest/internal/repository"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
		PasswordMinLen: 8,
	}
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newAuthHandler(db *sql.DB) *AuthHandler {
	return NewAuthHandler(testConfig(),
		repository.NewUserRepo(db),
		repository.NewTokenRepo(db),
		cache.New(nil, 0))
}

// jsonCtx builds an echo context carrying a JSON body.
func jsonCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser injects the context values the auth middleware would set.
func asUser(c echo.Context, id uint64, staff bool) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxStaff, staff)
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, code, rec.Body.String())
	}
}

func wantBodyContains(t *testing.T, rec *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), substr) {
		t.Errorf("body %q does not contain %q", rec.Body.String(), substr)
	}
}

var userTestCols = []string{"id", "email", "username", "password_hash", "first_name",
	"last_name", "phone_number", "is_active", "is_staff", "is_superuser", "date_joined"}

func dbUserRow(t *testing.T, id uint64, email, password string, active, staff bool) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return sqlmock.NewRows(userTestCols).AddRow(
		id, email, "someone", string(hash), "First", "Last", "555-0100",
		active, staff, staff, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
}

var propertyTestCols = []string{
	"p.id", "p.name", "p.description", "p.price", "p.owner_id", "u.username",
	"p.features", "p.property_type", "p.category", "p.contact_number",
	"p.contact_email", "p.bedrooms", "p.bathrooms", "p.parking_spaces",
	"p.is_active", "p.created_at", "p.updated_at",
}

func dbPropertyRow(id, ownerID uint64, price float64, active bool) *sqlmock.Rows {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(propertyTestCols).AddRow(
		id, "Lakeside Flat", "Two rooms by the lake", price, ownerID, "landlord",
		"balcony,parking", "apartment", "rent", "555-0100",
		"owner@example.com", uint32(2), uint32(1), true,
		active, now, now)
}

var wishlistTestCols = append([]string{"w.id", "w.user_id", "w.property_id", "w.created_at"},
	propertyTestCols...)

func wishlistJoinRow(entryID, userID, propertyID uint64) *sqlmock.Rows {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(wishlistTestCols).AddRow(
		entryID, userID, propertyID, now,
		propertyID, "Lakeside Flat", "Two rooms by the lake", 1250.0, uint64(2), "landlord",
		"balcony,parking", "apartment", "rent", "555-0100",
		"owner@example.com", uint32(2), uint32(1), true,
		true, now, now)
}

func emptyWishlistRows() *sqlmock.Rows { return sqlmock.NewRows(wishlistTestCols) }
