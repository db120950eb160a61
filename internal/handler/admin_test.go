package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func refreshTokenRows(userID uint64, exp time.Time, revoked interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
		AddRow(userID, exp, revoked)
}

func TestAdminRefreshRotatesToken(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAdminHandler(newAuthHandler(db))

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WillReturnRows(refreshTokenRows(7, time.Now().UTC().Add(time.Hour), nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=NOW").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(dbUserRow(t, 7, "admin@x.com", "password1", true, true))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(2, 1))

	old := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	c, rec := jsonCtx(http.MethodPost, "/property_admin/token/refresh", `{"refresh":"`+old+`"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Refresh == old {
		t.Error("refresh token was not rotated")
	}
	if resp.Access == "" {
		t.Error("no access token issued")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAdminRefreshRevokedToken(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAdminHandler(newAuthHandler(db))

	// A rotated (revoked) token replays as invalid.
	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WillReturnRows(refreshTokenRows(7, time.Now().UTC().Add(time.Hour), time.Now().UTC()))

	c, rec := jsonCtx(http.MethodPost, "/property_admin/token/refresh", `{"refresh":"replayed"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	wantStatus(t, rec, http.StatusUnauthorized)
	wantBodyContains(t, rec, "invalid refresh token")
}

func TestAdminRefreshDisabledUser(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAdminHandler(newAuthHandler(db))

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WillReturnRows(refreshTokenRows(7, time.Now().UTC().Add(time.Hour), nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=NOW").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(dbUserRow(t, 7, "banned@x.com", "password1", false, true))

	c, rec := jsonCtx(http.MethodPost, "/property_admin/token/refresh", `{"refresh":"sometoken"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	wantStatus(t, rec, http.StatusForbidden)
	wantBodyContains(t, rec, "user account is disabled")
}

func TestAdminRefreshMissingBody(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewAdminHandler(newAuthHandler(db))

	c, rec := jsonCtx(http.MethodPost, "/property_admin/token/refresh", `{}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	wantStatus(t, rec, http.StatusBadRequest)
	wantBodyContains(t, rec, "refresh token is required")
}

func TestAdminBan(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAdminHandler(newAuthHandler(db))

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(dbUserRow(t, 5, "target@x.com", "password1", true, false))
	mock.ExpectExec("UPDATE users SET is_active=0 WHERE id=").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := jsonCtx(http.MethodPut, "/property_admin/users/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	asUser(c, 1, true)
	if err := h.Ban(c); err != nil {
		t.Fatalf("Ban: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)
	wantBodyContains(t, rec, "User banned successfully")
	wantBodyContains(t, rec, `"is_active":false`)
}

func TestAdminBanUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAdminHandler(newAuthHandler(db))

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(sqlmock.NewRows(userTestCols))

	c, rec := jsonCtx(http.MethodPut, "/property_admin/users/404", "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	asUser(c, 1, true)
	if err := h.Ban(c); err != nil {
		t.Fatalf("Ban: %v", err)
	}
	wantStatus(t, rec, http.StatusNotFound)
	wantBodyContains(t, rec, "user not found")
}

func TestAdminStats(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAdminHandler(newAuthHandler(db))

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"total", "admins"}).AddRow(3, 1))
	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
		WillReturnRows(dbUserRow(t, 1, "admin@x.com", "password1", true, true))

	c, rec := jsonCtx(http.MethodGet, "/property_admin/stats", "")
	asUser(c, 1, true)
	if err := h.Stats(c); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)
	wantBodyContains(t, rec, `"total_users":3`)
	wantBodyContains(t, rec, `"total_admins":1`)
	wantBodyContains(t, rec, `"users":[`)
}

func TestAdminRegisterPhoneOptional(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAdminHandler(newAuthHandler(db))

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(dbUserRow(t, 2, "second@x.com", "password1", true, true))

	c, rec := jsonCtx(http.MethodPost, "/property_admin/register",
		`{"email":"second@x.com","username":"second","first_name":"F","last_name":"L","password":"password1","confirm_password":"password1"}`)
	asUser(c, 1, true)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	wantStatus(t, rec, http.StatusCreated)
	wantBodyContains(t, rec, "Admin registered successfully")
}
