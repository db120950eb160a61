package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/aslanbekov/rentnest/internal/repository"
)

func TestPropertyCreateValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"description":"d"}`, "name is required"},
		{"missing price", `{"name":"n","description":"d"}`, "price is required"},
		{"negative price", `{"name":"n","description":"d","price":-1,"features":"f","property_type":"t","category":"c","contact_number":"555","contact_email":"a@x.com","bedrooms":1,"bathrooms":1}`, "price must be non-negative"},
		{"missing bedrooms", `{"name":"n","description":"d","price":10,"features":"f","property_type":"t","category":"c","contact_number":"555","contact_email":"a@x.com","bathrooms":1}`, "bedrooms is required"},
		{"bad contact email", `{"name":"n","description":"d","price":10,"features":"f","property_type":"t","category":"c","contact_number":"555","contact_email":"nope","bedrooms":1,"bathrooms":1}`, "enter a valid contact email address"},
	}
	db, _ := newMockDB(t)
	h := NewPropertyHandler(repository.NewPropertyRepo(db))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonCtx(http.MethodPost, "/property/create", tc.body)
			asUser(c, 2, false)
			if err := h.Create(c); err != nil {
				t.Fatalf("Create: %v", err)
			}
			wantStatus(t, rec, http.StatusBadRequest)
			wantBodyContains(t, rec, tc.want)
		})
	}
}

func TestPropertyCreateBindsOwner(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewPropertyHandler(repository.NewPropertyRepo(db))

	// owner_id is the fourth insert argument and must be the caller.
	mock.ExpectExec("INSERT INTO properties").
		WithArgs("Lakeside Flat", "Two rooms by the lake", 1250.0, uint64(2),
			"balcony,parking", "apartment", "rent", "555-0100", "owner@example.com",
			uint32(2), uint32(1), true).
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(dbPropertyRow(8, 2, 1250, true))

	body := `{"name":"Lakeside Flat","description":"Two rooms by the lake","price":1250,
		"features":"balcony,parking","property_type":"apartment","category":"rent",
		"contact_number":"555-0100","contact_email":"owner@example.com",
		"bedrooms":2,"bathrooms":1,"parking_spaces":true}`
	c, rec := jsonCtx(http.MethodPost, "/property/create", body)
	asUser(c, 2, false)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	wantStatus(t, rec, http.StatusCreated)
	wantBodyContains(t, rec, `"owner_id":2`)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPropertyUpdateByNonOwner(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewPropertyHandler(repository.NewPropertyRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(dbPropertyRow(8, 2, 1250, true))

	c, rec := jsonCtx(http.MethodPut, "/property/update/8", `{"price":1}`)
	c.SetParamNames("id")
	c.SetParamValues("8")
	asUser(c, 99, false)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	wantStatus(t, rec, http.StatusForbidden)
	wantBodyContains(t, rec, "you do not have permission to modify this property")
}

func TestPropertyUpdateByStaff(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewPropertyHandler(repository.NewPropertyRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(dbPropertyRow(8, 2, 1250, true))
	mock.ExpectExec("UPDATE properties SET updated_at=NOW").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(dbPropertyRow(8, 2, 999, true))

	c, rec := jsonCtx(http.MethodPut, "/property/update/8", `{"price":999}`)
	c.SetParamNames("id")
	c.SetParamValues("8")
	asUser(c, 99, true) // staff, not the owner
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)
	wantBodyContains(t, rec, `"price":"$999.00"`)
}

func TestPropertyDeleteByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewPropertyHandler(repository.NewPropertyRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(dbPropertyRow(8, 2, 1250, true))
	mock.ExpectExec("DELETE FROM properties").
		WithArgs(uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := jsonCtx(http.MethodDelete, "/property/delete/8", "")
	c.SetParamNames("id")
	c.SetParamValues("8")
	asUser(c, 2, false)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	wantStatus(t, rec, http.StatusNoContent)
}

func TestPropertyListRendering(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewPropertyHandler(repository.NewPropertyRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(dbPropertyRow(8, 2, 12.5, true))

	c, rec := jsonCtx(http.MethodGet, "/property/list", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var out []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0]["price"] != "$12.50" {
		t.Errorf("price = %v, want \"$12.50\"", out[0]["price"])
	}
	if out[0]["created_at"] != "2024-05-01 12:00:00" {
		t.Errorf("created_at = %v", out[0]["created_at"])
	}
	if out[0]["owner"] != "landlord" {
		t.Errorf("owner = %v", out[0]["owner"])
	}
}

func TestPropertyListEmptyIsArray(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewPropertyHandler(repository.NewPropertyRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(sqlmock.NewRows(propertyTestCols))

	c, rec := jsonCtx(http.MethodGet, "/property/list", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)
	// An empty catalog is [], never null.
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestPropertyListBadFilter(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewPropertyHandler(repository.NewPropertyRepo(db))

	c, rec := jsonCtx(http.MethodGet, "/property/list?min_price=abc", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	wantStatus(t, rec, http.StatusBadRequest)
	wantBodyContains(t, rec, "invalid min_price")
}
