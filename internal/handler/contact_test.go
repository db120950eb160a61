package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/aslanbekov/rentnest/internal/repository"
)

// stubMailer records sends and optionally fails them.
type stubMailer struct {
	to, subject, body string
	sent              int
	err               error
}

func (m *stubMailer) Send(to, subject, body string) error {
	m.sent++
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func TestContactSubmit(t *testing.T) {
	db, mock := newMockDB(t)
	mail := &stubMailer{}
	h := NewContactHandler(repository.NewContactRepo(db), repository.NewPropertyRepo(db), mail)

	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(dbPropertyRow(8, 2, 1250, true))
	mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs(uint64(8), "Is this still available?").
		WillReturnResult(sqlmock.NewResult(21, 1))

	c, rec := jsonCtx(http.MethodPost, "/property/contact",
		`{"property_id":8,"message":"Is this still available?"}`)
	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	wantStatus(t, rec, http.StatusCreated)
	wantBodyContains(t, rec, `"contact_email":"owner@example.com"`)

	if mail.sent != 1 {
		t.Fatalf("sent = %d, want 1", mail.sent)
	}
	if mail.to != "owner@example.com" {
		t.Errorf("notification went to %q", mail.to)
	}
	if mail.subject != "New inquiry for Lakeside Flat" {
		t.Errorf("subject = %q", mail.subject)
	}
}

func TestContactSubmitMailFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mail := &stubMailer{err: errors.New("relay refused")}
	h := NewContactHandler(repository.NewContactRepo(db), repository.NewPropertyRepo(db), mail)

	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(dbPropertyRow(8, 2, 1250, true))
	mock.ExpectExec("INSERT INTO contact_messages").
		WillReturnResult(sqlmock.NewResult(21, 1))

	c, rec := jsonCtx(http.MethodPost, "/property/contact",
		`{"property_id":8,"message":"Hello"}`)
	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// Delivery failures are loud, not swallowed.
	wantStatus(t, rec, http.StatusInternalServerError)
	wantBodyContains(t, rec, "failed to send notification")
}

func TestContactSubmitUnknownProperty(t *testing.T) {
	db, mock := newMockDB(t)
	mail := &stubMailer{}
	h := NewContactHandler(repository.NewContactRepo(db), repository.NewPropertyRepo(db), mail)

	mock.ExpectQuery("SELECT (.+) FROM properties p").
		WillReturnRows(sqlmock.NewRows(propertyTestCols))

	c, rec := jsonCtx(http.MethodPost, "/property/contact",
		`{"property_id":404,"message":"Hello"}`)
	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	wantStatus(t, rec, http.StatusNotFound)
	if mail.sent != 0 {
		t.Errorf("notification sent for unknown property")
	}
}

func TestContactSubmitValidation(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewContactHandler(repository.NewContactRepo(db), repository.NewPropertyRepo(db), &stubMailer{})

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing property", `{"message":"hi"}`, "property_id is required"},
		{"missing message", `{"property_id":8}`, "message is required"},
		{"blank message", `{"property_id":8,"message":"   "}`, "message is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonCtx(http.MethodPost, "/property/contact", tc.body)
			if err := h.Submit(c); err != nil {
				t.Fatalf("Submit: %v", err)
			}
			wantStatus(t, rec, http.StatusBadRequest)
			wantBodyContains(t, rec, tc.want)
		})
	}
}
