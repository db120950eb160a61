package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aslanbekov/rentnest/internal/mailer"
	"github.com/aslanbekov/rentnest/internal/queue"
	"github.com/aslanbekov/rentnest/internal/repository"
	queue_publisher "github.com/aslanbekov/rentnest/internal/service/queue_publisher"
	"github.com/aslanbekov/rentnest/internal/utils"
)

// ContactHandler records inquiries about listings and notifies the
// listing's published contact address. The email send is synchronous and
// loud: a delivery failure is a server error, not a silently dropped
// notification. The broker event is the opposite — best effort.
type ContactHandler struct {
	Contacts *repository.ContactRepo
	Props    *repository.PropertyRepo
	Mail     mailer.Mailer
}

func NewContactHandler(c *repository.ContactRepo, p *repository.PropertyRepo, m mailer.Mailer) *ContactHandler {
	return &ContactHandler{Contacts: c, Props: p, Mail: m}
}

type contactReq struct {
	PropertyID uint64 `json:"property_id"`
	Message    string `json:"message"`
}

// Submit stores an inquiry for a listing and dispatches the notification.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil || req.PropertyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "property_id is required"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "message is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	p, err := h.Props.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "property not found"})
		}
		c.Logger().Errorf("contact: property lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	if !p.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "property not found"})
	}

	id, err := h.Contacts.Create(ctx, p.ID, req.Message)
	if err != nil {
		c.Logger().Errorf("contact: store message: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}

	subject := fmt.Sprintf("New inquiry for %s", p.Name)
	body := fmt.Sprintf("You have received a new inquiry for %q:\n\n%s\n", p.Name, req.Message)
	if err := h.Mail.Send(p.ContactEmail, subject, body); err != nil {
		c.Logger().Errorf("contact: notification send failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to send notification"})
	}

	// Broker event is fire-and-forget; the publisher logs its own errors.
	_ = queue_publisher.PublishInquiryReceived(ctx, queue.InquiryReceivedEvent{
		MessageID:    id,
		PropertyID:   p.ID,
		PropertyName: p.Name,
		ContactEmail: p.ContactEmail,
		Message:      req.Message,
		ReceivedAt:   utils.FormatTimestamp(time.Now().UTC()),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":             id,
		"property_id":    p.ID,
		"message":        req.Message,
		"contact_number": p.ContactNumber,
		"contact_email":  p.ContactEmail,
	})
}

// ListMessages returns every stored inquiry with the referenced listing's
// contact details. Staff only; the route is behind RequireStaff.
func (h *ContactHandler) ListMessages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	msgs, err := h.Contacts.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("contact list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "something went wrong, please try again"})
	}
	out := make([]contactResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, renderContact(m))
	}
	return c.JSON(http.StatusOK, out)
}
