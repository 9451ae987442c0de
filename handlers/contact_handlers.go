package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tourbook/models"
)

// HandleCreateContact stores a guest message from the contact form.
// POST /api/v1/contacts
func (h *Handler) HandleCreateContact(c *fiber.Ctx) error {
	var req models.CreateContactRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	contact, err := h.Contacts.Create(c.UserContext(), models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return storeError(c, h.Log, err, "Message", "save")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": contact})
}

// HandleListContacts lists guest messages, ?unread=true for unread only.
// GET /api/v1/admin/contacts
func (h *Handler) HandleListContacts(c *fiber.Ctx) error {
	params := listParams(c)
	contacts, total, err := h.Contacts.List(c.UserContext(), params, c.QueryBool("unread", false))
	if err != nil {
		return storeError(c, h.Log, err, "Message", "list")
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.PaginatedResponse[models.Contact]{
		Data:       contacts,
		Pagination: params.Pagination(total),
	}})
}

// PUT /api/v1/admin/contacts/:id/read
func (h *Handler) HandleMarkContactRead(c *fiber.Ctx) error {
	if err := h.Contacts.MarkRead(c.UserContext(), c.Params("id")); err != nil {
		return storeError(c, h.Log, err, "Message", "update")
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Message marked as read"})
}

// DELETE /api/v1/admin/contacts/:id
func (h *Handler) HandleDeleteContact(c *fiber.Ctx) error {
	if err := h.Contacts.Delete(c.UserContext(), c.Params("id")); err != nil {
		return storeError(c, h.Log, err, "Message", "delete")
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Message deleted"})
}
