package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ga-helpdesk/internal/api/dto"
	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/repository"
	"github.com/spec-kit/ga-helpdesk/internal/service"
	apperrors "github.com/spec-kit/ga-helpdesk/pkg/util"
)

// AccountsHandler exposes admin account management and the audit trail.
type AccountsHandler struct {
	directory *service.AccountService
	activity  repository.ActivityRepository
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(directory *service.AccountService, activity repository.ActivityRepository) *AccountsHandler {
	return &AccountsHandler{directory: directory, activity: activity}
}

// List GET /accounts.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	accounts, err := h.directory.ListAccounts(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, dto.FromAccount(account))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Admins GET /accounts/admins.
func (h *AccountsHandler) Admins(c *fiber.Ctx) error {
	admins, err := h.directory.ListAdmins(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AccountResponse, 0, len(admins))
	for _, account := range admins {
		items = append(items, dto.FromAccount(account))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Add POST /accounts.
func (h *AccountsHandler) Add(c *fiber.Ctx) error {
	var req dto.AddAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.directory.AddAccount(c.Context(), service.AddAccountInput{
		Username:   req.Username,
		Password:   req.Password,
		FullName:   req.FullName,
		Email:      req.Email,
		Role:       domain.Role(req.Role),
		Department: req.Department,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromAccount(*account)})
}

// Delete DELETE /accounts/:username.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	if err := h.directory.DeleteAccount(c.Context(), c.Params("username")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Activity GET /activity.
func (h *AccountsHandler) Activity(c *fiber.Ctx) error {
	entries, err := h.activity.History(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ActivityEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.FromActivityEntry(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}
