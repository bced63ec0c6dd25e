package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/streetwars/internal/middleware"
	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/internal/services"
	"github.com/mroshb/streetwars/pkg/errors"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the caller's profile, creating it on first contact.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.EnsureUser(middleware.UserID(c), middleware.Username(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Wallet(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	wallet, err := h.users.GetWallet(middleware.UserID(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wallet)
}

// Find looks a player up by exact username.
func (h *UserHandler) Find(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return respondError(c, errors.New(errors.ErrCodeValidationFailed, "username query required"))
	}

	user, err := h.users.FindByUsername(username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(publicProfile(user))
}

// Get looks a player up by public id.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByPublicID(c.Params("public_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(publicProfile(user))
}

type adjustRequest struct {
	UserID uint   `json:"user_id"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// Adjust credits or debits a player's cash. Super admin only.
func (h *UserHandler) Adjust(c *fiber.Ctx) error {
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	balance, err := h.users.AdminAdjust(middleware.UserID(c), req.UserID, req.Amount, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user_id": req.UserID, "balance": balance})
}

func publicProfile(user *models.User) fiber.Map {
	return fiber.Map{
		"public_id": user.PublicID,
		"username":  user.Username,
		"respect":   user.Respect,
		"level":     user.Level,
	}
}
