package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/streetwars/internal/middleware"
	"github.com/mroshb/streetwars/internal/repositories"
	"github.com/mroshb/streetwars/internal/services"
	"github.com/mroshb/streetwars/pkg/errors"
)

type BankHandler struct {
	gangs  *services.GangService
	ledger *repositories.LedgerRepository
}

func NewBankHandler(gangs *services.GangService, ledger *repositories.LedgerRepository) *BankHandler {
	return &BankHandler{gangs: gangs, ledger: ledger}
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

func (h *BankHandler) Deposit(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.gangs.Deposit(middleware.UserID(c), req.Amount); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deposited": req.Amount})
}

func (h *BankHandler) Withdraw(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.gangs.Withdraw(middleware.UserID(c), req.Amount); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"withdrawn": req.Amount})
}

// History returns the caller's gang bank journal.
func (h *BankHandler) History(c *fiber.Ctx) error {
	member, err := h.gangs.GetUserGang(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if member == nil {
		return respondError(c, errors.New(errors.ErrCodeNotFound, "you are not in a gang"))
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	history, err := h.ledger.GetGangHistory(member.GangID, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transactions": history})
}
