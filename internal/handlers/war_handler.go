package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/streetwars/internal/middleware"
	"github.com/mroshb/streetwars/internal/services"
)

type WarHandler struct {
	wars *services.WarService
}

func NewWarHandler(wars *services.WarService) *WarHandler {
	return &WarHandler{wars: wars}
}

// Attack targets a territory: an unclaimed one is taken outright, a
// rival's one starts a war.
func (h *WarHandler) Attack(c *fiber.Ctx) error {
	territoryID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.wars.Attack(middleware.UserID(c), territoryID)
	if err != nil {
		return respondError(c, err)
	}

	if result.ClaimedTerritory {
		return c.JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *WarHandler) Join(c *fiber.Ctx) error {
	warID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	participant, err := h.wars.JoinWar(middleware.UserID(c), warID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(participant)
}

func (h *WarHandler) Contribute(c *fiber.Ctx) error {
	warID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	war, err := h.wars.Contribute(middleware.UserID(c), warID, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(war)
}

func (h *WarHandler) Get(c *fiber.Ctx) error {
	warID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	war, participants, err := h.wars.GetWar(warID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"war": war, "participants": participants})
}

func (h *WarHandler) ListActive(c *fiber.Ctx) error {
	wars, err := h.wars.ListActiveWars()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"wars": wars})
}
