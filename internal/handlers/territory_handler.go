package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/streetwars/internal/services"
)

type TerritoryHandler struct {
	territories *services.TerritoryService
}

func NewTerritoryHandler(territories *services.TerritoryService) *TerritoryHandler {
	return &TerritoryHandler{territories: territories}
}

func (h *TerritoryHandler) List(c *fiber.Ctx) error {
	territories, err := h.territories.ListTerritories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"territories": territories})
}

func (h *TerritoryHandler) Get(c *fiber.Ctx) error {
	territoryID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	territory, err := h.territories.GetTerritory(territoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(territory)
}
