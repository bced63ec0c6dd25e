package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/streetwars/internal/middleware"
	"github.com/mroshb/streetwars/internal/services"
)

type MissionHandler struct {
	missions *services.MissionService
}

func NewMissionHandler(missions *services.MissionService) *MissionHandler {
	return &MissionHandler{missions: missions}
}

func (h *MissionHandler) List(c *fiber.Ctx) error {
	statuses, err := h.missions.ListAvailable(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"missions": statuses})
}

func (h *MissionHandler) Start(c *fiber.Ctx) error {
	missionID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	attempt, err := h.missions.StartAttempt(middleware.UserID(c), missionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(attempt)
}

func (h *MissionHandler) Check(c *fiber.Ctx) error {
	attemptID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	status, err := h.missions.CheckCompletion(middleware.UserID(c), attemptID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

func (h *MissionHandler) Collect(c *fiber.Ctx) error {
	attemptID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	attempt, err := h.missions.CollectRewards(middleware.UserID(c), attemptID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(attempt)
}

func (h *MissionHandler) Abandon(c *fiber.Ctx) error {
	attemptID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.missions.Abandon(middleware.UserID(c), attemptID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"abandoned": true})
}
