package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/streetwars/internal/middleware"
	"github.com/mroshb/streetwars/internal/services"
)

type GangHandler struct {
	gangs *services.GangService
}

func NewGangHandler(gangs *services.GangService) *GangHandler {
	return &GangHandler{gangs: gangs}
}

type createGangRequest struct {
	Name        string `json:"name"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
}

func (h *GangHandler) Create(c *fiber.Ctx) error {
	var req createGangRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	gang, err := h.gangs.CreateGang(middleware.UserID(c), req.Name, req.Tag, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(gang)
}

func (h *GangHandler) Get(c *fiber.Ctx) error {
	gangID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	gang, members, err := h.gangs.GetGang(gangID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"gang": gang, "members": members})
}

func (h *GangHandler) GetBySlug(c *fiber.Ctx) error {
	gang, members, err := h.gangs.GetGangBySlug(c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"gang": gang, "members": members})
}

func (h *GangHandler) Mine(c *fiber.Ctx) error {
	member, err := h.gangs.GetUserGang(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if member == nil {
		return c.JSON(fiber.Map{"gang": nil})
	}
	return c.JSON(fiber.Map{"gang": member.Gang, "role": member.Role, "contribution": member.Contribution})
}

func (h *GangHandler) Join(c *fiber.Ctx) error {
	gangID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.gangs.JoinGang(middleware.UserID(c), gangID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"joined": true})
}

func (h *GangHandler) Leave(c *fiber.Ctx) error {
	if err := h.gangs.LeaveGang(middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"left": true})
}

type memberActionRequest struct {
	UserID uint `json:"user_id"`
}

func (h *GangHandler) Promote(c *fiber.Ctx) error {
	var req memberActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	role, err := h.gangs.Promote(middleware.UserID(c), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user_id": req.UserID, "role": role})
}

func (h *GangHandler) Demote(c *fiber.Ctx) error {
	var req memberActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	role, err := h.gangs.Demote(middleware.UserID(c), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user_id": req.UserID, "role": role})
}

func (h *GangHandler) TransferLeadership(c *fiber.Ctx) error {
	var req memberActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.gangs.TransferLeadership(middleware.UserID(c), req.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transferred": true, "new_leader_id": req.UserID})
}

func (h *GangHandler) Kick(c *fiber.Ctx) error {
	var req memberActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.gangs.KickMember(middleware.UserID(c), req.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"kicked": true})
}

func (h *GangHandler) Disband(c *fiber.Ctx) error {
	if err := h.gangs.Disband(middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"disbanded": true})
}

func (h *GangHandler) Leaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 25)
	if limit < 1 || limit > 100 {
		limit = 25
	}

	gangs, err := h.gangs.GetLeaderboard(limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"gangs": gangs})
}
