package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pathwise-dev/pathwise/pkg/model"
	"github.com/pathwise-dev/pathwise/pkg/utils/logging"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID       string                  `json:"session_id"`
	ReplyText       string                  `json:"reply_text"`
	UsedFallback    bool                    `json:"used_fallback"`
	Intent          model.Intent            `json:"intent"`
	Recommendations []*model.Recommendation `json:"recommendations"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	// Mint a session id for first-contact clients
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	result, err := s.advisor.Handle(c.UserContext(), model.SessionID(req.SessionID), req.Message)
	if err != nil {
		// Only cancellation reaches here; provider failures are absorbed
		// by the orchestrator's fallback path
		logging.From(c.UserContext()).Warn("chat request aborted", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "request aborted",
		})
	}

	return c.JSON(chatResponse{
		SessionID:       req.SessionID,
		ReplyText:       result.ReplyText,
		UsedFallback:    result.UsedFallback,
		Intent:          result.Intent,
		Recommendations: result.Recommendations,
	})
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	id := model.SessionID(c.Params("id"))
	turns := s.advisor.Memory(id)
	if turns == nil {
		turns = []model.Turn{}
	}
	return c.JSON(fiber.Map{
		"session_id": id,
		"turns":      turns,
	})
}

func (s *Server) handleClearSession(c *fiber.Ctx) error {
	s.advisor.ClearSession(model.SessionID(c.Params("id")))
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":               "ok",
		"catalog_size":         s.catalogSize,
		"generative_available": s.advisor.GenerativeConfigured(),
	})
}
