package handler

import (
	"github.com/andressep95/blog-service/internal/service"
	"github.com/gofiber/fiber/v2"
)

type TestingHandler struct {
	testingService *service.TestingService
}

func NewTestingHandler(testingService *service.TestingService) *TestingHandler {
	return &TestingHandler{
		testingService: testingService,
	}
}

// DeleteAllData wipes every collection
// DELETE /testing/all-data
func (h *TestingHandler) DeleteAllData(c *fiber.Ctx) error {
	if err := h.testingService.DeleteAllData(c.Context()); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
