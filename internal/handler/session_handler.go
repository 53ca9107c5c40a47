package handler

import (
	"github.com/andressep95/blog-service/internal/service"
	"github.com/gofiber/fiber/v2"
)

// SecurityDevicesHandler manages the device sessions of the refresh token's owner
type SecurityDevicesHandler struct {
	sessionService *service.DeviceSessionService
}

func NewSecurityDevicesHandler(sessionService *service.DeviceSessionService) *SecurityDevicesHandler {
	return &SecurityDevicesHandler{
		sessionService: sessionService,
	}
}

// List returns the active sessions of the current user
// GET /security/devices
func (h *SecurityDevicesHandler) List(c *fiber.Ctx, rs *service.RefreshSession) error {
	sessions, err := h.sessionService.ListByUser(c.Context(), rs.User.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(sessions)
}

// DeleteOthers terminates every session of the user except the calling one
// DELETE /security/devices
func (h *SecurityDevicesHandler) DeleteOthers(c *fiber.Ctx, rs *service.RefreshSession) error {
	if err := h.sessionService.DeleteAllExceptCurrent(c.Context(), rs.Session.ID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteDevice terminates one session owned by the user
// DELETE /security/devices/:deviceId
func (h *SecurityDevicesHandler) DeleteDevice(c *fiber.Ctx, rs *service.RefreshSession) error {
	if err := h.sessionService.DeleteByDeviceID(c.Context(), rs.User.ID, c.Params("deviceId")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
