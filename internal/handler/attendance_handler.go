package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-proficiency-api/internal/dto"
	"github.com/noah-isme/gema-proficiency-api/internal/service"
	"github.com/noah-isme/gema-proficiency-api/internal/utils"
)

// AttendanceHandler receives activity heartbeats and lists attendance.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches attendance routes.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Post("/heartbeat", h.heartbeat)
	router.Get("", h.list)
}

func (h *AttendanceHandler) heartbeat(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.AttendanceHeartbeatRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.Heartbeat(requestContext(c), studentID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", validationDetails(err))
		case errors.Is(err, service.ErrHeartbeatThrottled):
			return utils.SendError(c, fiber.StatusTooManyRequests, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record heartbeat")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record heartbeat")
		}
	}

	return utils.SendSuccess(c, "heartbeat recorded", record)
}

func (h *AttendanceHandler) list(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	records, err := h.service.List(requestContext(c), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list attendance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list attendance")
	}

	return utils.SendSuccess(c, "attendance retrieved", records)
}
