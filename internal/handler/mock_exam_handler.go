package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-proficiency-api/internal/dto"
	"github.com/noah-isme/gema-proficiency-api/internal/middleware"
	"github.com/noah-isme/gema-proficiency-api/internal/service"
	"github.com/noah-isme/gema-proficiency-api/internal/utils"
)

// MockExamHandler exposes instructor-recorded mock exams.
type MockExamHandler struct {
	service service.MockExamService
	logger  zerolog.Logger
}

// NewMockExamHandler constructs the handler.
func NewMockExamHandler(service service.MockExamService, logger zerolog.Logger) *MockExamHandler {
	return &MockExamHandler{
		service: service,
		logger:  logger.With().Str("component", "mock_exam_handler").Logger(),
	}
}

// Register attaches mock exam routes.
func (h *MockExamHandler) Register(router fiber.Router) {
	router.Post("", middleware.WithAuth(h.create, middleware.AuthOptions{Role: middleware.AuthRoleStaff}))
	router.Get("", h.list)
}

func (h *MockExamHandler) create(c *fiber.Ctx) error {
	var payload dto.MockExamCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	recorded, err := h.service.Record(requestContext(c), payload, activityActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", validationDetails(err))
		case errors.Is(err, service.ErrScoreOutOfRange):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record mock exam")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record mock exam")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "mock exam recorded", recorded)
}

// list returns the caller's own mock exams. Staff may pass student_id to pick a student or omit
// it to list everyone.
func (h *MockExamHandler) list(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	requested, err := parseQueryInt(c, "student_id")
	if err != nil || requested < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	studentID := uint(requested)
	if !isStaff(c) {
		if studentID != 0 && studentID != userID {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		studentID = userID
	}

	mocks, err := h.service.List(requestContext(c), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list mock exams")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list mock exams")
	}

	return utils.SendSuccess(c, "mock exams retrieved", mocks)
}
