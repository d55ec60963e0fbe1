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

// CodeAlreadySubmitted is the stable error code clients use to show "already submitted".
const CodeAlreadySubmitted = "already_submitted"

// ExamHandler exposes exam submission and result endpoints.
type ExamHandler struct {
	service service.ExamSubmissionService
	logger  zerolog.Logger
}

// NewExamHandler constructs the handler.
func NewExamHandler(service service.ExamSubmissionService, logger zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		service: service,
		logger:  logger.With().Str("component", "exam_handler").Logger(),
	}
}

// Register attaches exam routes. submitGuards run before the submit handler, typically a rate limiter.
func (h *ExamHandler) Register(router fiber.Router, submitGuards ...fiber.Handler) {
	router.Post("/:id/submit", append(submitGuards, h.submit)...)
	router.Get("/:id/result", h.result)
}

// RegisterResults attaches the staff override route.
func (h *ExamHandler) RegisterResults(router fiber.Router) {
	router.Patch("/:id", middleware.WithAuth(h.override, middleware.AuthOptions{Role: middleware.AuthRoleStaff}))
}

func (h *ExamHandler) submit(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	var payload dto.ExamSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Submit(requestContext(c), examID, studentID, payload)
	if err != nil {
		return h.handleError(c, err, "failed to submit exam")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam submitted", result)
}

func (h *ExamHandler) result(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	examID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	result, err := h.service.GetResult(requestContext(c), examID, studentID)
	if err != nil {
		return h.handleError(c, err, "failed to load result")
	}

	return utils.SendSuccess(c, "result retrieved", result)
}

func (h *ExamHandler) override(c *fiber.Ctx) error {
	resultID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid result id")
	}

	var payload dto.ResultOverrideRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Override(requestContext(c), resultID, payload, activityActorFromContext(c))
	if err != nil {
		return h.handleError(c, err, "failed to override result")
	}

	return utils.SendSuccess(c, "result updated", result)
}

func (h *ExamHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", validationDetails(err))
	case errors.Is(err, service.ErrInvalidAnswers), errors.Is(err, service.ErrEmptyOverride), errors.Is(err, service.ErrScoreOutOfRange):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExamNotFound), errors.Is(err, service.ErrResultNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadySubmitted):
		return utils.SendErrorCode(c, fiber.StatusConflict, CodeAlreadySubmitted, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
