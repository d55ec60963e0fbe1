package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-proficiency-api/internal/service"
	"github.com/noah-isme/gema-proficiency-api/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PerformanceHandler serves student proficiency reports.
type PerformanceHandler struct {
	service  service.PerformanceService
	exporter service.PerformanceExporter
	logger   zerolog.Logger
}

// NewPerformanceHandler constructs the handler.
func NewPerformanceHandler(service service.PerformanceService, exporter service.PerformanceExporter, logger zerolog.Logger) *PerformanceHandler {
	return &PerformanceHandler{
		service:  service,
		exporter: exporter,
		logger:   logger.With().Str("component", "performance_handler").Logger(),
	}
}

// Register attaches performance routes.
func (h *PerformanceHandler) Register(router fiber.Router) {
	router.Get("/:studentId", h.get)
	router.Get("/:studentId/export", h.export)
}

func (h *PerformanceHandler) get(c *fiber.Ctx) error {
	studentID, ok, err := h.authorize(c)
	if !ok {
		return err
	}

	report, err := h.service.Compute(requestContext(c), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("failed to compute performance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute performance")
	}

	return utils.SendSuccess(c, "performance retrieved", report)
}

func (h *PerformanceHandler) export(c *fiber.Ctx) error {
	studentID, ok, err := h.authorize(c)
	if !ok {
		return err
	}

	content, err := h.exporter.ExportXLSX(requestContext(c), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("student_id", studentID).Msg("failed to export performance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to export performance")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="performance-%d.xlsx"`, studentID))
	return c.Status(fiber.StatusOK).Send(content)
}

// authorize resolves the path student and checks the caller may see them. When ok is false
// the rejection has already been written.
func (h *PerformanceHandler) authorize(c *fiber.Ctx) (studentID uint, ok bool, err error) {
	if userIDFromContext(c) == 0 {
		return 0, false, utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	studentID, err = parseIDParam(c, "studentId")
	if err != nil {
		return 0, false, utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	if !canViewStudent(c, studentID) {
		return 0, false, utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	return studentID, true, nil
}
