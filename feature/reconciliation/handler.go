package reconciliation

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freight-audit/core/logger"
	"freight-audit/core/reconcile"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconciliation")
	group.Post("/run", h.HandleRun)
	group.Post("/audit", h.HandleAuditLine)
	group.Get("/reports", h.HandleListReports)
	group.Get("/reports/:id", h.HandleGetReport)
	group.Delete("/reports/:id", h.HandleDeleteReport)
}

// HandleRun executes a reconciliation run and returns the archived report.
// @Summary Run Reconciliation
// @Description Reconcile stored carrier invoices against customer charges and archive the report.
// @Tags reconciliation
// @Produce json
// @Success 200 {object} reconcile.Report "Reconciliation report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconciliation/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Run(c.Context())
	if err != nil {
		l.Error("Reconciliation run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleAuditLine checks a single carrier invoice line for discrepancies.
// @Summary Audit Invoice Line
// @Description Evaluate one carrier invoice line against the current customer charges.
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param line body reconcile.CarrierInvoiceLine true "Carrier invoice line"
// @Success 200 {object} map[string]interface{} "Audit result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconciliation/audit [post]
func (h *Handler) HandleAuditLine(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var line reconcile.CarrierInvoiceLine
	if err := c.BodyParser(&line); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid invoice line payload",
		})
	}
	if line.TrackingNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "tracking_number is required",
		})
	}

	discrepancies, matched, err := h.service.AuditLine(c.Context(), line)
	if err != nil {
		l.Error("Line audit failed", zap.String("tracking_number", line.TrackingNumber), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if discrepancies == nil {
		discrepancies = []reconcile.Discrepancy{}
	}

	return c.JSON(fiber.Map{
		"tracking_number": line.TrackingNumber,
		"matched":         matched,
		"discrepancies":   discrepancies,
	})
}

// HandleListReports lists the archived reports.
// @Summary List Reports
// @Tags reconciliation
// @Produce json
// @Success 200 {object} map[string][]ReportRef "Archived reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconciliation/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	refs, err := h.service.Reports(c.Context())
	if err != nil {
		l.Error("Report listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"reports": refs})
}

// HandleGetReport fetches one archived report.
// @Summary Get Report
// @Tags reconciliation
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} reconcile.Report "Reconciliation report"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconciliation/reports/{id} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Report(c.Context(), id)
	if errors.Is(err, ErrReportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "report not found",
		})
	}
	if err != nil {
		l.Error("Report fetch failed", zap.String("report_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleDeleteReport removes one archived report.
// @Summary Delete Report
// @Tags reconciliation
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} map[string]string "Deletion result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconciliation/reports/{id} [delete]
func (h *Handler) HandleDeleteReport(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.DeleteReport(c.Context(), id); err != nil {
		l.Error("Report deletion failed", zap.String("report_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"deleted": id})
}
