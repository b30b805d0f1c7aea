package carrier

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freight-audit/core/logger"
)

// Handler handles HTTP requests for carrier ingestion.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the carrier routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/carriers")
	group.Get("/", h.HandleListCarriers)
	group.Post("/:code/ingest", h.HandleIngest)
}

// HandleListCarriers lists the carrier codes available for ingestion.
// @Summary List Carriers
// @Tags carriers
// @Produce json
// @Success 200 {object} map[string][]string "Carrier codes"
// @Router /carriers [get]
func (h *Handler) HandleListCarriers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"carriers": h.service.Carriers()})
}

// HandleIngest fetches and stores a carrier's invoice lines for a period.
// @Summary Ingest Carrier Invoices
// @Description Fetch invoice lines from the carrier's billing API for the given period and store them.
// @Tags carriers
// @Produce json
// @Param code path string true "Carrier code (e.g. 'ups')"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Ingestion result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /carriers/{code}/ingest [post]
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	code := c.Params("code")
	l := logger.WithRayID(h.service.logger, c)

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'from' date, expected YYYY-MM-DD",
		})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid 'to' date, expected YYYY-MM-DD",
		})
	}

	count, err := h.service.Ingest(c.Context(), code, from, to)
	if err != nil {
		l.Error("Carrier ingestion failed", zap.String("carrier", code), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"carrier": code,
		"lines":   count,
	})
}
