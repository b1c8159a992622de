package handler

import (
	"time"

	"github.com/commute-microservice/internal/delivery/http/middleware"
	"github.com/commute-microservice/internal/pkg/errors"
	"github.com/commute-microservice/internal/pkg/utils"
	"github.com/commute-microservice/internal/pkg/validator"
	"github.com/commute-microservice/internal/usecase"
	"github.com/commute-microservice/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommuteHandler - обработчик запросов отчёта о поездке
type CommuteHandler struct {
	reportUC usecase.CommuteReporter
	logger   *zap.Logger
}

// NewCommuteHandler - создание нового CommuteHandler
func NewCommuteHandler(reportUC usecase.CommuteReporter, logger *zap.Logger) *CommuteHandler {
	return &CommuteHandler{
		reportUC: reportUC,
		logger:   logger,
	}
}

// CreateReport godoc
// @Summary Построить отчёт о поездке
// @Description Геокодирует почтовый индекс отправления, считает поездку на общественном транспорте до адреса назначения и находит станции (3 км) и начальные школы (1 км) с пешеходным расстоянием. Если индекс не найден, возвращается отчёт с origin_resolved=false.
// @Tags Commute
// @Accept json
// @Produce json
// @Param request body dto.CommuteReportRequest true "Индекс отправления и адрес назначения"
// @Success 200 {object} utils.SuccessResponse{data=dto.CommuteReportResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/commute/report [post]
func (h *CommuteHandler) CreateReport(c *fiber.Ctx) error {
	var req dto.CommuteReportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "invalid JSON",
		}))
	}

	return h.buildReport(c, req)
}

// CreateReportGET godoc
// @Summary Построить отчёт о поездке (GET)
// @Description То же, что POST /api/v1/commute/report, параметры в query string
// @Tags Commute
// @Produce json
// @Param origin_postcode query string true "Почтовый индекс отправления" example(BR76PT)
// @Param destination_address query string true "Адрес назначения" example(SW1W 0DT)
// @Success 200 {object} utils.SuccessResponse{data=dto.CommuteReportResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/commute/report [get]
func (h *CommuteHandler) CreateReportGET(c *fiber.Ctx) error {
	var req dto.CommuteReportRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	return h.buildReport(c, req)
}

// GetReport godoc
// @Summary Получить отчёт из архива
// @Tags Commute
// @Produce json
// @Param id path string true "ID отчёта (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.CommuteReportResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 501 {object} utils.ErrorResponse
// @Router /api/v1/commute/reports/{id} [get]
func (h *CommuteHandler) GetReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": "must be a UUID",
		}))
	}

	result, err := h.reportUC.GetReport(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		RequestID: middleware.GetRequestID(c),
	})
}

func (h *CommuteHandler) buildReport(c *fiber.Ctx, req dto.CommuteReportRequest) error {
	start := time.Now()

	req.Normalize()
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.reportUC.CreateReport(c.Context(), req)
	if err != nil {
		h.logger.Warn("Commute report failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     len(result.Report.Stations) + len(result.Report.PrimarySchools),
		RequestID: middleware.GetRequestID(c),
		TimeMSec:  float64(time.Since(start).Microseconds()) / 1000,
	})
}
