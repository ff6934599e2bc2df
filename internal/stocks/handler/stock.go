package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"library/internal/stocks/calendar"
	"library/internal/stocks/service"
	apperrors "library/pkg/errors"
	httputil "library/pkg/http"
	"library/pkg/logger"
	"library/pkg/model"
)

type StockHandler struct {
	service service.StockService
	loc     *time.Location
	log     *logger.Logger
}

func NewStockHandler(service service.StockService, loc *time.Location, log *logger.Logger) *StockHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &StockHandler{
		service: service,
		loc:     loc,
		log:     log,
	}
}

func (h *StockHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/stocks", h.GetAll)
	router.POST("/api/v1/stocks", h.Create)
	router.GET("/api/v1/stocks/id/:id", h.GetByID)
	router.PUT("/api/v1/stocks/id/:id", h.Update)
	router.GET("/api/v1/stocks/calendar", h.Calendar)
}

func (h *StockHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	availableOnly, err := httputil.ExtractBool(r, "available")
	if err != nil {
		h.writeError(w, r, "GetAll", err)
		return
	}

	var stocks []*model.Stock
	if availableOnly {
		stocks, err = h.service.FindAvailableAll(r.Context())
	} else {
		stocks, err = h.service.FindAll(r.Context())
	}
	if err != nil {
		h.writeError(w, r, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, stocks); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StockHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	stock, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}
	if stock == nil {
		h.writeError(w, r, "GetByID", apperrors.NotFoundWithID("Stock", id, "Stock record not found."))
		return
	}

	if err := httputil.WriteSuccess(w, stock); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	stock, err := h.service.Save(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, stock); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req model.StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Update(r.Context(), id, &req); err != nil {
		h.writeError(w, r, "Update", err)
		return
	}

	httputil.WriteNoContent(w)
}

// Calendar renders the month view. year and month default to the current month.
func (h *StockHandler) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	year, month, err := httputil.ExtractYearMonth(r, h.loc)
	if err != nil {
		h.writeError(w, r, "Calendar", err)
		return
	}
	if month < 1 || month > 12 {
		h.writeError(w, r, "Calendar", apperrors.InvalidInput("month must be between 1 and 12"))
		return
	}
	daysInMonth := calendar.DaysIn(year, month)

	daysOfWeek, err := h.service.GenerateDaysOfWeek(year, month, daysInMonth)
	if err != nil {
		h.writeError(w, r, "Calendar", err)
		return
	}

	values, err := h.service.GenerateValues(r.Context(), year, month, daysInMonth)
	if err != nil {
		h.writeError(w, r, "Calendar", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.Calendar{
		Year:       year,
		Month:      month,
		DaysOfWeek: daysOfWeek,
		Values:     values,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Calendar", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StockHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if appErr := apperrors.AsAppError(err); appErr.Code == apperrors.CodeInternal {
		h.log.FromContext(r.Context()).Error("request failed", "handler", handler, "error", err)
	}
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
