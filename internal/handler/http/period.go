package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PeriodHandler interface {
	Containing(w http.ResponseWriter, r *http.Request)
	Next(w http.ResponseWriter, r *http.Request)
	Previous(w http.ResponseWriter, r *http.Request)
	InYear(w http.ResponseWriter, r *http.Request)
}

type periodHandlerImpl struct {
	periods *period.Calculator
}

func NewPeriodHandler(periods *period.Calculator) PeriodHandler {
	return &periodHandlerImpl{periods: periods}
}

// Containing implements PeriodHandler.
func (h *periodHandlerImpl) Containing(w http.ResponseWriter, r *http.Request) {
	d, err := period.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, period.ToResponse(h.periods.Containing(d)))
}

// Next implements PeriodHandler.
func (h *periodHandlerImpl) Next(w http.ResponseWriter, r *http.Request) {
	p, err := h.periods.ParseStart(chi.URLParam(r, "start"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, period.ToResponse(h.periods.Next(p)))
}

// Previous implements PeriodHandler.
func (h *periodHandlerImpl) Previous(w http.ResponseWriter, r *http.Request) {
	p, err := h.periods.ParseStart(chi.URLParam(r, "start"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, period.ToResponse(h.periods.Previous(p)))
}

// InYear implements PeriodHandler.
func (h *periodHandlerImpl) InYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.HandleError(w, period.ErrInvalidYear)
		return
	}

	periods, err := h.periods.InYear(year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]period.Response, 0, len(periods))
	for _, p := range periods {
		result = append(result, period.ToResponse(p))
	}
	response.Success(w, result)
}
