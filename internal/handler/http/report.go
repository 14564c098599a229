package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	EmployeeYTD(w http.ResponseWriter, r *http.Request)
	CompanySummary(w http.ResponseWriter, r *http.Request)
	AlphalistCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// yearParam returns 0 for a missing or malformed year so validation reports it.
func yearParam(r *http.Request) int {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0
	}
	return year
}

func (h *reportHandlerImpl) EmployeeYTD(w http.ResponseWriter, r *http.Request) {
	req := report.EmployeeYTDRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Year:       yearParam(r),
	}

	result, err := h.reportService.EmployeeYTD(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) CompanySummary(w http.ResponseWriter, r *http.Request) {
	req := report.CompanySummaryRequest{Year: yearParam(r)}

	result, err := h.reportService.CompanySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) AlphalistCSV(w http.ResponseWriter, r *http.Request) {
	req := report.CompanySummaryRequest{Year: yearParam(r)}

	// buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.reportService.WriteAlphalistCSV(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="alphalist-%d.csv"`, req.Year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
