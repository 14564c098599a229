package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
)

type ContributionHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	SaveTables(w http.ResponseWriter, r *http.Request)
}

type contributionHandlerImpl struct {
	contributionService contribution.ContributionService
}

func NewContributionHandler(contributionService contribution.ContributionService) ContributionHandler {
	return &contributionHandlerImpl{contributionService: contributionService}
}

func (h *contributionHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	req := contribution.PreviewRequest{
		MonthlySalary: r.URL.Query().Get("monthly_salary"),
		Date:          r.URL.Query().Get("date"),
	}

	result, err := h.contributionService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *contributionHandlerImpl) SaveTables(w http.ResponseWriter, r *http.Request) {
	var tables contribution.TableSet
	if err := json.NewDecoder(r.Body).Decode(&tables); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.contributionService.SaveTables(r.Context(), tables); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Statutory tables saved", nil)
}
