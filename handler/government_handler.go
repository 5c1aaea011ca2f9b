package handler

import (
	"net/http"

	"civictrack/models"
	"civictrack/service"

	"github.com/gorilla/mux"
)

// GovernmentHandler handles endpoints under /api/government
type GovernmentHandler struct {
	complaintService *service.ComplaintService
	dashboardService *service.DashboardService
}

// NewGovernmentHandler creates a new government handler
func NewGovernmentHandler(complaintService *service.ComplaintService, dashboardService *service.DashboardService) *GovernmentHandler {
	return &GovernmentHandler{
		complaintService: complaintService,
		dashboardService: dashboardService,
	}
}

// Dashboard handles GET /api/government/dashboard
func (h *GovernmentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.dashboardService.GovernmentDashboard())
}

// ListComplaints handles GET /api/government/complaints
func (h *GovernmentHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.complaintService.GetAllComplaints())
}

// GetComplaint handles GET /api/government/complaints/{id}
func (h *GovernmentHandler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	complaint, err := h.complaintService.GetComplaint(mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, complaint)
}

// UpdateStatus handles PATCH /api/government/complaints/{id}/status.
// Only forward lifecycle transitions are accepted.
func (h *GovernmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	complaint, err := h.complaintService.UpdateComplaintStatus(mux.Vars(r)["id"], req.Status)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, complaint)
}
