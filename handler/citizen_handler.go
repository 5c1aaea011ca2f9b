package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"civictrack/middleware"
	"civictrack/models"
	"civictrack/service"
	"civictrack/utils"

	"github.com/gorilla/mux"
)

// multipart overhead allowed on top of the photo payload
const formOverheadBytes = 1 << 20

// CitizenHandler handles endpoints under /api/citizen
type CitizenHandler struct {
	complaintService *service.ComplaintService
	dashboardService *service.DashboardService
}

// NewCitizenHandler creates a new citizen handler
func NewCitizenHandler(complaintService *service.ComplaintService, dashboardService *service.DashboardService) *CitizenHandler {
	return &CitizenHandler{
		complaintService: complaintService,
		dashboardService: dashboardService,
	}
}

// Dashboard handles GET /api/citizen/dashboard
func (h *CitizenHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Not logged in")
		return
	}
	respondWithJSON(w, http.StatusOK, h.dashboardService.CitizenSummary(user.ID))
}

// ListComplaints handles GET /api/citizen/complaints
func (h *CitizenHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Not logged in")
		return
	}
	respondWithJSON(w, http.StatusOK, h.complaintService.GetCitizenComplaints(user.ID))
}

// GetComplaint handles GET /api/citizen/complaints/{id}
func (h *CitizenHandler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Not logged in")
		return
	}
	complaint, err := h.complaintService.GetCitizenComplaint(mux.Vars(r)["id"], user.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, complaint)
}

// Leaderboard handles GET /api/citizen/leaderboard
func (h *CitizenHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.dashboardService.Leaderboard())
}

// CreateComplaint handles POST /api/citizen/complaints.
// The body is multipart/form-data with title, category, description,
// location and up to MaxPhotos "photos" file parts.
func (h *CitizenHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Not logged in")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxPhotos*utils.MaxPhotoBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(formOverheadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Payload too large", "Upload exceeds the allowed size")
			return
		}
		respondWithError(w, http.StatusBadRequest, "Bad Request", "Expected multipart/form-data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["photos"]
	if len(files) > utils.MaxPhotos {
		respondWithError(w, http.StatusBadRequest, "Validation error", utils.ErrTooManyPhotos.Error())
		return
	}

	req := models.SubmitComplaintRequest{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
	}
	photos := make([][]byte, 0, len(files))
	for _, fh := range files {
		data, err := readPhoto(fh)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Validation error", err.Error())
			return
		}
		photos = append(photos, data)
		req.Photos = append(req.Photos, models.PhotoUpload{FileName: fh.Filename, Data: data})
	}
	if err := utils.Validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation error", utils.FormatFieldErrors(utils.FieldErrors(err)))
		return
	}

	complaint, err := h.complaintService.CreateComplaint(user.ID, service.ComplaintInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
	}, photos)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, complaint)
}

func readPhoto(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > utils.MaxPhotoBytes {
		return nil, fmt.Errorf("%s: %w", fh.Filename, utils.ErrPhotoTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: unreadable upload", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, utils.MaxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%s: unreadable upload", fh.Filename)
	}
	if _, err := utils.PhotoExtension(data); err != nil {
		return nil, fmt.Errorf("%s: %w", fh.Filename, err)
	}
	return data, nil
}
