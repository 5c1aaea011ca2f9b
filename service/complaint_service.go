package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"civictrack/models"
	"civictrack/repository"
	"civictrack/utils"

	"github.com/google/uuid"
)

// ComplaintInput holds the text fields of a complaint submission
type ComplaintInput struct {
	Title       string
	Category    string
	Description string
	Location    string
}

// ComplaintService handles complaint submission, lookup and status changes
type ComplaintService struct {
	complaintRepo  *repository.ComplaintRepository
	userRepo       *repository.UserRepository
	metrics        *MetricsService
	uploadBasePath string
	now            func() time.Time
	newID          func() string
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaintRepo *repository.ComplaintRepository,
	userRepo *repository.UserRepository,
	metrics *MetricsService,
	uploadBasePath string,
) *ComplaintService {
	return &ComplaintService{
		complaintRepo:  complaintRepo,
		userRepo:       userRepo,
		metrics:        metrics,
		uploadBasePath: uploadBasePath,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
	}
}

// CreateComplaint stores a citizen's complaint. New complaints always start Pending.
func (s *ComplaintService) CreateComplaint(ownerID string, in ComplaintInput, photos [][]byte) (*models.Complaint, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(photos) > utils.MaxPhotos {
		return nil, fmt.Errorf("%w: %v", ErrValidation, utils.ErrTooManyPhotos)
	}
	for _, data := range photos {
		if _, err := utils.PhotoExtension(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	complaint := models.Complaint{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Location:    strings.TrimSpace(in.Location),
		Status:      models.StatusPending,
		CreatedAt:   s.now(),
	}
	for i, data := range photos {
		p, err := utils.SavePhoto(s.uploadBasePath, complaint.ID, i, data)
		if err != nil {
			s.removePhotos(complaint.Photos)
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		complaint.Photos = append(complaint.Photos, p)
	}

	rec := &repository.ComplaintRecord{
		Complaint: complaint,
		OwnerID:   ownerID,
		UpdatedAt: complaint.CreatedAt,
	}
	if err := s.complaintRepo.CreateComplaint(rec); err != nil {
		s.removePhotos(complaint.Photos)
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	s.metrics.EmitComplaintCreated(categoryLabel(complaint.Category))
	slog.Info("complaint created", "complaint_id", complaint.ID, "user_id", ownerID, "photos", len(complaint.Photos))
	return &complaint, nil
}

// GetCitizenComplaints returns a citizen's own complaints, newest first
func (s *ComplaintService) GetCitizenComplaints(ownerID string) []models.Complaint {
	return complaintsOf(s.complaintRepo.GetComplaintsByOwner(ownerID))
}

// GetCitizenComplaint returns one of the citizen's own complaints. Other
// citizens' complaints are reported as not found.
func (s *ComplaintService) GetCitizenComplaint(complaintID, ownerID string) (*models.Complaint, error) {
	rec, err := s.complaintRepo.GetComplaintByID(complaintID)
	if err != nil || rec.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &rec.Complaint, nil
}

// GetAllComplaints returns every complaint with its submitter, for government officials
func (s *ComplaintService) GetAllComplaints() []models.Complaint {
	recs := s.complaintRepo.GetAllComplaints()
	out := make([]models.Complaint, 0, len(recs))
	for i := range recs {
		out = append(out, s.withSubmitter(&recs[i]))
	}
	return out
}

// GetComplaint returns any complaint with its submitter
func (s *ComplaintService) GetComplaint(complaintID string) (*models.Complaint, error) {
	rec, err := s.complaintRepo.GetComplaintByID(complaintID)
	if err != nil {
		return nil, ErrNotFound
	}
	c := s.withSubmitter(rec)
	return &c, nil
}

// UpdateComplaintStatus moves a complaint forward in its lifecycle.
// Allowed: Pending → Approved, Approved → In Progress, Approved/In Progress → Resolved.
func (s *ComplaintService) UpdateComplaintStatus(complaintID, newStatus string) (*models.Complaint, error) {
	status, ok := models.ParseStatus(strings.TrimSpace(newStatus))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	rec, err := s.complaintRepo.GetComplaintByID(complaintID)
	if err != nil {
		return nil, ErrNotFound
	}
	oldStatus := rec.Complaint.Status
	if !CanTransition(oldStatus, status) {
		return nil, fmt.Errorf("%w: cannot change from %s to %s", ErrInvalidTransition, oldStatus, status)
	}

	updated, err := s.complaintRepo.UpdateStatus(complaintID, oldStatus, status, s.now())
	if errors.Is(err, repository.ErrStale) {
		return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
	}
	if err != nil {
		return nil, ErrNotFound
	}
	s.metrics.EmitStatusChanged(oldStatus, status, updated.Complaint.CreatedAt)
	slog.Info("complaint status changed", "complaint_id", complaintID, "from", oldStatus, "to", status)

	c := s.withSubmitter(updated)
	return &c, nil
}

func (s *ComplaintService) withSubmitter(rec *repository.ComplaintRecord) models.Complaint {
	c := rec.Complaint
	if user, err := s.userRepo.GetUserByID(rec.OwnerID); err == nil {
		c.User = user.Summary()
	}
	return c
}

// removePhotos deletes photos stored for a complaint that was never saved
func (s *ComplaintService) removePhotos(paths []string) {
	for _, p := range paths {
		if err := utils.RemovePhoto(s.uploadBasePath, p); err != nil {
			slog.Warn("failed to remove orphaned photo", "path", p, "error", err)
		}
	}
}

// categoryLabel bounds the metric label to the category catalogue.
// Free-form categories are counted as DefaultCategory.
func categoryLabel(category string) string {
	for _, known := range models.ComplaintCategories {
		if category == known {
			return category
		}
	}
	return models.DefaultCategory
}
