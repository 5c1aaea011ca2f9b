package repository

import (
	"sort"
	"sync"
	"time"

	"civictrack/models"
)

// ComplaintRecord is a stored complaint together with its owner
type ComplaintRecord struct {
	Complaint  models.Complaint
	OwnerID    string
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// ComplaintRepository keeps complaints in memory
type ComplaintRepository struct {
	mu         sync.RWMutex
	complaints map[string]*ComplaintRecord
}

// NewComplaintRepository creates an empty complaint repository
func NewComplaintRepository() *ComplaintRepository {
	return &ComplaintRepository{
		complaints: make(map[string]*ComplaintRecord),
	}
}

// CreateComplaint stores a new complaint record
func (r *ComplaintRepository) CreateComplaint(rec *ComplaintRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.complaints[rec.Complaint.ID]; exists {
		return ErrDuplicate
	}
	r.complaints[rec.Complaint.ID] = cloneRecord(rec)
	return nil
}

// GetComplaintByID retrieves a complaint by ID
func (r *ComplaintRepository) GetComplaintByID(complaintID string) (*ComplaintRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.complaints[complaintID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// GetComplaintsByOwner returns an owner's complaints, newest first
func (r *ComplaintRepository) GetComplaintsByOwner(ownerID string) []ComplaintRecord {
	return r.list(func(rec *ComplaintRecord) bool { return rec.OwnerID == ownerID })
}

// GetAllComplaints returns every complaint, newest first
func (r *ComplaintRepository) GetAllComplaints() []ComplaintRecord {
	return r.list(func(*ComplaintRecord) bool { return true })
}

// UpdateStatus sets a complaint's status if it is still `from` and returns
// the updated record. Transition rules are enforced by the service layer.
func (r *ComplaintRepository) UpdateStatus(complaintID string, from, status models.Status, at time.Time) (*ComplaintRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.complaints[complaintID]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.Complaint.Status != from {
		return nil, ErrStale
	}
	rec.Complaint.Status = status
	rec.UpdatedAt = at
	if status == models.StatusResolved {
		resolvedAt := at
		rec.ResolvedAt = &resolvedAt
	}
	return cloneRecord(rec), nil
}

func (r *ComplaintRepository) list(keep func(*ComplaintRecord) bool) []ComplaintRecord {
	r.mu.RLock()
	out := make([]ComplaintRecord, 0, len(r.complaints))
	for _, rec := range r.complaints {
		if keep(rec) {
			out = append(out, *cloneRecord(rec))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Complaint, out[j].Complaint
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out
}

func cloneRecord(rec *ComplaintRecord) *ComplaintRecord {
	c := *rec
	if rec.Complaint.Photos != nil {
		c.Complaint.Photos = append([]string(nil), rec.Complaint.Photos...)
	}
	if rec.ResolvedAt != nil {
		t := *rec.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}
