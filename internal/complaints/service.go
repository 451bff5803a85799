// Package complaints implements the complaint lifecycle: the state machine
// over status and admin_note, and the CRUD surface composing validation,
// sanitization, authorization, and the record store.
package complaints

import (
	"errors"

	"complaintdesk/backend/internal/authz"
	"complaintdesk/backend/internal/config"
	"complaintdesk/backend/internal/models"
	"complaintdesk/backend/internal/sanitize"
	"complaintdesk/backend/internal/storage"
	"complaintdesk/backend/internal/validation"

	"github.com/lib/pq"
)

// Service handles the business logic for complaints.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new complaint service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Create files a new complaint for a student principal. Status and admin
// note are forced server-side (Pending, null) — any such values in the raw
// input were never part of ComplaintInput to begin with. photoURLs must come
// from prior attachment uploads; at most 5 attach.
func (s *Service) Create(p authz.Principal, raw validation.ComplaintInput, photoURLs []string) (*models.Complaint, error) {
	if !authz.CanCreate(p) {
		return nil, ErrForbidden
	}

	input, verrs := validation.ValidateComplaintInput(raw)
	if verrs != nil {
		return nil, verrs
	}
	if len(photoURLs) > config.MaxPhotos {
		return nil, validation.FieldErrors{{Field: "photo_urls", Message: "You can only upload up to 5 photos"}}
	}

	c := &models.Complaint{
		StudentID:   p.ID,
		Title:       input.Title,
		Description: sanitize.Clean(input.Description),
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      models.StatusPending,
		AdminNote:   nil,
		PhotoURLs:   pq.StringArray(photoURLs),
	}
	if err := s.Storage.CreateComplaint(c); err != nil {
		return nil, &StoreError{Op: "create", Err: err}
	}
	return c, nil
}

// ListOwn returns the principal's own complaints, newest first.
func (s *Service) ListOwn(p authz.Principal) ([]models.Complaint, error) {
	complaints, err := s.Storage.ListComplaintsByStudent(p.ID)
	if err != nil {
		return nil, &StoreError{Op: "list own", Err: err}
	}
	return complaints, nil
}

// ListAll returns every complaint, newest first. Admins only. Filtering by
// status is a view concern on the caller's side, not a separate query.
func (s *Service) ListAll(p authz.Principal) ([]models.Complaint, error) {
	if p.Role != authz.RoleAdmin {
		return nil, ErrForbidden
	}
	complaints, err := s.Storage.ListComplaints()
	if err != nil {
		return nil, &StoreError{Op: "list all", Err: err}
	}
	return complaints, nil
}

// Get returns one complaint. A missing record is ErrNotFound; an existing
// record the principal may not read is a generic ErrForbidden.
func (s *Service) Get(p authz.Principal, id string) (*models.Complaint, error) {
	c, err := s.Storage.GetComplaintByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}
	if !authz.CanRead(p, c) {
		return nil, ErrForbidden
	}
	return c, nil
}

// Reporter returns the owning student's profile for admin detail views.
// Non-admin principals get nothing — the projection is admin-facing.
func (s *Service) Reporter(p authz.Principal, c *models.Complaint) (*models.Profile, error) {
	if p.Role != authz.RoleAdmin {
		return nil, nil
	}
	profile, err := s.Storage.GetProfile(c.StudentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "get profile", Err: err}
	}
	return profile, nil
}

// Update applies an admin review patch. The raw patch's field set must be
// confined to status and admin_note — anything else is an authorization
// failure for any principal. The admin note is sanitized after validation
// and before persistence; updated_at refreshes on success.
func (s *Service) Update(p authz.Principal, id string, rawPatch map[string]any) (*models.Complaint, error) {
	fields := make([]string, 0, len(rawPatch))
	for f := range rawPatch {
		fields = append(fields, f)
	}
	if !authz.CanUpdate(p, nil, fields) {
		return nil, ErrForbidden
	}

	patch, verrs := validation.ValidateComplaintUpdate(rawPatch)
	if verrs != nil {
		return nil, verrs
	}

	note := patch.AdminNote
	if note != nil {
		clean := sanitize.Clean(*note)
		note = &clean
	}

	updated, err := s.Storage.UpdateComplaintReview(id, patch.Status, note)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "update", Err: err}
	}
	return updated, nil
}

// Delete removes a complaint permanently. Admins only. Attached photo
// objects are left behind in the object store.
func (s *Service) Delete(p authz.Principal, id string) error {
	if !authz.CanDelete(p, nil) {
		return ErrForbidden
	}
	err := s.Storage.DeleteComplaint(id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	return nil
}
