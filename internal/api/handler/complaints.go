package handler

import (
	"errors"
	"log"
	"net/http"

	"complaintdesk/backend/internal/complaints"
	"complaintdesk/backend/internal/validation"

	"github.com/gin-gonic/gin"
)

type createComplaintRequest struct {
	validation.ComplaintInput
	// PhotoURLs are addresses returned by earlier photo uploads.
	PhotoURLs []string `json:"photo_urls"`
}

// CreateComplaint handles POST /api/complaints.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.Complaints.Create(principal(c), req.ComplaintInput, req.PhotoURLs)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListOwnComplaints handles GET /api/complaints — the student dashboard.
func (h *Handler) ListOwnComplaints(c *gin.Context) {
	list, err := h.Complaints.ListOwn(principal(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListAllComplaints handles GET /api/admin/complaints — the admin dashboard.
// Status filtering happens client-side over this full list.
func (h *Handler) ListAllComplaints(c *gin.Context) {
	list, err := h.Complaints.ListAll(principal(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetComplaint handles GET /api/complaints/:id. Admin responses include the
// reporting student's profile.
func (h *Handler) GetComplaint(c *gin.Context) {
	p := principal(c)

	complaint, err := h.Complaints.Get(p, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	reporter, err := h.Complaints.Reporter(p, complaint)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if reporter != nil {
		c.JSON(http.StatusOK, gin.H{"complaint": complaint, "reporter": reporter})
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaint": complaint})
}

// UpdateComplaint handles PATCH /api/complaints/:id — the admin review
// path. The body is decoded as a raw map so that a patch touching anything
// beyond status and admin_note is rejected, not silently dropped.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.Complaints.Update(principal(c), c.Param("id"), patch)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteComplaint handles DELETE /api/complaints/:id.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	if err := h.Complaints.Delete(principal(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeServiceError maps lifecycle error kinds to HTTP responses. Validation
// failures surface the first violated constraint verbatim; store failures
// surface a generic message and are logged, never retried.
func writeServiceError(c *gin.Context, err error) {
	var verrs validation.FieldErrors
	if errors.As(err, &verrs) {
		first := verrs.First()
		c.JSON(http.StatusBadRequest, gin.H{"error": first.Message, "field": first.Field})
		return
	}
	if errors.Is(err, complaints.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
		return
	}
	if errors.Is(err, complaints.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	log.Printf("ERROR: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}
