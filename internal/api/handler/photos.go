package handler

import (
	"log"
	"net/http"
	"strconv"

	"complaintdesk/backend/internal/attachments"
	"complaintdesk/backend/internal/authz"

	"github.com/gin-gonic/gin"
)

// UploadPhotos handles POST /api/photos. The multipart form carries the
// candidate files under "photos" and, optionally, "existing" — how many
// photos the complaint already holds. Files are admitted one by one; a
// rejection reports the file and the limit violated and the batch continues.
func (h *Handler) UploadPhotos(c *gin.Context) {
	p := principal(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	headers := form.File["photos"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	existing, _ := strconv.Atoi(c.PostForm("existing"))

	var files []attachments.File
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read " + fh.Filename})
			return
		}
		defer f.Close()
		files = append(files, attachments.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		})
	}

	addresses, uploadErrs := h.Attachments.UploadBatch(p.ID, files, existing)
	c.JSON(http.StatusOK, gin.H{"uploaded": addresses, "errors": uploadErrs})
}

type removePhotoRequest struct {
	URL string `json:"url" binding:"required"`
}

// RemovePhoto handles DELETE /api/photos. Students may only remove objects
// under their own key prefix; the address leaves the complaint's photo list
// client-side only once this succeeds.
func (h *Handler) RemovePhoto(c *gin.Context) {
	p := principal(c)

	var req removePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if p.Role != authz.RoleAdmin && !attachments.Owns(p.ID, req.URL) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
		return
	}

	if err := h.Attachments.Remove(req.URL); err != nil {
		log.Printf("ERROR: Failed to remove photo %s: %v", req.URL, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove photo"})
		return
	}
	c.Status(http.StatusNoContent)
}
