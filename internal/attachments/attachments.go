// Package attachments governs the bounded collection of photos attached to a
// complaint: upload admission control, address assignment, and removal.
package attachments

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"complaintdesk/backend/internal/config"
)

// ObjectStore is the binary blob storage behind photo attachments. Put
// returns the dereferenceable public address of the stored object.
type ObjectStore interface {
	Put(key, contentType string, r io.Reader) (string, error)
	Remove(address string) error
}

// UploadError is a per-file admission rejection. It names the offending file
// and the limit that was violated; sibling uploads in the batch continue.
type UploadError struct {
	FileName string `json:"file"`
	Reason   string `json:"error"`
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %s", e.FileName, e.Reason)
}

// File is one candidate upload: declared metadata plus the content reader.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type Service struct {
	Store ObjectStore

	// now is swappable in tests; object keys embed the upload timestamp.
	now func() time.Time
}

func NewService(store ObjectStore) *Service {
	return &Service{Store: store, now: time.Now}
}

// Upload admits and stores a single file for the given owner. existingCount
// is how many photos the complaint already holds. Admission runs before any
// network call: media type, size, then count.
func (s *Service) Upload(ownerID string, f File, existingCount int) (string, error) {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return "", &UploadError{f.Name, "not an image file"}
	}
	if f.Size > config.MaxPhotoBytes {
		return "", &UploadError{f.Name, fmt.Sprintf("too large, maximum size is %dMB", config.MaxPhotoBytes/(1024*1024))}
	}
	if existingCount >= config.MaxPhotos {
		return "", &UploadError{f.Name, fmt.Sprintf("maximum %d photos allowed", config.MaxPhotos)}
	}

	// Owner-scoped key with the upload timestamp avoids collisions while
	// keeping the original extension.
	key := fmt.Sprintf("%s/%d%s", ownerID, s.now().UnixMilli(), filepath.Ext(f.Name))

	address, err := s.Store.Put(key, f.ContentType, f.Content)
	if err != nil {
		return "", &UploadError{f.Name, "upload failed"}
	}
	return address, nil
}

// UploadBatch stores each admissible file in order and collects per-file
// rejections. A late rejection never disturbs an earlier acceptance, and new
// addresses only ever append.
func (s *Service) UploadBatch(ownerID string, files []File, existingCount int) ([]string, []*UploadError) {
	var addresses []string
	var uploadErrs []*UploadError

	for _, f := range files {
		address, err := s.Upload(ownerID, f, existingCount+len(addresses))
		if err != nil {
			var ue *UploadError
			if !errors.As(err, &ue) {
				ue = &UploadError{f.Name, "upload failed"}
			}
			uploadErrs = append(uploadErrs, ue)
			continue
		}
		addresses = append(addresses, address)
	}
	return addresses, uploadErrs
}

// Remove deletes the stored object behind the address. The caller drops the
// address from photo_urls only after this succeeds, so a store failure never
// corrupts the sequence.
func (s *Service) Remove(address string) error {
	return s.Store.Remove(address)
}

// Owns reports whether the address lives under the owner's key prefix.
// Students may only remove their own uploads. The check mirrors how the
// store derives the deletion key — the URL path alone — so an owner ID
// smuggled into the query or fragment proves nothing. The first path
// segment must be exactly the owner, and traversal segments are refused.
func Owns(ownerID, address string) bool {
	if ownerID == "" {
		return false
	}
	u, err := url.Parse(address)
	if err != nil {
		return false
	}
	segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] != ownerID {
		return false
	}
	for _, seg := range segments {
		if seg == "" || seg == ".." {
			return false
		}
	}
	return true
}
