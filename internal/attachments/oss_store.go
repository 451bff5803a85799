package attachments

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"complaintdesk/backend/internal/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStore is the Alibaba OSS implementation of ObjectStore. Objects are
// publicly readable; addresses are plain bucket URLs.
type OSSStore struct {
	bucket     *oss.Bucket
	publicBase string
}

// NewOSSStore connects to the bucket holding complaint photos.
func NewOSSStore(endpoint, accessKeyID, accessKeySecret, bucketName string) (*OSSStore, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", bucketName, err)
	}
	return &OSSStore{
		bucket:     bucket,
		publicBase: fmt.Sprintf("https://%s.%s", bucketName, strings.TrimPrefix(endpoint, "https://")),
	}, nil
}

// Put stores the object under key and returns its public address.
// Overwrites are forbidden: keys embed the upload timestamp, so a collision
// means a caller bug, not a legitimate replace.
func (s *OSSStore) Put(key, contentType string, r io.Reader) (string, error) {
	err := s.bucket.PutObject(key, r,
		oss.ContentType(contentType),
		oss.CacheControl(config.PhotoCacheControl),
		oss.ForbidOverWrite(true),
	)
	if err != nil {
		return "", err
	}
	return s.publicBase + "/" + key, nil
}

// Remove derives the storage key from the retrieval address and deletes the
// object.
func (s *OSSStore) Remove(address string) error {
	u, err := url.Parse(address)
	if err != nil {
		return fmt.Errorf("bad photo address %q: %w", address, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return fmt.Errorf("bad photo address %q: empty key", address)
	}
	return s.bucket.DeleteObject(key)
}
