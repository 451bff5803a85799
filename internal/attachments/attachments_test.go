package attachments_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"complaintdesk/backend/internal/attachments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a testify mock of the attachments.ObjectStore interface.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(key, contentType string, r io.Reader) (string, error) {
	args := m.Called(key, contentType, r)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Remove(address string) error {
	args := m.Called(address)
	return args.Error(0)
}

func photo(name string, size int64) attachments.File {
	return attachments.File{
		Name:        name,
		ContentType: "image/jpeg",
		Size:        size,
		Content:     strings.NewReader("jpegdata"),
	}
}

// TestUpload_KeyIsOwnerScopedWithExtension: accepted objects are keyed by
// owner and upload timestamp, keeping the original extension.
func TestUpload_KeyIsOwnerScopedWithExtension(t *testing.T) {
	storeMock := new(MockObjectStore)
	svc := attachments.NewService(storeMock)

	storeMock.On("Put", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "owner-1/") && strings.HasSuffix(key, ".jpg")
	}), "image/jpeg", mock.Anything).Return("https://photos.example/owner-1/1.jpg", nil).Once()

	address, err := svc.Upload("owner-1", photo("lab.jpg", 1024), 0)

	assert.NoError(t, err)
	assert.Equal(t, "https://photos.example/owner-1/1.jpg", address)
	storeMock.AssertExpectations(t)
}

// TestUpload_RejectsNonImage: admission precedes any store call.
func TestUpload_RejectsNonImage(t *testing.T) {
	storeMock := new(MockObjectStore)
	svc := attachments.NewService(storeMock)

	f := photo("notes.pdf", 1024)
	f.ContentType = "application/pdf"

	_, err := svc.Upload("owner-1", f, 0)

	var ue *attachments.UploadError
	assert.ErrorAs(t, err, &ue)
	assert.Equal(t, "notes.pdf", ue.FileName)
	assert.Contains(t, ue.Reason, "not an image")
	storeMock.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

// TestUpload_RejectsOversize: files above 5 MiB never reach the store.
func TestUpload_RejectsOversize(t *testing.T) {
	storeMock := new(MockObjectStore)
	svc := attachments.NewService(storeMock)

	_, err := svc.Upload("owner-1", photo("huge.jpg", 5*1024*1024+1), 0)

	var ue *attachments.UploadError
	assert.ErrorAs(t, err, &ue)
	assert.Equal(t, "huge.jpg", ue.FileName)
	assert.Contains(t, ue.Reason, "5MB")
	storeMock.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

// TestUpload_RejectsSixthPhoto: a complaint already holding 5 photos admits
// nothing more, and the existing 5 are untouched.
func TestUpload_RejectsSixthPhoto(t *testing.T) {
	storeMock := new(MockObjectStore)
	svc := attachments.NewService(storeMock)

	_, err := svc.Upload("owner-1", photo("sixth.jpg", 1024), 5)

	var ue *attachments.UploadError
	assert.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Reason, "maximum 5 photos")
	storeMock.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

// TestUploadBatch_RejectionDoesNotAbortSiblings: each file is admitted
// independently; a bad file in the middle leaves earlier and later
// acceptances intact, and addresses append in upload order.
func TestUploadBatch_RejectionDoesNotAbortSiblings(t *testing.T) {
	storeMock := new(MockObjectStore)
	svc := attachments.NewService(storeMock)

	calls := 0
	storeMock.On("Put", mock.Anything, "image/jpeg", mock.Anything).
		Run(func(args mock.Arguments) { calls++ }).
		Return("https://photos.example/owner-1/ok.jpg", nil)

	bad := photo("huge.jpg", 6*1024*1024)
	files := []attachments.File{photo("a.jpg", 100), bad, photo("b.jpg", 100)}

	addresses, uploadErrs := svc.UploadBatch("owner-1", files, 0)

	assert.Len(t, addresses, 2)
	assert.Len(t, uploadErrs, 1)
	assert.Equal(t, "huge.jpg", uploadErrs[0].FileName)
	assert.Equal(t, 2, calls)
}

// TestUploadBatch_CountsExistingPhotos: the cap covers photos already
// attached plus this batch's acceptances.
func TestUploadBatch_CountsExistingPhotos(t *testing.T) {
	storeMock := new(MockObjectStore)
	svc := attachments.NewService(storeMock)

	storeMock.On("Put", mock.Anything, "image/jpeg", mock.Anything).
		Return("https://photos.example/owner-1/ok.jpg", nil)

	files := []attachments.File{
		photo("a.jpg", 100), photo("b.jpg", 100), photo("c.jpg", 100),
	}

	// 4 already attached: only one slot left.
	addresses, uploadErrs := svc.UploadBatch("owner-1", files, 4)

	assert.Len(t, addresses, 1)
	assert.Len(t, uploadErrs, 2)
	for _, ue := range uploadErrs {
		assert.Contains(t, ue.Reason, "maximum 5 photos")
	}
}

// TestRemove_StoreFailureSurfaces: a failed deletion comes back to the
// caller, who keeps the address in photo_urls until the store confirms.
func TestRemove_StoreFailureSurfaces(t *testing.T) {
	storeMock := new(MockObjectStore)
	svc := attachments.NewService(storeMock)

	boom := errors.New("backend unavailable")
	storeMock.On("Remove", "https://photos.example/owner-1/1.jpg").Return(boom).Once()

	err := svc.Remove("https://photos.example/owner-1/1.jpg")

	assert.ErrorIs(t, err, boom)
}

// TestOwns: students may only touch addresses under their own key prefix,
// judged by the URL path — the same part the store derives the deletion key
// from. An owner ID planted in the fragment or query must not grant access
// to someone else's object, and traversal segments never pass.
func TestOwns(t *testing.T) {
	assert.True(t, attachments.Owns("owner-1", "https://photos.example/owner-1/17000.jpg"))

	assert.False(t, attachments.Owns("owner-2", "https://photos.example/owner-1/17000.jpg"))
	assert.False(t, attachments.Owns("owner-1", "not a url"))
	assert.False(t, attachments.Owns("", "https://photos.example//x.jpg"))

	// Crafted addresses: the deletion key would be owner-1's object.
	assert.False(t, attachments.Owns("owner-2", "https://photos.example/owner-1/17000.jpg#/owner-2/"))
	assert.False(t, attachments.Owns("owner-2", "https://photos.example/owner-1/17000.jpg?x=/owner-2/"))
	assert.False(t, attachments.Owns("owner-2", "https://photos.example/owner-2/../owner-1/17000.jpg"))
}

// Keys embed the upload timestamp; two uploads in the same batch must not
// collide even within one millisecond, so this just pins the key shape.
func TestUpload_KeyShape(t *testing.T) {
	storeMock := new(MockObjectStore)
	svc := attachments.NewService(storeMock)

	var gotKey string
	storeMock.On("Put", mock.Anything, "image/png", mock.Anything).
		Run(func(args mock.Arguments) { gotKey = args.String(0) }).
		Return("https://photos.example/owner-9/x.png", nil).Once()

	f := attachments.File{Name: "door.png", ContentType: "image/png", Size: 10, Content: strings.NewReader("png")}
	_, err := svc.Upload("owner-9", f, 0)

	assert.NoError(t, err)
	parts := strings.SplitN(gotKey, "/", 2)
	assert.Equal(t, "owner-9", parts[0])
	assert.True(t, strings.HasSuffix(parts[1], ".png"))

	ts := strings.TrimSuffix(parts[1], ".png")
	_, parseErr := time.ParseDuration(ts + "ms")
	assert.NoError(t, parseErr, "key timestamp should be numeric milliseconds")
}
