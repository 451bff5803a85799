package complaints_test

import (
	"complaintdesk/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) ListComplaintsByStudent(studentID string) ([]models.Complaint, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaints() ([]models.Complaint, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) UpdateComplaintReview(id, status string, adminNote *string) (*models.Complaint, error) {
	args := m.Called(id, status, adminNote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) DeleteComplaint(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) GetProfile(id string) (*models.Profile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
