package models_test

import (
	"testing"

	"complaintdesk/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestComplaintBeforeCreate_AssignsUUID verifies the hook fills in a valid
// UUID when the ID is empty and leaves a preset ID alone.
func TestComplaintBeforeCreate_AssignsUUID(t *testing.T) {
	c := &models.Complaint{}
	err := c.BeforeCreate(nil)

	assert.NoError(t, err)
	_, parseErr := uuid.Parse(c.ID)
	assert.NoError(t, parseErr, "generated ID should be a valid UUID")

	preset := &models.Complaint{ID: "fixed-id"}
	assert.NoError(t, preset.BeforeCreate(nil))
	assert.Equal(t, "fixed-id", preset.ID)
}
