package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"complaintdesk/backend/internal/config"
	"complaintdesk/backend/internal/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Structured store error kinds. Callers branch on these with errors.Is
// instead of matching substrings in backend messages.
var (
	// ErrNotFound: no row matched the given ID.
	ErrNotFound = errors.New("record not found")
	// ErrValueTooLong: a server-side length constraint rejected the write
	// (sqlstate 22001). Client-side validation should have caught it first.
	ErrValueTooLong = errors.New("value exceeds column length")
)

// Storage is the record store surface consumed by the complaint lifecycle.
type Storage interface {
	CreateComplaint(c *models.Complaint) error
	ListComplaintsByStudent(studentID string) ([]models.Complaint, error)
	ListComplaints() ([]models.Complaint, error)
	GetComplaintByID(id string) (*models.Complaint, error)
	UpdateComplaintReview(id, status string, adminNote *string) (*models.Complaint, error)
	DeleteComplaint(id string) error

	GetProfile(id string) (*models.Profile, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor. Redis may be nil (e.g. the admin CLI);
// profile reads then skip the cache.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateComplaint inserts a new complaint row in PostgreSQL.
func (s *Service) CreateComplaint(c *models.Complaint) error {
	if err := s.DB.Create(c).Error; err != nil {
		log.Printf("ERROR: Failed to create complaint for student %s: %v", c.StudentID, err)
		return mapPgError(err)
	}
	return nil
}

// ListComplaintsByStudent returns the student's complaints, newest first.
func (s *Service) ListComplaintsByStudent(studentID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints for student %s: %v", studentID, err)
		return nil, err
	}
	return complaints, nil
}

// ListComplaints returns every complaint, newest first.
func (s *Service) ListComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.Order("created_at DESC").Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

// GetComplaintByID returns a single complaint, or ErrNotFound.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint %s: %v", id, err)
		return nil, err
	}
	return &c, nil
}

// UpdateComplaintReview persists the admin-owned fields (status, admin_note),
// refreshes updated_at, and returns the updated row. No other column is
// touched.
func (s *Service) UpdateComplaintReview(id, status string, adminNote *string) (*models.Complaint, error) {
	result := s.DB.Model(&models.Complaint{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"admin_note": adminNote,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		log.Printf("ERROR: Failed to update complaint %s: %v", id, result.Error)
		return nil, mapPgError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetComplaintByID(id)
}

// DeleteComplaint removes the row permanently. Attached photo objects are
// not cascade-deleted; see the design notes on orphaned attachments.
func (s *Service) DeleteComplaint(id string) error {
	result := s.DB.Where("id = ?", id).Delete(&models.Complaint{})
	if result.Error != nil {
		log.Printf("ERROR: Failed to delete complaint %s: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetProfile returns the identity projection for a principal, read through a
// Redis cache. Profiles are owned by the identity subsystem and never change
// here, so a short TTL is enough.
func (s *Service) GetProfile(id string) (*models.Profile, error) {
	key := "profile:" + id

	if s.Redis != nil {
		cached, err := s.Redis.Get(s.Ctx, key).Result()
		if err == nil {
			var p models.Profile
			if jsonErr := json.Unmarshal([]byte(cached), &p); jsonErr == nil {
				return &p, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("ERROR: Redis lookup failed for %s: %v", key, err)
		}
	}

	var p models.Profile
	err := s.DB.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get profile %s: %v", id, err)
		return nil, err
	}

	if s.Redis != nil {
		if data, jsonErr := json.Marshal(&p); jsonErr == nil {
			ttl := time.Duration(config.ProfileCacheTTLSeconds) * time.Second
			if err := s.Redis.Set(s.Ctx, key, data, ttl).Err(); err != nil {
				log.Printf("ERROR: Redis set failed for %s: %v", key, err)
			}
		}
	}
	return &p, nil
}

// mapPgError converts a PostgreSQL length-constraint violation into a
// structured kind. Anything unrecognized passes through unchanged.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.StringDataRightTruncationDataException:
			return fmt.Errorf("%w: %s", ErrValueTooLong, pgErr.Message)
		case pgerrcode.CheckViolation:
			return fmt.Errorf("%w: %s", ErrValueTooLong, pgErr.ConstraintName)
		}
	}
	return err
}
