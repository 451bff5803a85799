// Package validation checks raw complaint input against the field constraints
// enforced by the database schema. It is pure: no I/O, no panics on malformed
// input — every bad value comes back as a FieldError.
package validation

import (
	"fmt"
	"strings"

	"complaintdesk/backend/internal/config"
	"complaintdesk/backend/internal/models"
)

// FieldError names a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Message }

// FieldErrors is the full violation set, in declared field order. Callers
// surface only the first entry to the user; the rest stays available for
// programmatic consumers.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Message
}

// First returns the primary (first declared) violation.
func (e FieldErrors) First() FieldError { return e[0] }

// ComplaintInput is the raw creation payload. Status and admin note are not
// part of it: clients cannot supply them, they are forced server-side.
type ComplaintInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// ComplaintUpdate is a validated admin review patch.
type ComplaintUpdate struct {
	Status    string
	AdminNote *string
}

// ValidateComplaintInput trims every string field, then checks them in
// declared order: title, description, category, priority. It returns the
// normalized input or the violation set.
func ValidateComplaintInput(raw ComplaintInput) (ComplaintInput, FieldErrors) {
	out := ComplaintInput{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Category:    strings.TrimSpace(raw.Category),
		Priority:    strings.TrimSpace(raw.Priority),
	}

	var errs FieldErrors
	if n := len([]rune(out.Title)); n < config.TitleMinLen {
		errs = append(errs, FieldError{"title", fmt.Sprintf("Title must be at least %d characters", config.TitleMinLen)})
	} else if n > config.TitleMaxLen {
		errs = append(errs, FieldError{"title", fmt.Sprintf("Title must be less than %d characters", config.TitleMaxLen)})
	}
	if n := len([]rune(out.Description)); n < config.DescriptionMinLen {
		errs = append(errs, FieldError{"description", fmt.Sprintf("Description must be at least %d characters", config.DescriptionMinLen)})
	} else if n > config.DescriptionMaxLen {
		errs = append(errs, FieldError{"description", fmt.Sprintf("Description must be less than %d characters", config.DescriptionMaxLen)})
	}
	if n := len([]rune(out.Category)); n < config.CategoryMinLen {
		errs = append(errs, FieldError{"category", fmt.Sprintf("Category must be at least %d characters", config.CategoryMinLen)})
	} else if n > config.CategoryMaxLen {
		errs = append(errs, FieldError{"category", fmt.Sprintf("Category must be less than %d characters", config.CategoryMaxLen)})
	}
	if !ValidPriority(out.Priority) {
		errs = append(errs, FieldError{"priority", "Priority must be Low, Medium, or High"})
	}

	if errs != nil {
		return ComplaintInput{}, errs
	}
	return out, nil
}

// ValidateComplaintUpdate validates a raw review patch in declared order:
// status, admin_note. Values arrive untyped from JSON; anything that is not
// a string (or null for the note) is a violation, never a cast.
func ValidateComplaintUpdate(raw map[string]any) (ComplaintUpdate, FieldErrors) {
	var out ComplaintUpdate
	var errs FieldErrors

	status, ok := raw["status"].(string)
	if !ok || !ValidStatus(status) {
		errs = append(errs, FieldError{"status", "Status must be Pending, In Review, or Resolved"})
	} else {
		out.Status = status
	}

	if v, present := raw["admin_note"]; present && v != nil {
		note, ok := v.(string)
		if !ok {
			errs = append(errs, FieldError{"admin_note", "Admin note must be text"})
		} else {
			note = strings.TrimSpace(note)
			if len([]rune(note)) > config.AdminNoteMaxLen {
				errs = append(errs, FieldError{"admin_note", fmt.Sprintf("Admin note must be less than %d characters", config.AdminNoteMaxLen)})
			} else if note != "" {
				out.AdminNote = &note
			}
		}
	}

	if errs != nil {
		return ComplaintUpdate{}, errs
	}
	return out, nil
}

// ValidPriority reports whether p is in the closed priority set.
func ValidPriority(p string) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is in the closed status set.
func ValidStatus(s string) bool {
	switch s {
	case models.StatusPending, models.StatusInReview, models.StatusResolved:
		return true
	}
	return false
}
