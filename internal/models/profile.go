package models

// Profile is a read-only projection of a principal, owned by the identity
// subsystem. It is consumed when rendering admin views and never mutated here.
type Profile struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string `gorm:"type:text" json:"name"`
	Email string `gorm:"type:text" json:"email"`
}
