package config

const (
	// Field bounds (applied after trimming)
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 1000
	CategoryMinLen    = 3
	CategoryMaxLen    = 50
	AdminNoteMaxLen   = 300

	// Photo attachments
	MaxPhotos     = 5
	MaxPhotoBytes = 5 * 1024 * 1024

	// Cache-Control applied to uploaded photo objects
	PhotoCacheControl = "max-age=3600"

	// TTL in seconds for cached profile projections in Redis
	ProfileCacheTTLSeconds = 600
)

// Categories is the canonical set offered to students. The category field
// itself stays free-form text within its length bounds.
var Categories = []string{
	"Technical Issue",
	"Faculty",
	"Infrastructure",
	"Course Content",
	"Administrative",
	"Other",
}
