package domain

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

const (
	NotifArtApproved   = "ART_APPROVED"
	NotifArtRejected   = "ART_REJECTED"
	NotifReviewBacklog = "REVIEW_BACKLOG"
)

// Default caps mirrored by the settings row defaults.
const (
	DefaultMaxSubmissionsPerDay = 5
	DefaultVisibleLimit         = 10
	ReviewListLimit             = 25
	AutocompleteLimit           = 25
)

// MaxMediaURLLen bounds stored media URLs.
const MaxMediaURLLen = 2048

func IsStaffRole(role string) bool {
	return role == RoleAdmin || role == RoleModerator
}
