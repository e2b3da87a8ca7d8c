// Package policy holds the validation and authorization rules applied
// before any mutation.
package policy

import (
	"strings"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// Score bounds for reviews.
const (
	MinScore = 1
	MaxScore = 5
)

var (
	ErrNotAuthorized   = errs.Authorization("not authorized")
	ErrScoreOutOfRange = errs.Validation("score out of range")
	ErrInvalidOwner    = errs.Validation("invalid owner")
	ErrInvalidEmail    = errs.Validation("invalid email")
	ErrDuplicateReview = errs.Validation("duplicate review")
	ErrInvalidListing  = errs.Validation("invalid listing fields")
)

// Action is an operation on an owned resource.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Owned is implemented by resources that belong to a single user.
type Owned interface {
	OwnerOf() int64
}

// Authorize decides whether requesterID may perform action on resource.
// Only the owner may update or delete.
func Authorize(resource Owned, requesterID int64, action Action) error {
	if resource.OwnerOf() != requesterID {
		logger.Log.Warnw("authorization denied",
			"action", action,
			"owner_id", resource.OwnerOf(),
			"requester_id", requesterID,
		)
		return ErrNotAuthorized
	}
	return nil
}

// CheckScore rejects scores outside [MinScore, MaxScore].
func CheckScore(score int) error {
	if score < MinScore || score > MaxScore {
		return ErrScoreOutOfRange
	}
	return nil
}

// CheckOwner requires an existing user with the owner role.
func CheckOwner(u *models.User) error {
	if u == nil || u.Role != models.RoleOwner {
		return ErrInvalidOwner
	}
	return nil
}

// CheckStudentEmail requires students to use one of the institutional
// domains. Owners are exempt.
func CheckStudentEmail(role models.Role, email string, domains []string) error {
	if role != models.RoleStudent {
		return nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, d := range domains {
		if d != "" && strings.HasSuffix(email, strings.ToLower(d)) {
			return nil
		}
	}
	return ErrInvalidEmail
}

// CheckListing enforces the numeric invariants of a housing.
func CheckListing(h models.Housing) error {
	if h.Price < 0 || h.Rooms < 0 || h.Bathrooms < 0 || h.Size <= 0 {
		return ErrInvalidListing
	}
	if strings.TrimSpace(h.Title) == "" || strings.TrimSpace(h.Address) == "" {
		return ErrInvalidListing
	}
	return nil
}
