package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dcamposl/resilient-auth/internal/apperrors"
	"github.com/dcamposl/resilient-auth/internal/models"
)

const (
	maxNameLength  = 100
	maxEmailLength = 150
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// validateUser runs the registration rules against a candidate user. The
// first failing rule wins; presence checks run before length and format
// checks so a missing field never surfaces as a format error.
func validateUser(u *models.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return apperrors.Business(apperrors.UserNameRequired)
	}
	if strings.TrimSpace(u.Email) == "" {
		return apperrors.Business(apperrors.UserEmailRequired)
	}
	if strings.TrimSpace(u.Password) == "" {
		return apperrors.Business(apperrors.UserPasswordRequired)
	}
	if u.IsAdmin == nil {
		return apperrors.Business(apperrors.UserRoleRequired)
	}
	if utf8.RuneCountInString(u.Name) > maxNameLength {
		return apperrors.Business(apperrors.UserNameTooLong)
	}
	if utf8.RuneCountInString(u.Email) > maxEmailLength {
		return apperrors.Business(apperrors.UserEmailTooLong)
	}
	if !emailPattern.MatchString(u.Email) {
		return apperrors.Business(apperrors.UserEmailInvalid)
	}
	return nil
}
