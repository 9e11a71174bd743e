package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deepakSingh023/blogclient/models"
)

// Client-side validation blocks a request before it is issued; nothing
// here replaces server-side checks.

var ErrValidation = errors.New("validation failed")

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minPasswordLength = 8
	maxCommentLength  = 1000
	maxTitleLength    = 200
	maxTags           = 5
)

func ValidateLogin(creds models.Credentials) error {
	if !emailRegex.MatchString(creds.Email) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if creds.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

func ValidateRegistration(creds models.Credentials) error {
	if strings.TrimSpace(creds.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if !emailRegex.MatchString(creds.Email) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(creds.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	return nil
}

func ValidateComment(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: comment is empty", ErrValidation)
	}
	if len(content) > maxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, maxCommentLength)
	}
	return nil
}

func ValidateBlogDraft(title string, content string, tags []string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, maxTitleLength)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if len(tags) > maxTags {
		return fmt.Errorf("%w: at most %d tags allowed", ErrValidation, maxTags)
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: empty tag", ErrValidation)
		}
	}
	return nil
}

func ValidateProfileUpdate(update models.ProfileUpdate) error {
	if update.Bio == "" && update.Image == nil {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	return nil
}
