// Package subscribe holds the email capture model shared by the HTTP
// surface and its storage backends.
package subscribe

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

// DefaultPlan is recorded when the caller doesn't name a plan.
const DefaultPlan = "unknown"

// ErrInvalidEmail is returned for addresses that fail validation.
var ErrInvalidEmail = errors.New("invalid email")

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Subscriber is one captured email address with its context.
type Subscriber struct {
	Email        string
	Plan         string
	IP           string
	SubscribedAt time.Time
}

// Store persists subscribers.
type Store interface {
	// AddSubscriber records a subscriber. Re-adding the same email
	// overwrites the stored details.
	AddSubscriber(ctx context.Context, sub Subscriber) error
}

// Normalize trims and lowercases an email address.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate reports whether a normalized address looks like an email.
func Validate(email string) error {
	if email == "" || !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
