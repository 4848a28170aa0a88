// Package gate decides whether a navigation may render, must wait, or must
// redirect, based on the caller's session and onboarding state.
package gate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Redirect targets understood by the client router
const (
	PathAuth        = "/auth"
	PathVerifyEmail = "/verify-email"
	PathOnboarding  = "/onboarding"
	PathHome        = "/home"
)

// Session is the caller's identity as resolved for a single evaluation
type Session struct {
	// Pending is true while the session source has not resolved yet
	Pending         bool
	UserID          uuid.UUID
	EmailVerifiedAt *time.Time
}

// UserPresent reports whether the session belongs to a signed-in user
func (s Session) UserPresent() bool {
	return s.UserID != uuid.Nil
}

// Onboarding is the resolved onboarding state of the session's user
type Onboarding int

const (
	OnboardingUnresolved Onboarding = iota
	OnboardingIncomplete
	OnboardingCompleted
)

func (o Onboarding) String() string {
	switch o {
	case OnboardingIncomplete:
		return "incomplete"
	case OnboardingCompleted:
		return "completed"
	default:
		return "unresolved"
	}
}

// Level selects how much of the sequence a route requires
type Level int

const (
	// RequireSession only needs a signed-in user
	RequireSession Level = iota + 1
	// RequireVerified also needs a verified email
	RequireVerified
	// RequireOnboarded also needs completed onboarding
	RequireOnboarded
)

// ParseLevel maps the query form of a level to its value
func ParseLevel(s string) (Level, error) {
	switch s {
	case "session":
		return RequireSession, nil
	case "verified":
		return RequireVerified, nil
	case "onboarded", "":
		return RequireOnboarded, nil
	default:
		return 0, fmt.Errorf("unknown gate level %q", s)
	}
}

func (l Level) String() string {
	switch l {
	case RequireSession:
		return "session"
	case RequireVerified:
		return "verified"
	case RequireOnboarded:
		return "onboarded"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Kind tags a Decision
type Kind int

const (
	KindLoading Kind = iota
	KindRedirect
	KindAllow
)

func (k Kind) String() string {
	switch k {
	case KindRedirect:
		return "redirect"
	case KindAllow:
		return "allow"
	default:
		return "loading"
	}
}

// Decision is the outcome of one gate evaluation
type Decision struct {
	Kind Kind
	// Path is the redirect target, set only for KindRedirect
	Path string
	// ReturnTo is the originally requested path, carried on redirects to /auth
	ReturnTo string
}

// Loading reports that a redirect cannot be decided yet
func Loading() Decision { return Decision{Kind: KindLoading} }

// Allow lets the requested path render
func Allow() Decision { return Decision{Kind: KindAllow} }

// Redirect sends the caller to path
func Redirect(path string) Decision { return Decision{Kind: KindRedirect, Path: path} }

func (d Decision) String() string {
	if d.Kind == KindRedirect {
		return "redirect:" + d.Path
	}
	return d.Kind.String()
}

// Evaluate applies the gate sequence. The first matching rule wins.
func Evaluate(level Level, s Session, onboarding Onboarding, path string) Decision {
	if s.Pending {
		return Loading()
	}

	if !s.UserPresent() {
		return Decision{Kind: KindRedirect, Path: PathAuth, ReturnTo: path}
	}

	if level >= RequireVerified && s.EmailVerifiedAt == nil {
		return Redirect(PathVerifyEmail)
	}

	if level < RequireOnboarded {
		return Allow()
	}

	switch onboarding {
	case OnboardingUnresolved:
		return Loading()
	case OnboardingIncomplete:
		if path != PathOnboarding {
			return Redirect(PathOnboarding)
		}
	case OnboardingCompleted:
		if path == PathOnboarding {
			return Redirect(PathHome)
		}
	}

	return Allow()
}

// needsOnboarding reports whether Evaluate would consult the onboarding state
func needsOnboarding(level Level, s Session) bool {
	return level >= RequireOnboarded && !s.Pending && s.UserPresent() && s.EmailVerifiedAt != nil
}
