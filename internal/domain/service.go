// Package domain defines the business logic for the activities service.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/events"
	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/observability"
)

var (
	// ErrActivityNotFound is returned when an activity name is not in the catalog.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp is returned when the email is already on the activity's roster.
	ErrAlreadySignedUp = errors.New("student already signed up")
	// ErrNotRegistered is returned when unregistering an email that is not on the roster.
	ErrNotRegistered = errors.New("student not registered")
	// ErrInvalidInput is returned when the activity name or email is blank.
	ErrInvalidInput = errors.New("invalid input")
)

// Registry captures the catalog operations the service depends on.
type Registry interface {
	List(ctx context.Context) map[string]Activity
	Signup(ctx context.Context, name, email string) (*Activity, error)
	Unregister(ctx context.Context, name, email string) (*Activity, error)
	Snapshot(ctx context.Context, name string) (*Activity, bool)
}

// Service orchestrates signup workflows over the registry.
type Service struct {
	registry Registry
	recorder events.Recorder
}

// NewService constructs a Service. A nil recorder disables event recording.
func NewService(registry Registry, recorder events.Recorder) *Service {
	if recorder == nil {
		recorder = events.NopRecorder{}
	}
	return &Service{registry: registry, recorder: recorder}
}

// SignupResult carries the confirmation for a successful signup.
type SignupResult struct {
	Message      string
	Participants []string
}

// UnregisterResult carries the confirmation for a successful unregistration.
type UnregisterResult struct {
	Message      string
	Participants []string
}

// ListActivities returns the full catalog keyed by activity name.
func (s *Service) ListActivities(ctx context.Context) map[string]Activity {
	return s.registry.List(ctx)
}

// Signup enrolls the email in the named activity. Duplicate enrollment is an
// error, not a silent success. Names and emails are matched exactly as given.
func (s *Service) Signup(ctx context.Context, activityName, email string) (*SignupResult, error) {
	if err := validateInput(activityName, email); err != nil {
		return nil, err
	}

	activity, err := s.registry.Signup(ctx, activityName, email)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(events.NewStudentSignedUp(activityName, email, activity.Participants))
	observability.RecordSignup(activityName)

	return &SignupResult{
		Message:      fmt.Sprintf("Signed up %s for %s", email, activityName),
		Participants: activity.Participants,
	}, nil
}

// Unregister removes the email from the named activity's roster.
func (s *Service) Unregister(ctx context.Context, activityName, email string) (*UnregisterResult, error) {
	if err := validateInput(activityName, email); err != nil {
		return nil, err
	}

	activity, err := s.registry.Unregister(ctx, activityName, email)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(events.NewStudentUnregistered(activityName, email, activity.Participants))
	observability.RecordUnregistration(activityName)

	return &UnregisterResult{
		Message:      fmt.Sprintf("Unregistered %s from %s", email, activityName),
		Participants: activity.Participants,
	}, nil
}

func validateInput(activityName, email string) error {
	if strings.TrimSpace(activityName) == "" {
		return fmt.Errorf("%w: activity name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return nil
}
