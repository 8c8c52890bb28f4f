// Package commit implements the password-gated commit flow shared by every
// admin page: a commit is requested, validated locally, held open while the
// admin supplies the secondary password, and submitted at most once per
// password attempt.
// File: commit/flow.go
package commit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sportsfest-admin/api"
	"sportsfest-admin/logger"
)

// Kind tags what a commit request is doing.
type Kind int

const (
	KindSave Kind = iota
	KindDelete
)

func (k Kind) String() string {
	if k == KindDelete {
		return "delete"
	}
	return "save"
}

// State of the flow.
type State int

const (
	// Idle: no commit pending.
	Idle State = iota
	// AwaitingPassword: a validated commit is waiting for the secondary
	// password.
	AwaitingPassword
	// Submitting: a password attempt is in flight.
	Submitting
	// ForcedLogout: the attempt bound was exhausted and the session is
	// being terminated.
	ForcedLogout
)

// Outcome of one password attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	// OutcomeRetry: wrong password, prompt stays open.
	OutcomeRetry
	// OutcomeFailed: terminal failure for this commit, prompt closes.
	OutcomeFailed
	// OutcomeLockedOut: attempts exhausted, session terminated.
	OutcomeLockedOut
)

// Request is one commit pushed into the flow. It carries everything the
// flow needs by value, so no state is captured in re-bound callbacks.
type Request struct {
	Kind  Kind
	Label string // resource name for log lines and messages

	// Validate runs the local well-formedness checks. A failure here is
	// reported to the admin and never opens the password prompt.
	Validate func() error

	// Submit sends the full payload with the supplied password attached.
	Submit func(ctx context.Context, password string) error

	// Apply installs the committed payload as the new local state. Called
	// exactly once, after a successful submit.
	Apply func()
}

// Result of one password attempt.
type Result struct {
	Outcome      Outcome
	Message      string
	AttemptsLeft int
}

// ErrCommitPending is returned when a commit is requested while another is
// already awaiting its password or in flight.
var ErrCommitPending = errors.New("another change is already awaiting confirmation")

// Flow is the per-page state machine. All methods are safe for concurrent
// use; the Submitting state guarantees at most one request in flight.
type Flow struct {
	mu             sync.Mutex
	state          State
	attempts       int
	maxAttempts    int
	req            *Request
	onForcedLogout func()
}

// NewFlow creates a flow allowing maxAttempts wrong passwords before
// onForcedLogout is invoked.
func NewFlow(maxAttempts int, onForcedLogout func()) *Flow {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Flow{
		state:          Idle,
		maxAttempts:    maxAttempts,
		onForcedLogout: onForcedLogout,
	}
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Begin validates the request and, if it is well formed, opens the password
// prompt. A validation error leaves the flow Idle and is returned for the
// admin to see.
func (f *Flow) Begin(req *Request) error {
	f.mu.Lock()
	if f.state != Idle {
		f.mu.Unlock()
		return ErrCommitPending
	}
	f.mu.Unlock()

	// Validation is a pure local check and runs outside the lock.
	if req.Validate != nil {
		if err := req.Validate(); err != nil {
			logger.Debugf("commit: %s %s rejected by validation: %v", req.Label, req.Kind, err)
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Idle {
		return ErrCommitPending
	}
	f.state = AwaitingPassword
	f.attempts = 0
	f.req = req
	logger.Infof("commit: %s %s awaiting admin password", req.Label, req.Kind)
	return nil
}

// Cancel abandons the pending commit, if any.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == AwaitingPassword {
		logger.Debugf("commit: %s cancelled", f.req.Label)
		f.state = Idle
		f.req = nil
		f.attempts = 0
	}
}

// SubmitPassword plays one password attempt. Exactly one network request is
// issued per call. 401/403 from the gated write counts as a wrong password
// and re-opens the prompt until the bound is reached; any other failure is
// terminal for this commit and returns the flow to Idle.
func (f *Flow) SubmitPassword(ctx context.Context, password string) Result {
	f.mu.Lock()
	if f.state != AwaitingPassword || f.req == nil {
		f.mu.Unlock()
		return Result{Outcome: OutcomeFailed, Message: "No change is awaiting confirmation."}
	}
	f.state = Submitting
	req := f.req
	f.mu.Unlock()

	err := req.Submit(ctx, password)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err == nil {
		f.state = Idle
		f.req = nil
		f.attempts = 0
		if req.Apply != nil {
			req.Apply()
		}
		logger.Infof("commit: %s %s published", req.Label, req.Kind)
		return Result{Outcome: OutcomeSuccess}
	}

	var pwErr *api.PasswordError
	if errors.As(err, &pwErr) {
		f.attempts++
		if f.attempts >= f.maxAttempts {
			f.state = ForcedLogout
			f.req = nil
			logger.Warnf("commit: %s %s abandoned after %d wrong passwords, forcing logout", req.Label, req.Kind, f.attempts)
			if f.onForcedLogout != nil {
				f.onForcedLogout()
			}
			return Result{Outcome: OutcomeLockedOut, Message: "Too many incorrect attempts."}
		}
		f.state = AwaitingPassword
		left := f.maxAttempts - f.attempts
		return Result{
			Outcome:      OutcomeRetry,
			Message:      "Incorrect password.",
			AttemptsLeft: left,
		}
	}

	// Server logic errors and transport failures are terminal for the
	// attempt: surface the message and close the prompt.
	f.state = Idle
	f.req = nil
	f.attempts = 0
	logger.Errorf("commit: %s %s failed: %v", req.Label, req.Kind, err)
	return Result{Outcome: OutcomeFailed, Message: failureMessage(req, err)}
}

func failureMessage(req *Request, err error) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fmt.Sprintf("Failed to %s %s.", req.Kind, req.Label)
}
