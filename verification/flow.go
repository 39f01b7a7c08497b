// Package verification implements the email-code registration flow: a
// fresh code per attempt, a single pending slot per user, exact-match
// comparison, and commit of the registration row only after a match.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"portal/mailer"
	"portal/models"
)

// ErrInvalidCode covers both a mismatched candidate and the absence of any
// pending registration to verify against. Retries are unlimited; there is
// no attempt counter and no code expiry.
var ErrInvalidCode = errors.New("invalid verification code")

// Verifier isolates code comparison and commit behind an interface so a
// server-side verification service could replace the in-process one
// without touching the HTTP handlers.
type Verifier interface {
	Begin(ctx context.Context, userID int64, email string, event models.Event) error
	Submit(ctx context.Context, userID int64, eventID, candidate string) error
	Abandon(userID int64, eventID string)
}

// Flow is the in-process Verifier. GenCode is a field so tests can pin the
// generated code; it defaults to GenerateCode.
type Flow struct {
	store   *Store
	sender  mailer.Sender
	regs    models.RegistrationRepository
	GenCode func() (string, error)
}

func NewFlow(store *Store, sender mailer.Sender, regs models.RegistrationRepository) *Flow {
	return &Flow{
		store:   store,
		sender:  sender,
		regs:    regs,
		GenCode: GenerateCode,
	}
}

// Begin generates a code, records the pending registration (overwriting
// any earlier attempt) and dispatches the email without waiting on it: the
// client's prompt opens whether or not delivery succeeds, and a send
// failure is only logged. A missing recipient address aborts before any
// state is created.
func (f *Flow) Begin(ctx context.Context, userID int64, email string, event models.Event) error {
	if strings.TrimSpace(email) == "" {
		return mailer.ErrEmptyRecipient
	}

	code, err := f.GenCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	f.store.Begin(userID, PendingRegistration{
		EventID:    event.ID,
		EventTitle: event.Title,
		Code:       code,
	})

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := f.sender.SendVerificationCode(sendCtx, email, code, event.Title); err != nil {
			log.Printf("verification email to %s for event %s: %v", email, event.ID, err)
		}
	}()

	return nil
}

// Submit compares the candidate against the held code. The comparison is
// exact string equality after trimming surrounding whitespace: "42193"
// never matches "042193". A match commits the registration row and clears
// the pending slot; a commit failure keeps the slot so the same code can
// be retried without a new email.
func (f *Flow) Submit(ctx context.Context, userID int64, eventID, candidate string) error {
	candidate = strings.TrimSpace(candidate)

	p, ok := f.store.Peek(userID)
	if !ok || p.EventID != eventID || candidate == "" || candidate != p.Code {
		return ErrInvalidCode
	}

	if err := f.regs.Register(userID, p.EventID); err != nil {
		return fmt.Errorf("commit registration: %w", err)
	}

	f.store.Clear(userID)
	return nil
}

// Abandon drops the pending registration if it belongs to the given
// event. Simply dismissing the prompt client-side does not call this; the
// slot then stays occupied until the next Begin overwrites it.
func (f *Flow) Abandon(userID int64, eventID string) {
	if p, ok := f.store.Peek(userID); ok && p.EventID == eventID {
		f.store.Clear(userID)
	}
}
