package client

import (
	"errors"
	"strings"
	"time"

	"github.com/sevigo/snapreview/internal/llm"
)

// Messages shown in place of a review.
const (
	MsgNoReviewReturned = "No review returned."
	MsgFetchFailed      = "Error fetching review."
	MsgCopied           = "Copied!"
)

// CopyFeedbackDuration is how long the copy confirmation stays visible.
const CopyFeedbackDuration = 2 * time.Second

// ErrRequestInFlight is returned by Begin while a review is outstanding.
var ErrRequestInFlight = errors.New("a review request is already in flight")

// Phase is the lifecycle stage of the current review.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInFlight:
		return "in-flight"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ViewState is everything a client needs to draw the review panel.
type ViewState struct {
	Code     string
	Language string
	Review   string
	Fix      llm.CodeBlock
	HasFix   bool
	Copied   bool
	Phase    Phase

	copySeq int
}

// Busy reports whether a request is outstanding.
func (s *ViewState) Busy() bool {
	return s.Phase == PhaseInFlight
}

// Begin moves to PhaseInFlight.
func (s *ViewState) Begin() error {
	if s.Busy() {
		return ErrRequestInFlight
	}
	s.Phase = PhaseInFlight
	return nil
}

// Complete shows review verbatim and extracts its first code block as the fix.
func (s *ViewState) Complete(review string) {
	s.Phase = PhaseSucceeded
	s.Copied = false
	if strings.TrimSpace(review) == "" {
		s.Review = MsgNoReviewReturned
		s.Fix, s.HasFix = llm.CodeBlock{}, false
		return
	}
	s.Review = review
	s.Fix, s.HasFix = llm.ExtractFix(review)
}

// Fail shows the gateway's message for err, or MsgFetchFailed.
func (s *ViewState) Fail(err error) {
	s.Phase = PhaseFailed
	s.Copied = false
	s.Review = ErrorMessage(err, MsgFetchFailed)
	s.Fix, s.HasFix = llm.CodeBlock{}, false
}

// MarkCopied turns the copy feedback on and returns the sequence number to
// pass to ResetCopied once CopyFeedbackDuration has elapsed.
func (s *ViewState) MarkCopied() int {
	s.copySeq++
	s.Copied = true
	return s.copySeq
}

// ResetCopied clears the copy feedback unless a newer MarkCopied happened.
func (s *ViewState) ResetCopied(seq int) {
	if seq == s.copySeq {
		s.Copied = false
	}
}
