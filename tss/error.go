package tss

import (
	"fmt"
	"strings"
)

// ErrorKind enumerates the taxonomy of §7: a closed set of reasons
// advance can fail, distinct from the arbitrary cause wrapped inside.
type ErrorKind string

const (
	KindInvalidSession ErrorKind = "InvalidSession"
	KindIncomplete     ErrorKind = "Incomplete"
	KindDecode         ErrorKind = "Decode"
	KindInvalidProof   ErrorKind = "InvalidProof"
	KindPhase5BadSum   ErrorKind = "Phase5BadSum"
	KindPhase6BadSum   ErrorKind = "Phase6BadSum"
	KindPhase7BadSig   ErrorKind = "Phase7BadSig"
	KindBlameResult    ErrorKind = "BlameResult"
	KindInvalidSig     ErrorKind = "InvalidSig"
	KindInternal       ErrorKind = "Internal"
)

// Error is the one error type advance ever returns. Round and Task
// identify where the failure occurred; Victims/Culprits (when
// identifiable) are the peers a transport should hold responsible —
// Culprits for proof/consistency failures attributable to a specific
// sender, Victims for the party whose own message triggered the
// rejection when that differs.
type Error struct {
	Kind     ErrorKind
	Cause    error
	Task     string
	Round    string
	Which    string // which proof/check failed, for InvalidProof
	Victim   *PartyID
	Culprits []*PartyID
}

func (err *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tss: %s", err.Kind)
	if err.Task != "" {
		fmt.Fprintf(&b, " task=%s", err.Task)
	}
	if err.Round != "" {
		fmt.Fprintf(&b, " round=%s", err.Round)
	}
	if err.Which != "" {
		fmt.Fprintf(&b, " which=%s", err.Which)
	}
	if len(err.Culprits) > 0 {
		names := make([]string, len(err.Culprits))
		for i, c := range err.Culprits {
			names[i] = c.String()
		}
		fmt.Fprintf(&b, " culprits=[%s]", strings.Join(names, ","))
	}
	if err.Cause != nil {
		fmt.Fprintf(&b, ": %s", err.Cause.Error())
	}
	return b.String()
}

func (err *Error) Unwrap() error { return err.Cause }

// Actors returns the identifiable offending peers, regardless of
// whether the error kind is InvalidProof or BlameResult.
func (err *Error) Actors() []*PartyID {
	return err.Culprits
}

func NewError(kind ErrorKind, cause error, task, round string, culprits ...*PartyID) *Error {
	return &Error{Kind: kind, Cause: cause, Task: task, Round: round, Culprits: culprits}
}

func NewInvalidProofError(which string, task, round string, culprits ...*PartyID) *Error {
	return &Error{Kind: KindInvalidProof, Which: which, Task: task, Round: round, Culprits: culprits}
}

func NewBlameResultError(task, round string, culprits ...*PartyID) *Error {
	return &Error{Kind: KindBlameResult, Task: task, Round: round, Culprits: culprits}
}
