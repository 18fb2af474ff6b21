package attend

import "time"

// Decision is the outcome of evaluating a scan against a student's latest
// sign-in/sign-out pair. Every scan resolves to exactly one of the four
// variants; AlreadyRecorded and StateError are expected outcomes, not errors.
type Decision string

const (
	// DecisionSignIn: the scan opens the student's day; append a sign-in event.
	DecisionSignIn Decision = "sign_in"
	// DecisionSignOut: the scan closes the student's day; append a sign-out event.
	DecisionSignOut Decision = "sign_out"
	// DecisionAlreadyRecorded: both events exist for today; nothing to append.
	DecisionAlreadyRecorded Decision = "already_recorded"
	// DecisionStateError: the stored pair is inconsistent (a sign-out today
	// with no sign-in today); surfaced for manual review, never auto-fixed.
	DecisionStateError Decision = "state_error"
)

// Snapshot is a student's most recent sign-in/sign-out pair as known at
// decision time. It is derived fresh from storage per scan and never cached
// here, which keeps Decide idempotent under re-fetch.
type Snapshot struct {
	StudentID   int64
	LastSignIn  *time.Time
	LastSignOut *time.Time
}

// Decide evaluates one scan. State is re-derived from the snapshot on every
// call; there is no persisted "current state". Comparison is by calendar day
// in loc, not by 24-hour windows.
func Decide(snap Snapshot, now time.Time, loc *time.Location) Decision {
	inToday := snap.LastSignIn != nil && sameDay(*snap.LastSignIn, now, loc)
	outToday := snap.LastSignOut != nil && sameDay(*snap.LastSignOut, now, loc)

	switch {
	case inToday && !outToday:
		return DecisionSignOut
	case inToday && outToday:
		if snap.LastSignOut.Before(*snap.LastSignIn) {
			// Stale out-of-order pair from a previous cycle; treat the scan
			// as a fresh sign-in.
			return DecisionSignIn
		}
		return DecisionAlreadyRecorded
	case !inToday && outToday:
		return DecisionStateError
	default:
		return DecisionSignIn
	}
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
