package attend

import (
	"context"
	"strings"
	"time"

	"attendance-portal-backend/internal/model"
	"attendance-portal-backend/internal/scan"
	"attendance-portal-backend/internal/store"
)

// Alerter receives students whose scans surfaced inconsistent stored state.
// Implementations must not block; the scan path stays synchronous.
type Alerter interface {
	StateError(student model.Student)
}

// Service turns raw card codes into attendance decisions. It owns the scan
// debouncer but no other state: every decision is re-derived from the
// latest persisted events, so concurrent terminals at worst surface
// AlreadyRecorded or StateError instead of corrupting data.
type Service struct {
	store    store.Store
	debounce *scan.Debouncer
	loc      *time.Location
	alerter  Alerter // optional
}

// NewService creates a scan-processing service.
func NewService(st store.Store, cooldown time.Duration, loc *time.Location, alerter Alerter) *Service {
	return &Service{
		store:    st,
		debounce: scan.NewDebouncer(cooldown),
		loc:      loc,
		alerter:  alerter,
	}
}

// ScanResult is the outcome of processing one scan. When Rejected is true
// the code never reached the state machine and no student was resolved.
type ScanResult struct {
	Rejected bool
	Reason   scan.RejectReason
	Decision Decision
	Student  model.Student
}

// ProcessScan runs the full pipeline for one raw code: debounce, resolve
// the student, decide, and append at most one event. Rejections and
// decision outcomes are values; only storage failures come back as errors
// (an unknown card wraps store.ErrNotFound).
func (s *Service) ProcessScan(ctx context.Context, raw string, now time.Time) (ScanResult, error) {
	code := strings.TrimSpace(raw)

	if res := s.debounce.Accept(code, now); !res.Accepted {
		return ScanResult{Rejected: true, Reason: res.Reason}, nil
	}

	student, err := s.store.GetStudentByCode(ctx, code)
	if err != nil {
		return ScanResult{}, err
	}

	lastIn, lastOut, err := s.store.LatestPair(ctx, student.ID)
	if err != nil {
		return ScanResult{}, err
	}

	snap := Snapshot{StudentID: student.ID, LastSignIn: lastIn, LastSignOut: lastOut}
	decision := Decide(snap, now, s.loc)

	switch decision {
	case DecisionSignIn:
		err = s.store.RecordSignIn(ctx, student.ID, now)
	case DecisionSignOut:
		err = s.store.RecordSignOut(ctx, student.ID, now)
	case DecisionStateError:
		if s.alerter != nil {
			s.alerter.StateError(student)
		}
	}
	if err != nil {
		return ScanResult{}, err
	}

	return ScanResult{Decision: decision, Student: student}, nil
}

// Location returns the zone all calendar-day decisions are made in.
func (s *Service) Location() *time.Location {
	return s.loc
}
