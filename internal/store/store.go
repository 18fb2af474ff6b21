package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"attendance-portal-backend/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store defines the interface for all database operations the engine needs.
// AttendanceEvent rows are append-only: the two Record methods are the only
// writers and each appends exactly one event.
type Store interface {
	DB() *gorm.DB

	GetStudentByCode(ctx context.Context, code string) (model.Student, error)
	GetStudent(ctx context.Context, id int64) (model.Student, error)
	ListStudents(ctx context.Context, classID int64) ([]model.Student, error)

	// LatestPair returns the student's most recent sign-in and most recent
	// sign-out timestamps, either of which may be nil.
	LatestPair(ctx context.Context, studentID int64) (lastSignIn, lastSignOut *time.Time, err error)

	RecordSignIn(ctx context.Context, studentID int64, at time.Time) error
	RecordSignOut(ctx context.Context, studentID int64, at time.Time) error

	ListEvents(ctx context.Context, studentID int64, from, to time.Time) ([]model.AttendanceEvent, error)
	ListEventsForStudents(ctx context.Context, studentIDs []int64, from, to time.Time) ([]model.AttendanceEvent, error)

	ListSchedules(ctx context.Context, classID int64) ([]model.Schedule, error)
	SaveSchedule(ctx context.Context, sched *model.Schedule) error

	ListSubscriptionsForStudent(ctx context.Context, studentID int64) ([]model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) GetStudentByCode(ctx context.Context, code string) (model.Student, error) {
	var student model.Student
	err := s.db.WithContext(ctx).First(&student, "card_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Student{}, fmt.Errorf("student with card code %q: %w", code, ErrNotFound)
	}
	return student, err
}

func (s *gormStore) GetStudent(ctx context.Context, id int64) (model.Student, error) {
	var student model.Student
	err := s.db.WithContext(ctx).First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Student{}, fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	return student, err
}

func (s *gormStore) ListStudents(ctx context.Context, classID int64) ([]model.Student, error) {
	var students []model.Student
	err := s.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("surname, first_name").
		Find(&students).Error
	return students, err
}

func (s *gormStore) LatestPair(ctx context.Context, studentID int64) (*time.Time, *time.Time, error) {
	lastIn, err := s.latestEvent(ctx, studentID, model.EventSignIn)
	if err != nil {
		return nil, nil, err
	}
	lastOut, err := s.latestEvent(ctx, studentID, model.EventSignOut)
	if err != nil {
		return nil, nil, err
	}
	return lastIn, lastOut, nil
}

func (s *gormStore) latestEvent(ctx context.Context, studentID int64, typ model.EventType) (*time.Time, error) {
	var ev model.AttendanceEvent
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND type = ?", studentID, typ).
		Order("recorded_at DESC").
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest %s event for student %d: %w", typ, studentID, err)
	}
	at := ev.RecordedAt
	return &at, nil
}

func (s *gormStore) RecordSignIn(ctx context.Context, studentID int64, at time.Time) error {
	return s.appendEvent(ctx, studentID, model.EventSignIn, at)
}

func (s *gormStore) RecordSignOut(ctx context.Context, studentID int64, at time.Time) error {
	return s.appendEvent(ctx, studentID, model.EventSignOut, at)
}

func (s *gormStore) appendEvent(ctx context.Context, studentID int64, typ model.EventType, at time.Time) error {
	ev := model.AttendanceEvent{
		StudentID:  studentID,
		Type:       typ,
		RecordedAt: at,
	}
	if err := s.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("failed to append %s event for student %d: %w", typ, studentID, err)
	}
	return nil
}

func (s *gormStore) ListEvents(ctx context.Context, studentID int64, from, to time.Time) ([]model.AttendanceEvent, error) {
	var events []model.AttendanceEvent
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND recorded_at >= ? AND recorded_at <= ?", studentID, from, to).
		Order("recorded_at").
		Find(&events).Error
	return events, err
}

func (s *gormStore) ListEventsForStudents(ctx context.Context, studentIDs []int64, from, to time.Time) ([]model.AttendanceEvent, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var events []model.AttendanceEvent
	err := s.db.WithContext(ctx).
		Where("student_id IN ? AND recorded_at >= ? AND recorded_at <= ?", studentIDs, from, to).
		Order("recorded_at").
		Find(&events).Error
	return events, err
}

func (s *gormStore) ListSchedules(ctx context.Context, classID int64) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := s.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("id").
		Find(&schedules).Error
	return schedules, err
}

func (s *gormStore) SaveSchedule(ctx context.Context, sched *model.Schedule) error {
	return s.db.WithContext(ctx).Save(sched).Error
}

func (s *gormStore) ListSubscriptionsForStudent(ctx context.Context, studentID int64) ([]model.PushSubscription, error) {
	var subscriptions []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_student_mapping ssm ON ssm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("ssm.student_id = ?", studentID).
		Find(&subscriptions).Error
	return subscriptions, err
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error
}
