package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"attendance-portal-backend/internal/model"
)

// Kind labels the warning a job carries.
type Kind string

const (
	KindStateError Kind = "state_error"
	KindAbsence    Kind = "absence"
)

// Job is one warning to fan out to the student's subscribers.
type Job struct {
	StudentID int64
	Kind      Kind
	// Percentage accompanies absence warnings.
	Percentage int
}

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of Sender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending warning notifications.
type WorkerPool struct {
	size    int
	jobs    chan Job
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Job, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			wp.sendWarning(ctx, job)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a warning for delivery.
func (wp *WorkerPool) Dispatch(job Job) {
	wp.jobs <- job
}

// StateError queues a state-error warning, satisfying attend.Alerter.
func (wp *WorkerPool) StateError(student model.Student) {
	wp.Dispatch(Job{StudentID: student.ID, Kind: KindStateError})
}

// sendWarning fetches the student's subscriptions and sends one push each.
func (wp *WorkerPool) sendWarning(ctx context.Context, job Job) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_student_mapping ssm ON ssm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("ssm.student_id = ?", job.StudentID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for student %d: %v", job.StudentID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	var student model.Student
	studentLabel := fmt.Sprintf("student %d", job.StudentID)
	if err := wp.db.WithContext(ctx).
		Select("first_name", "surname").
		First(&student, job.StudentID).Error; err != nil {
		log.Printf("Error fetching student %d: %v", job.StudentID, err)
	} else if student.Surname != "" {
		studentLabel = student.FirstName + " " + student.Surname
	}

	var message string
	switch job.Kind {
	case KindAbsence:
		message = fmt.Sprintf("Attendance warning: %s is at %d%% attendance.", studentLabel, job.Percentage)
	default:
		message = fmt.Sprintf("Attendance records for %s are inconsistent and need manual review.", studentLabel)
	}

	log.Printf("Sending %d notifications for student %d", len(subscriptions), job.StudentID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
