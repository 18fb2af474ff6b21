package reader

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"time"

	"attendance-portal-backend/config"
	"attendance-portal-backend/internal/attend"
	"attendance-portal-backend/internal/scan"
	"attendance-portal-backend/internal/store"
)

// Service reads raw characters from a card-reader device and pushes each
// completed code through the scan pipeline. The device behaves like a
// keyboard: a scan arrives as a burst of characters, usually but not always
// followed by a newline, so the buffer's idle flush covers readers that
// send no terminator.
type Service struct {
	cfg    *config.Config
	attend *attend.Service
}

// NewService creates a reader service.
func NewService(cfg *config.Config, attendSvc *attend.Service) *Service {
	return &Service{cfg: cfg, attend: attendSvc}
}

// Run consumes the device until ctx is cancelled. If the device cannot be
// opened it retries with a fixed backoff; an unplugged reader must not take
// the portal down.
func (s *Service) Run(ctx context.Context) {
	path := s.cfg.Scan.DevicePath
	if path == "" {
		log.Println("No scan device configured. Reader loop not starting.")
		return
	}
	log.Printf("Starting card reader loop on %s", path)

	for {
		if err := s.consume(ctx, path); err != nil {
			log.Printf("Card reader error on %s: %v", path, err)
		}

		select {
		case <-ctx.Done():
			log.Println("Card reader loop shutting down")
			return
		case <-time.After(5 * time.Second):
		}
	}
}

func (s *Service) consume(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buffer := scan.NewBuffer(s.cfg.Scan.IdleFlush, func(code string) {
		s.handleCode(ctx, code)
	})
	defer buffer.Close()

	// Closing the file on cancellation unblocks the pending read.
	stop := context.AfterFunc(ctx, func() { f.Close() })
	defer stop()

	r := bufio.NewReader(f)
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		buffer.Push(ch)
	}
}

func (s *Service) handleCode(ctx context.Context, code string) {
	now := time.Now().In(s.attend.Location())
	res, err := s.attend.ProcessScan(ctx, code, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("Scan for unknown card %q", code)
			return
		}
		log.Printf("Error processing scan %q: %v", code, err)
		return
	}

	if res.Rejected {
		log.Printf("Scan rejected (%s)", res.Reason)
		return
	}
	log.Printf("Scan: %s %s -> %s", res.Student.FirstName, res.Student.Surname, res.Decision)
}
