package attend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go.workpoint.io/attend/domain"
)

// AttendanceService handles punching. One record per employee per UTC day;
// punch-in opens it, punch-out closes it. Both punches are gated by the IP
// allow-list.
type AttendanceService struct {
	repo      domain.AttendanceRepository
	allowlist *AllowlistService
	now       func() time.Time
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(repo domain.AttendanceRepository, allowlist *AllowlistService,
	now func() time.Time,
) *AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceService{repo: repo, allowlist: allowlist, now: now}
}

// dayKey is the UTC calendar day used as the attendance bucket.
func dayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// PunchIn opens today's attendance record.
func (s *AttendanceService) PunchIn(ctx context.Context, userID, ipAddress string) (*domain.Attendance, error) {
	if err := s.requireAllowed(ctx, ipAddress); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	day := dayKey(now)

	existing, err := s.repo.GetByUserAndDay(ctx, userID, day)
	if err != nil && !errors.Is(err, domain.ErrAttendanceNotFound) {
		return nil, fmt.Errorf("failed to look up attendance: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyPunchedIn
	}

	att := &domain.Attendance{
		ID:        uuid.NewString(),
		UserID:    userID,
		Day:       day,
		PunchInAt: now,
		IPAddress: ipAddress,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("failed to store attendance: %w", err)
	}
	return att, nil
}

// PunchOut closes today's open record.
func (s *AttendanceService) PunchOut(ctx context.Context, userID, ipAddress string) (*domain.Attendance, error) {
	if err := s.requireAllowed(ctx, ipAddress); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	att, err := s.repo.GetByUserAndDay(ctx, userID, dayKey(now))
	if err != nil {
		if errors.Is(err, domain.ErrAttendanceNotFound) {
			return nil, ErrNotPunchedIn
		}
		return nil, fmt.Errorf("failed to look up attendance: %w", err)
	}
	if !att.Open() {
		return nil, ErrNotPunchedIn
	}
	if err := s.repo.ClosePunch(ctx, att.ID, now); err != nil {
		return nil, fmt.Errorf("failed to close attendance: %w", err)
	}
	att.PunchOutAt = &now
	return att, nil
}

// Today returns today's record, open or closed, or
// domain.ErrAttendanceNotFound.
func (s *AttendanceService) Today(ctx context.Context, userID string) (*domain.Attendance, error) {
	return s.repo.GetByUserAndDay(ctx, userID, dayKey(s.now()))
}

// Month lists a user's records for a "2006-01" month.
func (s *AttendanceService) Month(ctx context.Context, userID, month string) ([]*domain.Attendance, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return s.repo.ListByUserAndMonth(ctx, userID, month)
}

func (s *AttendanceService) requireAllowed(ctx context.Context, ipAddress string) error {
	allowed, err := s.allowlist.IsAllowed(ctx, ipAddress)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrIPNotAllowed
	}
	return nil
}
