package attend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go.workpoint.io/attend/domain"
)

// LeaveService handles leave requests and the annual allowance. Allowance
// accounting is business-day arithmetic over approved annual requests in the
// calendar year; nothing is pre-aggregated.
type LeaveService struct {
	repo            domain.LeaveRepository
	annualAllowance int
	now             func() time.Time
}

// NewLeaveService creates a LeaveService with the per-year annual leave
// allowance in business days.
func NewLeaveService(repo domain.LeaveRepository, annualAllowance int, now func() time.Time) *LeaveService {
	if now == nil {
		now = time.Now
	}
	return &LeaveService{repo: repo, annualAllowance: annualAllowance, now: now}
}

// Request files a leave request. Annual requests are refused up front when
// the remaining allowance cannot cover the span.
func (s *LeaveService) Request(ctx context.Context, userID string, typ domain.LeaveType,
	from, to time.Time, reason string,
) (*domain.LeaveRequest, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("leave range ends before it starts")
	}

	req := &domain.LeaveRequest{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		From:      from.UTC().Truncate(24 * time.Hour),
		To:        to.UTC().Truncate(24 * time.Hour),
		Reason:    reason,
		Status:    domain.LeaveStatusPending,
		CreatedAt: s.now().UTC(),
	}

	if typ == domain.LeaveTypeAnnual {
		remaining, err := s.Remaining(ctx, userID, req.From.Year())
		if err != nil {
			return nil, err
		}
		if req.BusinessDays() > remaining {
			return nil, ErrInsufficientDays
		}
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to store leave request: %w", err)
	}
	return req, nil
}

// Decide approves or rejects a pending request. Only admins reach this path;
// the handler enforces the role.
func (s *LeaveService) Decide(ctx context.Context, requestID, deciderID string, approve bool) (*domain.LeaveRequest, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrLeaveNotFound) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("failed to look up leave request: %w", err)
	}
	if req.Status != domain.LeaveStatusPending {
		return nil, ErrAlreadyDecided
	}

	status := domain.LeaveStatusRejected
	if approve {
		status = domain.LeaveStatusApproved
	}
	decidedAt := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, requestID, status, deciderID, decidedAt); err != nil {
		return nil, fmt.Errorf("failed to update leave request: %w", err)
	}
	req.Status = status
	req.DecidedBy = deciderID
	req.DecidedAt = &decidedAt
	return req, nil
}

// ListMine returns a user's own requests.
func (s *LeaveService) ListMine(ctx context.Context, userID string) ([]*domain.LeaveRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListPending returns every undecided request, for the admin queue.
func (s *LeaveService) ListPending(ctx context.Context) ([]*domain.LeaveRequest, error) {
	return s.repo.ListByStatus(ctx, domain.LeaveStatusPending)
}

// Remaining returns the unspent annual allowance for a calendar year.
func (s *LeaveService) Remaining(ctx context.Context, userID string, year int) (int, error) {
	approved, err := s.repo.ApprovedAnnualInYear(ctx, userID, year)
	if err != nil {
		return 0, fmt.Errorf("failed to compute leave balance: %w", err)
	}
	used := 0
	for _, r := range approved {
		used += r.BusinessDays()
	}
	remaining := s.annualAllowance - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
