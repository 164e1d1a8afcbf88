package domain

import "time"

// LeaveStatus is the decision state of a leave request.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveType categorizes a request. Only annual leave counts against the
// yearly allowance.
type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "annual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeUnpaid LeaveType = "unpaid"
)

// LeaveRequest spans whole days, inclusive on both ends.
type LeaveRequest struct {
	ID        string      `bson:"_id,omitempty"`
	UserID    string      `bson:"user_id"`
	Type      LeaveType   `bson:"type"`
	From      time.Time   `bson:"from"`
	To        time.Time   `bson:"to"`
	Reason    string      `bson:"reason,omitempty"`
	Status    LeaveStatus `bson:"status"`
	DecidedBy string      `bson:"decided_by,omitempty"`
	CreatedAt time.Time   `bson:"created_at"`
	DecidedAt *time.Time  `bson:"decided_at,omitempty"`
}

// BusinessDays counts the weekdays in [From, To], the amount deducted from
// the allowance when an annual request is approved.
func (l *LeaveRequest) BusinessDays() int {
	days := 0
	for d := l.From; !d.After(l.To); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
