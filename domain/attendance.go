package domain

import "time"

// Attendance is one working day of one employee. A record is opened by
// punch-in and closed by punch-out; at most one record exists per employee
// per UTC day.
type Attendance struct {
	ID         string     `bson:"_id,omitempty"`
	UserID     string     `bson:"user_id"`
	Day        string     `bson:"day"` // "2006-01-02" in UTC
	PunchInAt  time.Time  `bson:"punch_in_at"`
	PunchOutAt *time.Time `bson:"punch_out_at,omitempty"`
	IPAddress  string     `bson:"ip_address,omitempty"`
	CreatedAt  time.Time  `bson:"created_at"`
}

// Open reports whether the employee is still punched in.
func (a *Attendance) Open() bool { return a.PunchOutAt == nil }

// Worked returns the closed record's duration, or zero while still open.
func (a *Attendance) Worked() time.Duration {
	if a.PunchOutAt == nil {
		return 0
	}
	return a.PunchOutAt.Sub(a.PunchInAt)
}
