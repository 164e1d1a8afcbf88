package echo

import (
	"time"

	"go.workpoint.io/attend/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type attendanceResponse struct {
	ID         string     `json:"id"`
	Day        string     `json:"day"`
	PunchInAt  time.Time  `json:"punch_in_at"`
	PunchOutAt *time.Time `json:"punch_out_at,omitempty"`
	WorkedSecs int64      `json:"worked_seconds"`
}

func toAttendanceResponse(a *domain.Attendance) attendanceResponse {
	return attendanceResponse{
		ID:         a.ID,
		Day:        a.Day,
		PunchInAt:  a.PunchInAt,
		PunchOutAt: a.PunchOutAt,
		WorkedSecs: int64(a.Worked() / time.Second),
	}
}

type leaveRequestBody struct {
	Type   string `json:"type"`
	From   string `json:"from"` // "2006-01-02"
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

type leaveDecisionBody struct {
	Approve bool `json:"approve"`
}

type leaveResponse struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	From         string     `json:"from"`
	To           string     `json:"to"`
	Reason       string     `json:"reason,omitempty"`
	Status       string     `json:"status"`
	BusinessDays int        `json:"business_days"`
	DecidedBy    string     `json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

func toLeaveResponse(l *domain.LeaveRequest) leaveResponse {
	return leaveResponse{
		ID:           l.ID,
		Type:         string(l.Type),
		From:         l.From.Format("2006-01-02"),
		To:           l.To.Format("2006-01-02"),
		Reason:       l.Reason,
		Status:       string(l.Status),
		BusinessDays: l.BusinessDays(),
		DecidedBy:    l.DecidedBy,
		DecidedAt:    l.DecidedAt,
	}
}

type balanceResponse struct {
	Year      int `json:"year"`
	Allowance int `json:"allowance"`
	Remaining int `json:"remaining"`
}

type allowedIPBody struct {
	Address string `json:"address"`
	Label   string `json:"label,omitempty"`
}

type sweepResponse struct {
	Deleted int64 `json:"deleted"`
}

type createUserBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"` // defaults to employee
}

type userResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		Active: u.Active,
	}
}
