package echo

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	attend "go.workpoint.io/attend"
	"go.workpoint.io/attend/cache"
	"go.workpoint.io/attend/domain"
	"go.workpoint.io/attend/internal/auth"
)

// httptest requests carry RemoteAddr 192.0.2.1:1234, which echo's RealIP
// reports as the client address.
const testClientIP = "192.0.2.1"

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicate
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	clock    *testClock
	sessions map[string]*domain.Session
}

func (f *fakeSessionRepo) Save(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) FindLive(_ context.Context, refreshToken, userID string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.RefreshToken == refreshToken && s.UserID == userID && s.Live(f.clock.Now()) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (f *fakeSessionRepo) Rotate(_ context.Context, oldID string, replacement *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, oldID)
	cp := *replacement
	f.sessions[replacement.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) RevokeAll(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.sessions {
		if !s.Live(f.clock.Now()) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*domain.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att *domain.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := att.UserID + "|" + att.Day
	if _, ok := f.records[k]; ok {
		return domain.ErrDuplicate
	}
	cp := *att
	f.records[k] = &cp
	return nil
}

func (f *fakeAttendanceRepo) GetByUserAndDay(_ context.Context, userID, day string) (*domain.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if att, ok := f.records[userID+"|"+day]; ok {
		cp := *att
		return &cp, nil
	}
	return nil, domain.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ClosePunch(_ context.Context, id string, punchOutAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, att := range f.records {
		if att.ID == id && att.PunchOutAt == nil {
			out := punchOutAt
			att.PunchOutAt = &out
			return nil
		}
	}
	return domain.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListByUserAndMonth(_ context.Context, userID, month string) ([]*domain.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Attendance
	for _, att := range f.records {
		if att.UserID == userID && len(att.Day) >= 7 && att.Day[:7] == month {
			cp := *att
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	mu       sync.Mutex
	requests map[string]*domain.LeaveRequest
}

func (f *fakeLeaveRepo) Create(_ context.Context, req *domain.LeaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (*domain.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req, ok := f.requests[id]; ok {
		cp := *req
		return &cp, nil
	}
	return nil, domain.ErrLeaveNotFound
}

func (f *fakeLeaveRepo) ListByUser(_ context.Context, userID string) ([]*domain.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.LeaveRequest
	for _, req := range f.requests {
		if req.UserID == userID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListByStatus(_ context.Context, status domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.LeaveRequest
	for _, req := range f.requests {
		if req.Status == status {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, status domain.LeaveStatus, decidedBy string, decidedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok || req.Status != domain.LeaveStatusPending {
		return domain.ErrLeaveNotFound
	}
	req.Status = status
	req.DecidedBy = decidedBy
	at := decidedAt
	req.DecidedAt = &at
	return nil
}

func (f *fakeLeaveRepo) ApprovedAnnualInYear(_ context.Context, userID string, year int) ([]*domain.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.LeaveRequest
	for _, req := range f.requests {
		if req.UserID == userID && req.Type == domain.LeaveTypeAnnual &&
			req.Status == domain.LeaveStatusApproved && req.From.Year() == year {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeAllowedIPRepo struct {
	addresses map[string]bool
}

func (f *fakeAllowedIPRepo) Add(_ context.Context, ip *domain.AllowedIP) error {
	f.addresses[ip.Address] = true
	return nil
}

func (f *fakeAllowedIPRepo) Remove(_ context.Context, address string) error {
	delete(f.addresses, address)
	return nil
}

func (f *fakeAllowedIPRepo) List(_ context.Context) ([]*domain.AllowedIP, error) {
	var out []*domain.AllowedIP
	for addr := range f.addresses {
		out = append(out, &domain.AllowedIP{Address: addr})
	}
	return out, nil
}

func (f *fakeAllowedIPRepo) Exists(_ context.Context, address string) (bool, error) {
	return f.addresses[address], nil
}

type apiFixture struct {
	e        *echo.Echo
	clock    *testClock
	sessions *fakeSessionRepo
}

func newAPIFixture(t *testing.T, now time.Time, officeIPs ...string) *apiFixture {
	t.Helper()

	clock := &testClock{t: now}
	nowFn := clock.Now

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUserRepo{byEmail: map[string]*domain.User{
		"ann@workpoint.io": {
			ID: "user-ann", Email: "ann@workpoint.io", PasswordHash: string(hash),
			Name: "Ann", Role: domain.RoleEmployee, Active: true,
		},
		"boss@workpoint.io": {
			ID: "admin-boss", Email: "boss@workpoint.io", PasswordHash: string(hash),
			Name: "Boss", Role: domain.RoleAdmin, Active: true,
		},
	}}

	boundary, err := attend.NewBoundaryPolicy("12:00")
	require.NoError(t, err)
	tokens := attend.NewTokenService([]byte("access-test-key"), []byte("refresh-test-key"),
		15*time.Minute, 12*time.Hour, boundary, nowFn)

	sessionRepo := &fakeSessionRepo{clock: clock, sessions: map[string]*domain.Session{}}
	sessions := attend.NewSessionService(users, sessionRepo, tokens, boundary, nowFn)

	ipRepo := &fakeAllowedIPRepo{addresses: map[string]bool{}}
	for _, addr := range officeIPs {
		ipRepo.addresses[addr] = true
	}
	memCache := cache.NewMemoryAllowlistCache()
	t.Cleanup(func() { memCache.Close() })
	allowlist := attend.NewAllowlistService(ipRepo, memCache, time.Minute, nowFn)

	attendance := attend.NewAttendanceService(&fakeAttendanceRepo{records: map[string]*domain.Attendance{}}, allowlist, nowFn)
	leaves := attend.NewLeaveService(&fakeLeaveRepo{requests: map[string]*domain.LeaveRequest{}}, 20, nowFn)
	userSvc := attend.NewUserService(users, auth.NewBcryptPasswordHasher(bcrypt.MinCost), nowFn)

	e := echo.New()
	NewAPI(sessions, attendance, leaves, allowlist, userSvc, 20).RegisterRoutes(e)

	return &apiFixture{e: e, clock: clock, sessions: sessionRepo}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	var decoded map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func (f *apiFixture) login(t *testing.T, email string) (access, refresh string) {
	t.Helper()
	rec, body := f.do(t, http.MethodPost, "/auth/login", "",
		map[string]string{"email": email, "password": "hunter2"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	access, _ = body["access_token"].(string)
	refresh, _ = body["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}

func TestLoginAndRefreshFlow(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))

	_, refresh := f.login(t, "ann@workpoint.io")
	assert.Equal(t, 1, f.sessions.count())

	rec, body := f.do(t, http.MethodPost, "/auth/refresh", "",
		map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	newRefresh, _ := body["refresh_token"].(string)
	require.NotEmpty(t, newRefresh)
	assert.Equal(t, 1, f.sessions.count(), "rotation replaces, never accumulates")

	// The rotated-out token is dead.
	rec, body = f.do(t, http.MethodPost, "/auth/refresh", "",
		map[string]string{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", body["error"])

	// The replacement still works.
	rec, _ = f.do(t, http.MethodPost, "/auth/refresh", "",
		map[string]string{"refresh_token": newRefresh})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))

	rec, body := f.do(t, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "ann@workpoint.io", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", body["error"])
}

func TestRefreshPastBoundaryForcesLogout(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC))

	_, refresh := f.login(t, "ann@workpoint.io")
	f.clock.Set(time.Date(2024, 3, 15, 12, 5, 0, 0, time.UTC))

	rec, body := f.do(t, http.MethodPost, "/auth/refresh", "",
		map[string]string{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "forced_logout", body["error"], "the client must be able to tell forced logout from a bad token")
	assert.Equal(t, 0, f.sessions.count())
}

func TestRefreshRequiresToken(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))

	rec, _ := f.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsSessions(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))

	_, refresh := f.login(t, "ann@workpoint.io")
	rec, body := f.do(t, http.MethodPost, "/auth/logout", "",
		map[string]string{"refresh_token": refresh})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logged_out", body["status"])
	assert.Equal(t, 0, f.sessions.count())

	// Logout with garbage still acknowledges.
	rec, _ = f.do(t, http.MethodPost, "/auth/logout", "",
		map[string]string{"refresh_token": "not.a.token"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPunchLifecycleOverHTTP(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 8, 55, 0, 0, time.UTC), testClientIP)
	access, _ := f.login(t, "ann@workpoint.io")

	rec, body := f.do(t, http.MethodPost, "/attendance/punch-in", access, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "2024-03-15", body["day"])

	rec, _ = f.do(t, http.MethodPost, "/attendance/punch-in", access, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	f.clock.Set(time.Date(2024, 3, 15, 11, 55, 0, 0, time.UTC))
	rec, body = f.do(t, http.MethodPost, "/attendance/punch-out", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3*3600, body["worked_seconds"])

	rec, _ = f.do(t, http.MethodGet, "/attendance/today", access, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/attendance?month=2024-03", access, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPunchRejectedFromUnknownAddress(t *testing.T) {
	// The fixture allow-list is empty, so the test client's address is off it.
	f := newAPIFixture(t, time.Date(2024, 3, 15, 8, 55, 0, 0, time.UTC))
	access, _ := f.login(t, "ann@workpoint.io")

	rec, body := f.do(t, http.MethodPost, "/attendance/punch-in", access, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ip_not_allowed", body["error"])
}

func TestAttendanceRequiresAuth(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 8, 55, 0, 0, time.UTC), testClientIP)

	rec, _ := f.do(t, http.MethodPost, "/attendance/punch-in", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLeaveFlowOverHTTP(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	employee, _ := f.login(t, "ann@workpoint.io")
	admin, _ := f.login(t, "boss@workpoint.io")

	rec, body := f.do(t, http.MethodPost, "/leaves", employee, map[string]string{
		"type": "annual", "from": "2024-03-11", "to": "2024-03-15", "reason": "spring trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	leaveID, _ := body["id"].(string)
	require.NotEmpty(t, leaveID)
	assert.EqualValues(t, 5, body["business_days"])

	// Employees cannot reach the decision queue.
	rec, _ = f.do(t, http.MethodGet, "/admin/leaves/pending", employee, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/admin/leaves/pending", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = f.do(t, http.MethodPost, "/admin/leaves/"+leaveID+"/decision", admin,
		map[string]bool{"approve": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", body["status"])

	rec, _ = f.do(t, http.MethodPost, "/admin/leaves/"+leaveID+"/decision", admin,
		map[string]bool{"approve": false})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = f.do(t, http.MethodGet, "/leaves/balance?year=2024", employee, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 15, body["remaining"])
}

func TestLeaveRequestValidation(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	access, _ := f.login(t, "ann@workpoint.io")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"unknown type", map[string]string{"type": "sabbatical", "from": "2024-03-11", "to": "2024-03-15"}},
		{"bad from", map[string]string{"type": "sick", "from": "yesterday", "to": "2024-03-15"}},
		{"bad to", map[string]string{"type": "sick", "from": "2024-03-11", "to": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := f.do(t, http.MethodPost, "/leaves", access, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLeaveRequestOverAllowance(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	access, _ := f.login(t, "ann@workpoint.io")

	// 2024-03-01 through 2024-04-30 spans well over 20 business days.
	rec, _ := f.do(t, http.MethodPost, "/leaves", access, map[string]string{
		"type": "annual", "from": "2024-03-01", "to": "2024-04-30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAdminSessionOperations(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	admin, _ := f.login(t, "boss@workpoint.io")
	f.login(t, "ann@workpoint.io")
	require.Equal(t, 2, f.sessions.count())

	rec, _ := f.do(t, http.MethodPost, "/admin/users/user-ann/revoke-sessions", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.sessions.count())

	rec, body := f.do(t, http.MethodPost, "/admin/sessions/sweep", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["deleted"])
}

func TestAllowlistAdministration(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	admin, _ := f.login(t, "boss@workpoint.io")
	employee, _ := f.login(t, "ann@workpoint.io")

	rec, _ := f.do(t, http.MethodPost, "/admin/allowed-ips", admin,
		map[string]string{"address": testClientIP, "label": "test client"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Once the address is allowed the employee can punch in.
	rec, _ = f.do(t, http.MethodPost, "/attendance/punch-in", employee, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/admin/allowed-ips", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodDelete, "/admin/allowed-ips/"+testClientIP, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Non-admins never reach the allow-list surface.
	rec, _ = f.do(t, http.MethodPost, "/admin/allowed-ips", employee,
		map[string]string{"address": "203.0.113.50"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserAdministration(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	admin, _ := f.login(t, "boss@workpoint.io")
	employee, _ := f.login(t, "ann@workpoint.io")

	rec, body := f.do(t, http.MethodPost, "/admin/users", admin, map[string]string{
		"email": "new@workpoint.io", "password": "changeme1", "name": "New Hire",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "employee", body["role"])
	userID, _ := body["id"].(string)
	require.NotEmpty(t, userID)

	// The fresh account can log in right away.
	rec, _ = f.do(t, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "new@workpoint.io", "password": "changeme1"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/admin/users/"+userID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Duplicate email is refused.
	rec, _ = f.do(t, http.MethodPost, "/admin/users", admin, map[string]string{
		"email": "new@workpoint.io", "password": "changeme1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Short passwords are refused.
	rec, _ = f.do(t, http.MethodPost, "/admin/users", admin, map[string]string{
		"email": "short@workpoint.io", "password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Employees cannot provision accounts.
	rec, _ = f.do(t, http.MethodPost, "/admin/users", employee, map[string]string{
		"email": "rogue@workpoint.io", "password": "changeme1",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	f := newAPIFixture(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))

	rec, body := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
