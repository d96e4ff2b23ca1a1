package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceService records the last call and returns canned results.
type fakeAttendanceService struct {
	attendance.AttendanceService

	checkInFn  func(ctx context.Context, userID, orgID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	checkOutFn func(ctx context.Context, userID, orgID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error)
	listFn     func(ctx context.Context, userID, orgID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error)
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, userID, orgID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, userID, orgID, req)
}

func (f *fakeAttendanceService) CheckOut(ctx context.Context, userID, orgID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, userID, orgID, req)
}

func (f *fakeAttendanceService) GetMyAttendance(ctx context.Context, userID, orgID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return f.listFn(ctx, userID, orgID, filter)
}

var testJWTAuth = jwtauth.New("HS256", []byte("handler-test-secret"), nil)

// authedRequest attaches verified access-token claims the way the Verifier
// middleware would.
func authedRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	token, _, err := testJWTAuth.Encode(map[string]interface{}{
		"user_id":         "user-1",
		"organization_id": "org-1",
		"role":            "employee",
		"type":            "access",
	})
	require.NoError(t, err)

	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	checkInTime := "09:00"
	svc := &fakeAttendanceService{
		checkInFn: func(ctx context.Context, userID, orgID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, "user-1", userID)
			assert.Equal(t, "org-1", orgID)
			assert.Equal(t, 37.7749, req.Latitude)
			return attendance.AttendanceResponse{
				ID:          "att-1",
				UserID:      userID,
				Date:        "2025-03-10",
				Status:      "present",
				CheckInTime: &checkInTime,
			}, nil
		},
	}
	handler := NewAttendanceHandler(svc)

	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-in",
		`{"latitude": 37.7749, "longitude": -122.4194}`)
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Checked in successfully", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "att-1", data["id"])
	assert.Equal(t, "09:00", data["check_in_time"])
}

func TestAttendanceHandler_CheckIn_AlreadyCheckedIn(t *testing.T) {
	svc := &fakeAttendanceService{
		checkInFn: func(ctx context.Context, userID, orgID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		},
	}
	handler := NewAttendanceHandler(svc)

	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-in",
		`{"latitude": 37.7749, "longitude": -122.4194}`)
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, false, body["success"])

	errDetail := body["error"].(map[string]interface{})
	assert.Equal(t, "CONFLICT", errDetail["code"])
}

func TestAttendanceHandler_CheckIn_OutsideGeofence(t *testing.T) {
	svc := &fakeAttendanceService{
		checkInFn: func(ctx context.Context, userID, orgID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, &attendance.OutsideGeofenceError{
				DistanceMeters: 250,
				RadiusMeters:   100,
			}
		},
	}
	handler := NewAttendanceHandler(svc)

	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-in",
		`{"latitude": 37.78, "longitude": -122.4194}`)
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeResponse(t, rec)

	errDetail := body["error"].(map[string]interface{})
	assert.Equal(t, "OUTSIDE_GEOFENCE", errDetail["code"])

	details := errDetail["details"].(map[string]interface{})
	assert.Equal(t, "250", details["distance_meters"])
	assert.Equal(t, "100", details["radius_meters"])
}

func TestAttendanceHandler_CheckIn_InvalidBody(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", `{not json`)
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceHandler_CheckIn_NoClaims(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in",
		strings.NewReader(`{"latitude": 1, "longitude": 1}`))
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAttendanceHandler_CheckOut_NoOpenSession(t *testing.T) {
	svc := &fakeAttendanceService{
		checkOutFn: func(ctx context.Context, userID, orgID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendance.ErrNoOpenSession
		},
	}
	handler := NewAttendanceHandler(svc)

	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-out",
		`{"latitude": 37.7749, "longitude": -122.4194}`)
	rec := httptest.NewRecorder()
	handler.CheckOut(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceHandler_CheckOut_Success(t *testing.T) {
	worked := 510
	svc := &fakeAttendanceService{
		checkOutFn: func(ctx context.Context, userID, orgID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{
				ID:            "att-1",
				UserID:        userID,
				Date:          "2025-03-10",
				Status:        "present",
				WorkedMinutes: &worked,
			}, nil
		},
	}
	handler := NewAttendanceHandler(svc)

	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-out",
		`{"latitude": 37.7749, "longitude": -122.4194}`)
	rec := httptest.NewRecorder()
	handler.CheckOut(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(510), data["worked_minutes"])
}

func TestAttendanceHandler_GetMyAttendance_ParsesFilter(t *testing.T) {
	svc := &fakeAttendanceService{
		listFn: func(ctx context.Context, userID, orgID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
			require.NotNil(t, filter.StartDate)
			assert.Equal(t, "2025-03-01", *filter.StartDate)
			require.NotNil(t, filter.Status)
			assert.Equal(t, "present", *filter.Status)
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, 10, filter.Limit)
			return attendance.ListAttendanceResponse{
				TotalCount:  25,
				Page:        2,
				Limit:       10,
				TotalPages:  3,
				Attendances: []attendance.AttendanceResponse{},
			}, nil
		},
	}
	handler := NewAttendanceHandler(svc)

	req := authedRequest(t, http.MethodGet,
		"/api/v1/attendance/my?start_date=2025-03-01&status=present&page=2&limit=10", "")
	rec := httptest.NewRecorder()
	handler.GetMyAttendance(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(25), meta["total_items"])
	assert.Equal(t, float64(3), meta["total_pages"])
}
