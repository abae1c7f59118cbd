package select_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/availability"
	selectSlot "github.com/m04kA/SLN-SchedulingService/internal/usecase/select_slot"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type useCaseStub struct {
	resp *selectSlot.Response
	err  error

	gotReq *selectSlot.Request
}

func (s *useCaseStub) Execute(ctx context.Context, req *selectSlot.Request) (*selectSlot.Response, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func doRequest(t *testing.T, stub *useCaseStub, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(stub, nopLogger{})

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/sessions/{sessionId}/slot", handler.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/sess-1/slot", strings.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandle_Success(t *testing.T) {
	stub := &useCaseStub{
		resp: &selectSlot.Response{
			SessionID: "sess-1",
			State:     "review_and_proceed",
			Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00",
			EndTime:   "11:30",
			Summary:   "01.03.2024 10:00–11:30",
		},
	}

	recorder := doRequest(t, stub, `{"date":"2024-03-01","startTime":"10:00"}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp SessionSlotResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "review_and_proceed", resp.State)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:30", resp.EndTime)

	// В use case ушли распарсенные дата, время и владелец из заголовка
	require.NotNil(t, stub.gotReq)
	assert.Equal(t, "sess-1", stub.gotReq.SessionID)
	assert.Equal(t, "user-1", stub.gotReq.UserID)
	assert.Equal(t, "10:00", string(stub.gotReq.StartTime))
}

func TestHandle_Conflict(t *testing.T) {
	stub := &useCaseStub{
		err: &selectSlot.SlotConflictError{
			Conflict: &availability.Conflict{
				Kind:      availability.KindBooking,
				BookingID: "bkg-1",
			},
		},
	}

	recorder := doRequest(t, stub, `{"date":"2024-03-01","startTime":"10:00"}`)

	require.Equal(t, http.StatusConflict, recorder.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "booking_conflict", resp.Kind)
	assert.Equal(t, "bkg-1", resp.BookingID)
	assert.NotEmpty(t, resp.Error)
}

func TestHandle_InvalidDate(t *testing.T) {
	recorder := doRequest(t, &useCaseStub{}, `{"date":"01.03.2024","startTime":"10:00"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandle_SessionNotFound(t *testing.T) {
	stub := &useCaseStub{err: selectSlot.ErrSessionNotFound}
	recorder := doRequest(t, stub, `{"date":"2024-03-01","startTime":"10:00"}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandle_MissingUserID(t *testing.T) {
	handler := NewHandler(&useCaseStub{}, nopLogger{})

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/sessions/{sessionId}/slot", handler.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/sess-1/slot",
		strings.NewReader(`{"date":"2024-03-01","startTime":"10:00"}`))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
