package transition_appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentara/scheduling-service/internal/api/handlers"
	"github.com/mentara/scheduling-service/internal/api/middleware"
	transitionAppointment "github.com/mentara/scheduling-service/internal/usecase/transition_appointment"
)

type fakeUseCase struct {
	gotReq *transitionAppointment.Request
	resp   *transitionAppointment.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *transitionAppointment.Request) (*transitionAppointment.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestRouter(uc *fakeUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/appointments/{appointmentId}/{action}", h.Handle).Methods(http.MethodPatch)
	return r
}

func doRequest(t *testing.T, router *mux.Router, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPatch, path, &buf)
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ConfirmSuccess(t *testing.T) {
	uc := &fakeUseCase{resp: &transitionAppointment.Response{ID: 7, Status: "confirmed"}}
	router := newTestRouter(uc)

	rec := doRequest(t, router, "/api/v1/appointments/7/confirm", "10",
		TransitionRequest{Reply: strPtr("ok")})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(7), uc.gotReq.AppointmentID)
	assert.Equal(t, int64(10), uc.gotReq.ActorID)
	assert.Equal(t, transitionAppointment.OpConfirm, uc.gotReq.Operation)
	require.NotNil(t, uc.gotReq.Reply)
	assert.Equal(t, "ok", *uc.gotReq.Reply)
}

func TestHandle_EmptyBodyIsAccepted(t *testing.T) {
	// cancel и complete приходят без тела
	uc := &fakeUseCase{resp: &transitionAppointment.Response{ID: 7, Status: "cancelled"}}
	router := newTestRouter(uc)

	rec := doRequest(t, router, "/api/v1/appointments/7/cancel", "100", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, transitionAppointment.OpCancel, uc.gotReq.Operation)
}

func TestHandle_MissingUserIDHeader(t *testing.T) {
	uc := &fakeUseCase{}
	router := newTestRouter(uc)

	rec := doRequest(t, router, "/api/v1/appointments/7/confirm", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_UnknownAction(t *testing.T) {
	uc := &fakeUseCase{}
	router := newTestRouter(uc)

	rec := doRequest(t, router, "/api/v1/appointments/7/escalate", "10", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_InvalidAppointmentID(t *testing.T) {
	uc := &fakeUseCase{}
	router := newTestRouter(uc)

	rec := doRequest(t, router, "/api/v1/appointments/abc/confirm", "10", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", transitionAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{"access denied", transitionAppointment.ErrAccessDenied, http.StatusForbidden},
		{"invalid transition", transitionAppointment.ErrInvalidTransition, http.StatusConflict},
		{"not ended", transitionAppointment.ErrAppointmentNotEnded, http.StatusConflict},
		{"already rated", transitionAppointment.ErrAlreadyRated, http.StatusConflict},
		{"invalid input", transitionAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"internal", transitionAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tc.err}
			router := newTestRouter(uc)

			rec := doRequest(t, router, "/api/v1/appointments/7/confirm", "10", nil)

			assert.Equal(t, tc.status, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func strPtr(s string) *string { return &s }
