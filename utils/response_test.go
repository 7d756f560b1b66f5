package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
)

func failWith(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSONFail(c, err)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %s", w.Body.String())
	}
	return w.Code, body
}

func TestJSONFail_StatusPerErrorKind(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{services.ErrInvalidPeriod, http.StatusBadRequest, "invalid_period"},
		{services.ErrInvalidDate, http.StatusBadRequest, "invalid_date"},
		{services.ErrInvalidDecision, http.StatusBadRequest, "invalid_decision"},
		{services.ErrInvalidChoice, http.StatusBadRequest, "invalid_choice"},
		{services.ErrMissingField, http.StatusBadRequest, "missing_field"},
		{services.ErrRoomNotFound, http.StatusNotFound, "room_not_found"},
		{services.ErrProposalNotFound, http.StatusNotFound, "proposal_not_found"},
		{services.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
		{services.ErrNotFound, http.StatusNotFound, "not_found"},
		{services.ErrAlreadyReviewed, http.StatusConflict, "already_reviewed"},
		{services.ErrDuplicateIdentity, http.StatusConflict, "duplicate_identity"},
	}
	for _, tc := range cases {
		code, body := failWith(t, tc.err)
		if code != tc.status {
			t.Errorf("Expected status %d for %v, got %d", tc.status, tc.err, code)
		}
		errObj, _ := body["error"].(map[string]interface{})
		if errObj == nil || errObj["kind"] != tc.kind {
			t.Errorf("Expected kind %q for %v, got %v", tc.kind, tc.err, body)
		}
		if body["success"] != false {
			t.Errorf("Expected success=false, got %v", body["success"])
		}
	}
}

func TestJSONFail_WrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("%w: id 42", services.ErrRoomNotFound)
	code, body := failWith(t, wrapped)
	if code != http.StatusNotFound {
		t.Errorf("Expected 404 for wrapped ErrRoomNotFound, got %d", code)
	}
	errObj, _ := body["error"].(map[string]interface{})
	if errObj == nil || errObj["kind"] != "room_not_found" {
		t.Errorf("Expected room_not_found kind, got %v", body)
	}
}

func TestJSONFail_UnknownErrorIsInternal(t *testing.T) {
	code, body := failWith(t, errors.New("disk on fire"))
	if code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for unknown error, got %d", code)
	}
	errObj, _ := body["error"].(map[string]interface{})
	if errObj == nil || errObj["kind"] != "internal" {
		t.Errorf("Expected internal kind, got %v", body)
	}
}

func TestJSONBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSONBadRequest(c, "stayDuration is required")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %s", w.Body.String())
	}
	errObj, _ := body["error"].(map[string]interface{})
	if errObj == nil || errObj["kind"] != "invalid_payload" {
		t.Errorf("Expected invalid_payload kind, got %v", body)
	}
}
