package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/test", nil)
	handler(c)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestSuccess(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, map[string]string{"name": "test"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if resp.Message != "ok" {
		t.Errorf("expected message 'ok', got %q", resp.Message)
	}
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, map[string]string{"id": "abc"})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name       string
		handler    gin.HandlerFunc
		httpStatus int
		code       int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "invalid input") }, http.StatusBadRequest, 400},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "token expired") }, http.StatusUnauthorized, 401},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "leader required") }, http.StatusForbidden, 403},
		{"not found", func(c *gin.Context) { NotFound(c, "project not found") }, http.StatusNotFound, 404},
		{"locked", func(c *gin.Context) { Locked(c, "account suspended") }, http.StatusLocked, 423},
		{"too many requests", func(c *gin.Context) { TooManyRequests(c, "usage limit reached") }, http.StatusTooManyRequests, 429},
		{"server error", func(c *gin.Context) { ServerError(c, "internal error") }, http.StatusInternalServerError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(tt.handler)
			if w.Code != tt.httpStatus {
				t.Errorf("expected status %d, got %d", tt.httpStatus, w.Code)
			}
			resp := parseResponse(t, w)
			if resp.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, resp.Code)
			}
		})
	}
}

func TestError_WithAppError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewLocked("account suspended until 2026-09-01"))
	})

	if w.Code != http.StatusLocked {
		t.Errorf("expected status %d, got %d", http.StatusLocked, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 423 {
		t.Errorf("expected code 423, got %d", resp.Code)
	}
	if resp.Message != "account suspended until 2026-09-01" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestError_WithGenericError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("something went wrong"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 500 {
		t.Errorf("expected code 500, got %d", resp.Code)
	}
}

func TestAppError_ErrorInterface(t *testing.T) {
	err := NewNotFound("user not found")
	if err.Error() != "user not found" {
		t.Errorf("expected 'user not found', got %q", err.Error())
	}

	tooMany := NewTooManyRequests("limit")
	if tooMany.HTTPStatus != http.StatusTooManyRequests || tooMany.Code != 429 {
		t.Errorf("unexpected constructor values: %+v", tooMany)
	}
}
