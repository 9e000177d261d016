package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: reason must not be empty", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: only the requester may cancel", service.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: request was decided concurrently", service.ErrInvalidState), http.StatusConflict},
		{fmt.Errorf("%w: vacation request", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		writeServiceError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

func TestStatusFilterRejectsUnknownValues(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/vacation-requests?status=BOGUS", nil)

	_, ok := statusFilter(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/vacation-requests?status=PENDING", nil)

	status, ok := statusFilter(c)
	assert.True(t, ok)
	assert.EqualValues(t, "PENDING", status)
}
