package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/internal/util"
	"remedial_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitLogger("debug")
}

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{util.ErrQuizCodeRequired, http.StatusBadRequest},
		{util.ErrStudentRefRequired, http.StatusBadRequest},
		{util.ErrAnswerRequired, http.StatusBadRequest},
		{service.ErrTitleRequired, http.StatusBadRequest},
		{service.ErrBadChoiceSetup, http.StatusBadRequest},
		{util.ErrInvalidCredentials, http.StatusUnauthorized},
		{util.ErrAssessmentNotPublished, http.StatusForbidden},
		{util.ErrInvalidQRToken, http.StatusForbidden},
		{util.ErrNotYetOpen, http.StatusForbidden},
		{util.ErrWindowClosed, http.StatusForbidden},
		{util.ErrWrongPhonemicLevel, http.StatusForbidden},
		{util.ErrAssessmentNotFound, http.StatusNotFound},
		{util.ErrStudentNotFound, http.StatusNotFound},
		{util.ErrAttemptNotFound, http.StatusNotFound},
		{util.ErrQuestionNotFound, http.StatusNotFound},
		{util.ErrAlreadyTaken, http.StatusConflict},
		{util.ErrDuplicateIdentifier, http.StatusConflict},
		{util.ErrAttemptNotActive, http.StatusConflict},
		{util.ErrAttemptCreationBusy, http.StatusConflict},
		{util.ErrAssessmentLocked, http.StatusConflict},
		{util.ErrAnswersPending, http.StatusConflict},
		{util.ErrApprovalDecided, http.StatusConflict},
		{util.ErrEmailRegistered, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

			respondServiceError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestPaginationDefaultsAndClamps(t *testing.T) {
	newCtx := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		return c
	}

	page, limit := pagination(newCtx(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = pagination(newCtx("page=3&limit=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	page, limit = pagination(newCtx("page=-1&limit=9999"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}
