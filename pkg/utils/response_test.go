package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendNoValidLineup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendNoValidLineup(c, "no WR candidates available after exclusions")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNoValidLineup, resp.Error.Code)
	assert.Equal(t, "no WR candidates available after exclusions", resp.Error.Details)
}

func TestSendSuccessWithMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendSuccessWithMeta(c, []string{"a"}, &Meta{Total: 1, DataVersion: "1-42"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":["a"],"meta":{"total":1,"data_version":"1-42"}}`, w.Body.String())
}

func TestAppError(t *testing.T) {
	assert.Equal(t, "FORBIDDEN: Admin role required", NewAppError(ErrCodeForbidden, "Admin role required").Error())
	assert.Equal(t, "INVALID_RECORD: bad row - missing name", NewAppError(ErrCodeInvalidRecord, "bad row", "missing name").Error())
}
