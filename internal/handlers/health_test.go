package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestDBHealthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := NewMockPinger(ctrl)
	h := NewDBHealthHandler(db)

	db.EXPECT().PingContext(gomock.Any()).Return(nil)
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/dbhealth", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":true}`, rr.Body.String())

	db.EXPECT().PingContext(gomock.Any()).Return(errors.New("connection refused"))
	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/dbhealth", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"data":false}`, rr.Body.String())
}
