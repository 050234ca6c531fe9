// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/momeni/ambulante/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/ambulante/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
)

func serErr(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	serdser.SerErr(c, err)
	return w
}

func TestSerErr(t *testing.T) {
	for _, tc := range []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "bad request",
			err:    cerr.BadRequest(errors.New("radius must be positive")),
			status: http.StatusBadRequest,
			body:   `{"error":"radius must be positive"}`,
		},
		{
			name: "wrapped data source error",
			err: fmt.Errorf(
				"handler: %w", cerr.DataSource(errors.New("dial tcp")),
			),
			status: http.StatusInternalServerError,
			body:   `{"error":"failed to search nearby vendors"}`,
		},
		{
			name:   "unknown error",
			err:    errors.New("secret internal detail"),
			status: http.StatusInternalServerError,
			body:   `{"error":"internal server error"}`,
		},
	} {
		w := serErr(tc.err)
		assert.Equal(t, tc.status, w.Code, tc.name)
		assert.JSONEq(t, tc.body, w.Body.String(), tc.name)
	}
}

func TestAssert(t *testing.T) {
	var errs map[string][]string
	assert.True(t, serdser.Assert(&errs, true, "lat", "unused"))
	assert.Nil(t, errs)
	assert.False(t, serdser.Assert(&errs, false, "lat", "is required"))
	serdser.AddErr(&errs, "lat", "must be a number")
	assert.Equal(t, map[string][]string{
		"lat": {"is required", "must be a number"},
	}, errs)
}
