package cerr_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/momeni/ambulante/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
)

func TestDataSourceHidesDetails(t *testing.T) {
	err := cerr.DataSource(context.DeadlineExceeded)
	assert.ErrorIs(t, err, cerr.ErrDataSource)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatusCode)
	assert.Equal(t, "failed to search nearby vendors", err.PublicMessage())
	assert.Contains(t, err.Error(), "deadline exceeded")
}

func TestBadRequestReportsItsMessage(t *testing.T) {
	err := cerr.BadRequest(errors.New("latitude and longitude are required"))
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatusCode)
	assert.Equal(t, "latitude and longitude are required", err.PublicMessage())
	assert.NotErrorIs(t, err, cerr.ErrDataSource)
}
