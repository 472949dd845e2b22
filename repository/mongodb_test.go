package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestExecuteDbOperationRetriesTransientFailure(t *testing.T) {
	calls := 0
	result, err := ExecuteDbOperation(func() (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection reset by peer")
		}
		return "ok", nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)
}

func TestExecuteDbOperationStopsOnPermanentFailure(t *testing.T) {
	calls := 0
	permanent := errors.New("duplicate key error")
	_, err := ExecuteDbOperation(func() (interface{}, error) {
		calls++
		return nil, permanent
	}, 3)

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestExecuteDbOperationExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := ExecuteDbOperation(func() (interface{}, error) {
		calls++
		return nil, errors.New("no reachable servers")
	}, 2)

	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(mongo.CommandError{Code: 91}))  // ShutdownInProgress
	assert.True(t, isRetryableError(mongo.CommandError{Code: 189})) // PrimarySteppedDown
	assert.False(t, isRetryableError(mongo.CommandError{Code: 11000}))

	assert.True(t, isRetryableError(errors.New("server selection error: timeout")))
	assert.False(t, isRetryableError(errors.New("document validation failed")))
}
