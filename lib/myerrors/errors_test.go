package myerrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	myErr := fmt.Errorf("my error")

	testCases := []struct {
		name       string
		in         error
		httpStatus int
		kind       Kind
		errorText  string
	}{
		{
			name:       "No http error",
			in:         myErr,
			httpStatus: 500,
			kind:       KindUnexpected,
			errorText:  "my error",
		},
		{
			name:       "Bad request error",
			in:         NewBadRequestError(myErr),
			httpStatus: 400,
			kind:       KindInvalidInput,
			errorText:  "status: 400, err: my error",
		},
		{
			name:       "Invalid input error",
			in:         NewInvalidInputError(myErr),
			httpStatus: 422,
			kind:       KindInvalidInput,
			errorText:  "status: 422, err: my error",
		},
		{
			name:       "Invalid input errorf",
			in:         NewInvalidInputErrorf("%s: %d", myErr.Error(), 123),
			httpStatus: 422,
			kind:       KindInvalidInput,
			errorText:  "status: 422, err: my error: 123",
		},
		{
			name:       "Not found error",
			in:         NewNotFoundError(myErr),
			httpStatus: 404,
			kind:       KindNotFound,
			errorText:  "status: 404, err: my error",
		},
		{
			name:       "Duplicate key error",
			in:         NewDuplicateKeyError(myErr),
			httpStatus: 409,
			kind:       KindDuplicateKey,
			errorText:  "status: 409, err: my error",
		},
		{
			name:       "Optimistic lock error",
			in:         NewOptimisticLockError(myErr),
			httpStatus: 409,
			kind:       KindOptimisticLock,
			errorText:  "status: 409, err: my error",
		},
		{
			name:       "Internal error",
			in:         NewInternalError(myErr),
			httpStatus: 500,
			kind:       KindUnexpected,
			errorText:  "status: 500, err: my error",
		},
		{
			name:       "Not implemented error",
			in:         NewNotImplementedError(myErr),
			httpStatus: 501,
			kind:       KindNotImplemented,
			errorText:  "status: 501, err: my error",
		},
		{
			name:       "Not available error",
			in:         NewUnavailableError(myErr),
			httpStatus: 503,
			kind:       KindUnavailable,
			errorText:  "status: 503, err: my error",
		},
		{
			name:       "Wrapped not found error",
			in:         fmt.Errorf("fetching product: %w", NewNotFoundError(myErr)),
			httpStatus: 404,
			kind:       KindNotFound,
			errorText:  "fetching product: status: 404, err: my error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.httpStatus, GetHTTPStatus(tc.in))
			assert.Equal(t, tc.kind, GetKind(tc.in))
			assert.Equal(t, tc.errorText, tc.in.Error())
		})
	}
}

func TestPredicates(t *testing.T) {
	myErr := fmt.Errorf("my error")

	assert.True(t, IsNotFoundError(NewNotFoundError(myErr)))
	assert.False(t, IsNotFoundError(myErr))
	assert.True(t, IsInvalidInputError(NewBadRequestError(myErr)))
	assert.True(t, IsDuplicateKeyError(NewDuplicateKeyErrorf("Duplicate key, Product Id: %d", 1)))
	assert.True(t, IsOptimisticLockError(NewOptimisticLockError(myErr)))
	assert.False(t, IsOptimisticLockError(NewDuplicateKeyError(myErr)))
	assert.False(t, IsNotFoundError(nil))
}

func TestGetMessage(t *testing.T) {
	assert.Equal(t, "Invalid productId: -1", GetMessage(NewInvalidInputErrorf("Invalid productId: %d", -1)))
	assert.Equal(t, "plain", GetMessage(fmt.Errorf("plain")))
	assert.ErrorIs(t, NewInternalError(errSentinel), errSentinel)
}

var errSentinel = fmt.Errorf("sentinel")
