package codes

import (
	"errors"
	"strconv"

	"dsc/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// Convert map engine errors to twirp errors, the engine code is kept as custom code
func Convert(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	twerr := twirp.NewError(twirpCode(code), err.Error())
	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(int(code)))
}

func twirpCode(code core.ErrorCode) twirp.ErrorCode {
	switch code.Kind() {
	case core.KindValidation:
		if code == core.ErrUnsupportedAsset {
			return twirp.NotFound
		}

		return twirp.InvalidArgument
	case core.KindSolvency:
		return twirp.FailedPrecondition
	case core.KindOracle:
		return twirp.Unavailable
	case core.KindArithmetic:
		return twirp.OutOfRange
	case core.KindAuthorization:
		return twirp.PermissionDenied
	}

	if code == core.ErrConcurrentUpdate {
		return twirp.Aborted
	}

	return twirp.Internal
}
