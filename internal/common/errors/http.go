package errors

import "net/http"

// HTTPStatusMapping maps internal error codes to HTTP response statuses.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeClassifierNotTrained: http.StatusServiceUnavailable,
	ErrCodeCorpusInvalid:        http.StatusBadRequest,
	ErrCodeCorpusTooSmall:       http.StatusBadRequest,
	ErrCodeInputParsingFailed:   http.StatusBadRequest,
	ErrCodeValidationFailed:     http.StatusBadRequest,
	ErrCodeCacheUnavailable:     http.StatusServiceUnavailable,
	ErrCodeIntentParsingFailed:  http.StatusInternalServerError,
}

// HTTPStatus resolves the response status for err. Unknown errors map to
// 500.
func HTTPStatus(err error) int {
	if stdErr, ok := err.(*StandardError); ok {
		if status, exists := HTTPStatusMapping[stdErr.Code]; exists {
			return status
		}
	}
	return http.StatusInternalServerError
}
