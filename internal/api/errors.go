package api

import "fmt"

// FetchError indicates a transport failure or a non-2xx response. The
// previously loaded dataset, if any, must be left untouched by callers.
type FetchError struct {
	Status int // 0 when the request never got a response
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("delivery API returned status %d", e.Status)
	}
	return fmt.Sprintf("failed to call delivery API: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError indicates a response body that is neither a JSON record array,
// a JSON object with a "data" array, nor parseable CSV.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode delivery API response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot decode delivery API response: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }
