package pod

import "fmt"

// OpError describes a failed pod operation. Exactly one of Status and Err
// carries the failure: a non-zero Status is an unexpected HTTP status code, a
// non-nil Err is a transport failure (DNS, timeout, connection reset).
type OpError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.Status)
}

func (e *OpError) Unwrap() error { return e.Err }

// Transport reports whether the failure happened before any HTTP status was
// received.
func (e *OpError) Transport() bool { return e.Err != nil }

func statusErr(op, url string, status int) *OpError {
	return &OpError{Op: op, URL: url, Status: status}
}

func transportErr(op, url string, err error) *OpError {
	return &OpError{Op: op, URL: url, Err: err}
}
