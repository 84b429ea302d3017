package request

import "fmt"

// errBadRequest signals a malformed request directory: missing or
// duplicate parameter file, or duplicate input-file stems.
type errBadRequest struct{ msg string }

func (e *errBadRequest) Error() string { return e.msg }

// BadRequest builds a BadRequest failure with the given message. The
// scheduler uses the exact strings callers pass here as the task's
// failure message, so call sites own their wording.
func BadRequest(format string, args ...interface{}) error {
	return &errBadRequest{msg: fmt.Sprintf(format, args...)}
}

// IsBadRequest reports whether err is a BadRequest failure.
func IsBadRequest(err error) bool {
	_, ok := err.(*errBadRequest)
	return ok
}

// errChecksumMismatch signals that an input file's sidecar checksum
// disagrees with the file's content.
type errChecksumMismatch struct{ msg string }

func (e *errChecksumMismatch) Error() string { return e.msg }

func ChecksumMismatch(format string, args ...interface{}) error {
	return &errChecksumMismatch{msg: fmt.Sprintf(format, args...)}
}

func IsChecksumMismatch(err error) bool {
	_, ok := err.(*errChecksumMismatch)
	return ok
}

// errWorkspaceExists signals that output/ already existed at
// admission time.
type errWorkspaceExists struct{ msg string }

func (e *errWorkspaceExists) Error() string { return e.msg }

func WorkspaceExists(format string, args ...interface{}) error {
	return &errWorkspaceExists{msg: fmt.Sprintf(format, args...)}
}

func IsWorkspaceExists(err error) bool {
	_, ok := err.(*errWorkspaceExists)
	return ok
}

// errTimeout signals that a bounded wait exceeded its deadline: a
// Submit caller's wait for admission, a Future.Result wait, or the
// scheduler's engine-invocation deadline.
type errTimeout struct{ msg string }

func (e *errTimeout) Error() string { return e.msg }

func Timeout(format string, args ...interface{}) error {
	return &errTimeout{msg: fmt.Sprintf(format, args...)}
}

func IsTimeout(err error) bool {
	_, ok := err.(*errTimeout)
	return ok
}

// errLostHeartbeat is client-side only: submit()'s monitoring loop
// observed a BEAT file whose last timestamp failed to advance.
type errLostHeartbeat struct{ msg string }

func (e *errLostHeartbeat) Error() string { return e.msg }

func LostHeartbeat(format string, args ...interface{}) error {
	return &errLostHeartbeat{msg: fmt.Sprintf(format, args...)}
}

func IsLostHeartbeat(err error) bool {
	_, ok := err.(*errLostHeartbeat)
	return ok
}
