package httpclient

import "encoding/json"

// Result is the outcome of an HTTP exchange that completed: either the success
// arm carrying S (2xx) or the failure arm carrying E. Exactly one arm is set.
type Result[S, E any] struct {
	ok     bool
	data   S
	err    E
	status int
	raw    json.RawMessage
}

// NewSuccess builds a success Result. Mostly useful for fakes in tests.
func NewSuccess[S, E any](data S) Result[S, E] {
	return Result[S, E]{ok: true, data: data}
}

// NewFailure builds a failure Result. Mostly useful for fakes in tests.
func NewFailure[S, E any](err E) Result[S, E] {
	return Result[S, E]{err: err}
}

// Success reports which arm is populated.
func (r Result[S, E]) Success() bool { return r.ok }

// Data returns the success payload; ok is false on a failure Result.
func (r Result[S, E]) Data() (data S, ok bool) {
	if !r.ok {
		var zero S
		return zero, false
	}
	return r.data, true
}

// Failure returns the error payload; ok is false on a success Result.
func (r Result[S, E]) Failure() (err E, ok bool) {
	if r.ok {
		var zero E
		return zero, false
	}
	return r.err, true
}

// StatusCode is the HTTP status the Result was classified from (0 for hand-built values).
func (r Result[S, E]) StatusCode() int { return r.status }

// Raw returns the extracted body: the JSON payload as received or the fallback body.
func (r Result[S, E]) Raw() json.RawMessage { return r.raw }

// MarshalJSON renders the tagged shape {"success":true,"data":...} or
// {"success":false,"error":...}.
func (r Result[S, E]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(struct {
			Success bool `json:"success"`
			Status  int  `json:"status,omitempty"`
			Data    S    `json:"data"`
		}{Success: true, Status: r.status, Data: r.data})
	}
	return json.Marshal(struct {
		Success bool `json:"success"`
		Status  int  `json:"status,omitempty"`
		Error   E    `json:"error"`
	}{Success: false, Status: r.status, Error: r.err})
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}

// classify wraps an extracted body into the arm selected by status.
func classify[S, E any](status int, raw json.RawMessage) Result[S, E] {
	if isSuccessStatus(status) {
		return Result[S, E]{ok: true, data: decodeInto[S](raw), status: status, raw: raw}
	}
	return Result[S, E]{err: decodeInto[E](raw), status: status, raw: raw}
}
