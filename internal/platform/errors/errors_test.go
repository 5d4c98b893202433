package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeBusiness, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	// New / Newf
	e1 := New(ErrorCodeValidation, "speed out of range")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad payload for vessel %d", 12)
	if got := e2.Error(); got != "bad payload for vessel 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	// Wrap / Wrapf / Unwrap
	src := stderrs.New("connection reset")
	e3 := Wrap(src, ErrorCodeUnavailable, "index fetch")
	if inner := stderrs.Unwrap(e3); inner == nil || inner.Error() != "connection reset" {
		t.Fatal("Wrap did not keep cause")
	}
	if CodeOf(e3) != ErrorCodeUnavailable {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	e4 := Wrapf(src, ErrorCodeBusiness, "depart %s refused", "MSC Iris")
	if want := "depart MSC Iris refused: connection reset"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}

	// As
	if got, ok := As(e4); !ok || got.Code() != ErrorCodeBusiness {
		t.Fatal("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatal("As() true for foreign error")
	}

	// WithOp is copy-on-write
	e5 := WithOp(e3, "fleet.depart")
	if oe, ok := As(e5); !ok || oe.Op() != "fleet.depart" {
		t.Fatal("WithOp failed")
	}
	if oe0, _ := As(e3); oe0.Op() != "" {
		t.Fatal("WithOp mutated original")
	}
	// foreign errors pass through unchanged
	if WithOp(src, "x") != src {
		t.Fatal("WithOp wrapped a foreign error")
	}

	// ErrNotFound sentinel behavior
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatal("ErrNotFound code mismatch")
	}
}

func TestWire(t *testing.T) {
	src := stderrs.New("socket closed")

	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v, want zero", wf)
	}
	// foreign error -> Unknown with original message
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "socket closed" {
		t.Fatalf("WireFrom(foreign) = %+v", wf)
	}
	// ours uses only the bare message, not "msg: cause"
	e := Wrapf(src, ErrorCodeTooManyRequests, "message send throttled")
	if wf := WireFrom(e); wf.Code != ErrorCodeTooManyRequests || wf.Message != "message send throttled" {
		t.Fatalf("WireFrom(ours) = %+v", wf)
	}
}

func TestHTTPHelper(t *testing.T) {
	if st, w := HTTP(nil); st != http.StatusOK || w != (Wire{}) {
		t.Fatalf("HTTP(nil) = %d %+v", st, w)
	}
	st, w := HTTP(NotFoundf("unknown actor %q", "a9"))
	if st != http.StatusNotFound || w.Code != ErrorCodeNotFound {
		t.Fatalf("HTTP(err) = %d %+v", st, w)
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{Unavailablef("upstream flapping"), true},
		{RateLimitedf("429 from game api"), true},
		{Businessf("insufficient funds"), false},
		{Conflictf("departure already running"), false},
		{NotFoundf("no such vessel"), false},
		{stderrs.New("plain"), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := Retryable(c.err); got != c.want {
			t.Fatalf("Retryable(%v) = %v, want %v", c.err, got, c.want)
		}
	}

	// classification survives wrapping
	if !Retryable(Wrap(Unavailablef("timeout"), ErrorCodeUnavailable, "vessels fetch")) {
		t.Fatal("wrapped transient error not retryable")
	}
}

func TestSugarConstructors(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{Conflictf("x"), ErrorCodeConflict},
		{Businessf("x"), ErrorCodeBusiness},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{RateLimitedf("x"), ErrorCodeTooManyRequests},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{DBf("x"), ErrorCodeDB},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, c := range cases {
		if CodeOf(c.err) != c.want {
			t.Fatalf("CodeOf = %v, want %v", CodeOf(c.err), c.want)
		}
	}
}
