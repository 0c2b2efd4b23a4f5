package tester

import (
	"errors"
	"reflect"
	"testing"
)

// Eq asserts that got == want using reflect.DeepEqual for non-comparable types.
func Eq[T any](t testing.TB, got, want T, msgAndArgs ...any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: got=%v want=%v", msgAndArgs[0], got, want)
		}
		t.Fatalf("got=%v want=%v", got, want)
	}
}

// True asserts that cond is true.
func True(t testing.TB, cond bool, msgAndArgs ...any) {
	t.Helper()
	if !cond {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v", msgAndArgs[0])
		}
		t.Fatalf("expected condition to be true")
	}
}

// False asserts that cond is false.
func False(t testing.TB, cond bool, msgAndArgs ...any) {
	t.Helper()
	True(t, !cond, msgAndArgs...)
}

// NoErr asserts that err is nil.
func NoErr(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: %v", msgAndArgs[0], err)
		}
		t.Fatalf("unexpected error: %v", err)
	}
}

// Err asserts that err is not nil.
func Err(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: expected an error", msgAndArgs[0])
		}
		t.Fatalf("expected an error")
	}
}

// ErrIs asserts that err matches target via errors.Is.
func ErrIs(t testing.TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error %v is not %v", err, target)
	}
}

// Nil asserts that a pointer result is nil, the failure sentinel of the
// analysis calls.
func Nil[T any](t testing.TB, got *T, msgAndArgs ...any) {
	t.Helper()
	if got != nil {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: got %+v, want nil", msgAndArgs[0], *got)
		}
		t.Fatalf("got %+v, want nil", *got)
	}
}

// NotNil asserts that a pointer result is present.
func NotNil[T any](t testing.TB, got *T, msgAndArgs ...any) {
	t.Helper()
	if got == nil {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: got nil", msgAndArgs[0])
		}
		t.Fatalf("got nil")
	}
}
