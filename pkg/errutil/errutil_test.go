package errutil

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestCode(t *testing.T) {
	if Code(ErrInvalidArgument) != ecInvalidArgument {
		t.Fail()
	}

	wrapped := pkgerrors.Wrap(ErrAuthFailed, "login")
	if Code(wrapped) != ecAuthFailed {
		t.Fatalf("Code(%v) = %d, want %d", wrapped, Code(wrapped), ecAuthFailed)
	}

	if Code(errors.New("something else")) != Unknown {
		t.Fail()
	}
}

func TestCodesUnique(t *testing.T) {
	seen := map[int]error{}
	for err, c := range errs {
		if prev, ok := seen[c]; ok {
			t.Fatalf("code %d shared by %q and %q", c, prev, err)
		}
		seen[c] = err
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Fail()
	}
	if ExitCode(errors.New("other")) != 1 {
		t.Fail()
	}
	wrapped := pkgerrors.Wrap(ErrIllegalRoleChange, "member 1")
	if c := ExitCode(wrapped); c <= 1 || c > 255 || c != ExitCode(ErrIllegalRoleChange) {
		t.Fatalf("ExitCode(%v) = %d", wrapped, c)
	}
	for err := range errs {
		if c := ExitCode(err); c <= 1 || c > 255 {
			t.Fatalf("ExitCode(%v) = %d out of range", err, c)
		}
	}
}
