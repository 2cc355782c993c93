package patcherrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestOperationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &OperationError{
			Index:   2,
			Op:      "add",
			Path:    "/a/b",
			Kind:    ErrNotFound,
			Message: "missing parent",
			Cause:   cause,
		}

		msg := err.Error()
		want := `operation 2 [op:add] path not found at "/a/b": missing parent: underlying error`
		if msg != want {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &OperationError{Index: -1, Op: "test"}
		if err.Error() != "[op:test]" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &OperationError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches its kind only", func(t *testing.T) {
		err := &OperationError{Kind: ErrTestFailed}
		if !errors.Is(err, ErrTestFailed) {
			t.Error("OperationError should match its kind")
		}
		if errors.Is(err, ErrNotFound) {
			t.Error("OperationError should not match other sentinels")
		}
	})

	t.Run("Is without kind matches nothing", func(t *testing.T) {
		err := &OperationError{}
		if errors.Is(err, ErrNotFound) {
			t.Error("OperationError without kind should not match")
		}
	})

	t.Run("As extracts OperationError through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("apply: %w", &OperationError{Index: 4, Op: "remove", Kind: ErrInvalidIndex})
		var opErr *OperationError
		if !errors.As(wrapped, &opErr) {
			t.Fatal("errors.As should extract OperationError")
		}
		if opErr.Index != 4 {
			t.Errorf("expected index 4, got %d", opErr.Index)
		}
		if !errors.Is(wrapped, ErrInvalidIndex) {
			t.Error("wrapped error should match ErrInvalidIndex")
		}
	})
}

func TestUnknownOperationError(t *testing.T) {
	t.Run("Error message with index", func(t *testing.T) {
		err := &UnknownOperationError{Op: "@txt", Index: 1}
		if err.Error() != `unknown operation "@txt" at index 1` {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message without index", func(t *testing.T) {
		err := &UnknownOperationError{Op: "x", Index: -1}
		if err.Error() != `unknown operation "x"` {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrUnknownOperation", func(t *testing.T) {
		if !errors.Is(&UnknownOperationError{}, ErrUnknownOperation) {
			t.Error("UnknownOperationError should match ErrUnknownOperation")
		}
		if errors.Is(&UnknownOperationError{}, ErrPatchMismatch) {
			t.Error("UnknownOperationError should not match ErrPatchMismatch")
		}
	})
}

func TestPatchMismatchError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &PatchMismatchError{
			Index: 0,
			Op:    "replace",
			Path:  "/x/y",
			Cause: ErrNotFound,
		}
		want := `patch mismatch: operation 0 [op:replace] at "/x/y": path not found`
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrPatchMismatch and cause", func(t *testing.T) {
		err := &PatchMismatchError{Cause: ErrNotFound}
		if !errors.Is(err, ErrPatchMismatch) {
			t.Error("PatchMismatchError should match ErrPatchMismatch")
		}
		if !errors.Is(err, ErrNotFound) {
			t.Error("PatchMismatchError should match its cause")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ConfigError{Option: "atPath", Value: "x", Message: "must begin with /"}
		if err.Error() != "configuration error for atPath (value: x): must begin with /" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ConfigError{}
		if err.Error() != "configuration error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrConfig", func(t *testing.T) {
		if !errors.Is(&ConfigError{}, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
	})
}
