package app

import (
	"errors"
	"testing"
)

func TestCodeError(t *testing.T) {
	t.Run("Error returns wrapped message", func(t *testing.T) {
		err := NewCodeError(1, errors.New("test error"))
		if err.Error() != "test error" {
			t.Errorf("Error() = %q, want %q", err.Error(), "test error")
		}
	})

	t.Run("Error returns empty for nil wrapped", func(t *testing.T) {
		err := CodeError{Code: 1, Err: nil}
		if err.Error() != "" {
			t.Errorf("Error() = %q, want empty string", err.Error())
		}
	})

	t.Run("errors.Is works with wrapped error", func(t *testing.T) {
		err := NewCodeError(1, ErrChecksFailed)
		if !errors.Is(err, ErrChecksFailed) {
			t.Error("errors.Is should find ErrChecksFailed")
		}
	})

	t.Run("errors.As recovers the code", func(t *testing.T) {
		var codeErr CodeError
		if !errors.As(NewCodeError(2, ErrNoAddresses), &codeErr) {
			t.Fatal("errors.As should match CodeError")
		}
		if codeErr.Code != 2 {
			t.Errorf("Code = %d, want 2", codeErr.Code)
		}
	})
}
