package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("SPD.Update", 10, 7, 0)

	// 基本的なエラーメッセージの確認
	want := "fairgo: SPD.Update: dimension mismatch on axis 0 (rows). Expected 10, got 7"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// スタックトレースの存在確認
	formatted := fmt.Sprintf("%+v", err)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected stack trace to contain test file name")
	}

	// DimensionError型にキャスト可能か確認
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("EOD.Update", "preds must contain only binary values (0 or 1)")

	want := "fairgo: EOD.Update: preds must contain only binary values (0 or 1)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// ValueError型にキャスト可能か確認
	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("theta", "must be a flat parameter vector", 2)

	want := "fairgo: validation failed for parameter 'theta': must be a flat parameter vector (got: 2)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestUndefinedMetricWarning(t *testing.T) {
	warn := NewUndefinedMetricWarning("SPD", "no advantaged samples", 0)

	want := "'SPD' is ill-defined and being set to 0.000000 due to no advantaged samples."
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var umw *UndefinedMetricWarning
	if !As(warn, &umw) {
		t.Error("Warning should be castable to *UndefinedMetricWarning")
	}
}

func TestWarningHandler(t *testing.T) {
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(func(w error) {})

	Warn(NewUndefinedMetricWarning("EOD", "no disadvantaged samples", 0))

	if len(captured) != 1 {
		t.Fatalf("expected 1 captured warning, got %d", len(captured))
	}
}

func TestZerologWarnFuncTakesPrecedence(t *testing.T) {
	var viaHandler, viaZerolog int
	SetWarningHandler(func(w error) { viaHandler++ })
	SetZerologWarnFunc(func(w error) { viaZerolog++ })
	defer func() {
		SetWarningHandler(func(w error) {})
		SetZerologWarnFunc(nil)
	}()

	Warn(New("some warning"))

	if viaZerolog != 1 || viaHandler != 0 {
		t.Errorf("zerolog func should take precedence: zerolog=%d handler=%d", viaZerolog, viaHandler)
	}
}

func TestWrapAndIs(t *testing.T) {
	// 元のエラー
	baseErr := ErrEmptyData

	// ラップ
	wrapped := Wrap(baseErr, "in eval.Evaluate")

	// Is関数でチェック
	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	// エラーメッセージの確認
	if !strings.Contains(wrapped.Error(), "in eval.Evaluate") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrapf(baseErr, "in %s: expected %d, got %d", "Update", 10, 5)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Update: expected 10, got 5"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}
