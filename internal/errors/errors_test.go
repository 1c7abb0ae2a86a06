package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	cause := errors.New("underlying")
	err := NewStorageError("failed to load workbook", cause)

	assert.Contains(t, err.Error(), "STORAGE")
	assert.Contains(t, err.Error(), "failed to load workbook")
	assert.ErrorIs(t, err, cause)
}

func TestIsConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "missing sheets", err: NewMissingSheetsError([]string{"items"}), want: true},
		{name: "missing columns", err: NewMissingColumnsError("items", []string{"item_id"}), want: true},
		{name: "selection", err: NewSelectionError("sales summary", [][]string{{"item"}}), want: true},
		{name: "wrapped config error", err: fmt.Errorf("run failed: %w", NewMissingSheetsError([]string{"items"})), want: true},
		{name: "validation", err: NewValidationError("bad params"), want: false},
		{name: "storage", err: NewStorageError("io", errors.New("x")), want: false},
		{name: "plain error", err: errors.New("x"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConfigError(tt.err))
		})
	}
}

func TestNewMissingColumnsError(t *testing.T) {
	err := NewMissingColumnsError("stock_moves", []string{"item_id", "qty"})
	assert.Contains(t, err.Error(), "stock_moves")
	assert.Contains(t, err.Error(), "item_id, qty")
	assert.Equal(t, "stock_moves", err.Context["sheet"])
}

func TestFromAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "config", err: NewMissingSheetsError([]string{"items"}), wantStatus: http.StatusUnprocessableEntity, wantCode: "CONFIG"},
		{name: "selection", err: NewSelectionError("role", nil), wantStatus: http.StatusUnprocessableEntity, wantCode: "SELECTION"},
		{name: "validation", err: NewValidationError("bad"), wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "not found", err: NewNotFoundError("run"), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "storage", err: NewStorageError("io", nil), wantStatus: http.StatusInternalServerError, wantCode: "STORAGE"},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromAppError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}
