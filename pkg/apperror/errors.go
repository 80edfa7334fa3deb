package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a generic validation error with a specific message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_002", "Invalid amount", http.StatusBadRequest)
}

func ErrInvalidCommissionRule(detail string) *AppError {
	return New("VAL_003", fmt.Sprintf("Invalid commission rule: %s", detail), http.StatusBadRequest)
}

func ErrOverlappingCommissionBands() *AppError {
	return New("VAL_004", "Commission rule bands overlap", http.StatusBadRequest)
}

// ---- Wallet Ledger (WAL) ----

func ErrInsufficientBalance() *AppError {
	return New("WAL_001", "Insufficient wallet balance", http.StatusPaymentRequired)
}

func ErrNotFound(entity string) *AppError {
	return New("WAL_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrTransactionImmutable() *AppError {
	return New("WAL_003", "Transaction status transition not allowed", http.StatusConflict)
}

// ---- Escrow / Settlement state (ESC) ----

func ErrInvalidEscrowState(current string) *AppError {
	return New("ESC_001", fmt.Sprintf("Invalid escrow state: %s", current), http.StatusConflict)
}

func ErrInvalidSettlementState(current string) *AppError {
	return New("ESC_002", fmt.Sprintf("Settlement already %s", current), http.StatusConflict)
}

func ErrCommissionNotConfigured(restaurantID string) *AppError {
	return New("ESC_003", fmt.Sprintf("No commission configuration for restaurant %s", restaurantID), http.StatusUnprocessableEntity)
}

// ---- Refunds (REF) ----

func ErrDuplicateRefund() *AppError {
	return New("REF_001", "Refund already processed", http.StatusConflict)
}

func ErrRefundAlreadyInitiated() *AppError {
	return New("REF_002", "Refund already initiated", http.StatusConflict)
}

func ErrRefundNotCalculated() *AppError {
	return New("REF_003", "Invalid refund amount", http.StatusBadRequest)
}

func ErrOrderNotCancelled() *AppError {
	return New("REF_004", "Order is not cancelled", http.StatusBadRequest)
}

func ErrNotWalletPayment() *AppError {
	return New("REF_005", "Order was not paid from wallet", http.StatusBadRequest)
}

// ---- External gateway (GWY) ----

func ErrGatewayRefund(err error) *AppError {
	return Wrap("GWY_001", "Payment gateway refund failed", http.StatusBadGateway, err)
}

func ErrMissingGatewayPayment() *AppError {
	return New("GWY_002", "Order has no gateway payment reference", http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_002", "Insufficient privileges", http.StatusForbidden)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_002", "Internal database error", http.StatusInternalServerError, err)
}
