// Package apperrors defines the coded application errors returned by the
// workflow pipelines. Every failure a caller can act on carries a stable
// code, so "already done" is distinguishable from "failed".
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure
type Code string

const (
	CodeValidation      Code = "VALIDATION_ERROR"
	CodeNotFound        Code = "NOT_FOUND"
	CodeForbidden       Code = "FORBIDDEN"
	CodeAlreadyAssigned Code = "ALREADY_ASSIGNED"
	CodeAlreadyApproved Code = "ALREADY_APPROVED"
	CodeAlreadySigned   Code = "ALREADY_SIGNED"
	CodeRequestExists   Code = "REQUEST_EXISTS"
	CodeServer          Code = "SERVER_ERROR"
)

// AppError is an application error with a stable code and an HTTP status
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConflict reports whether the error is a state-conflict ("already done")
func (e *AppError) IsConflict() bool {
	switch e.Code {
	case CodeAlreadyAssigned, CodeAlreadyApproved, CodeAlreadySigned, CodeRequestExists:
		return true
	}
	return false
}

// Validation creates a VALIDATION_ERROR
func Validation(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...), Status: http.StatusBadRequest}
}

// NotFound creates a NOT_FOUND error
func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...), Status: http.StatusNotFound}
}

// Forbidden creates a FORBIDDEN error
func Forbidden(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeForbidden, Message: fmt.Sprintf(format, args...), Status: http.StatusForbidden}
}

// AlreadyAssigned creates an ALREADY_ASSIGNED conflict
func AlreadyAssigned(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeAlreadyAssigned, Message: fmt.Sprintf(format, args...), Status: http.StatusConflict}
}

// AlreadyApproved creates an ALREADY_APPROVED conflict
func AlreadyApproved(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeAlreadyApproved, Message: fmt.Sprintf(format, args...), Status: http.StatusConflict}
}

// AlreadySigned creates an ALREADY_SIGNED conflict
func AlreadySigned(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeAlreadySigned, Message: fmt.Sprintf(format, args...), Status: http.StatusConflict}
}

// RequestExists creates a REQUEST_EXISTS conflict
func RequestExists(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeRequestExists, Message: fmt.Sprintf(format, args...), Status: http.StatusConflict}
}

// Server wraps an unexpected failure in the primary write
func Server(err error) *AppError {
	return &AppError{Code: CodeServer, Message: err.Error(), Status: http.StatusInternalServerError}
}

// From converts any error into an *AppError, wrapping unknown errors as
// SERVER_ERROR
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Server(err)
}

// HasCode reports whether err is an AppError with the given code
func HasCode(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
