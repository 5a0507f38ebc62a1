package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Usuario errors
var (
	ErrUsuarioNotFound      = errors.New("usuario not found")
	ErrUsuarioAlreadyExists = errors.New("usuario already exists")
	ErrUsuarioInactive      = errors.New("usuario is inactive")
)

// Edificio errors
var (
	ErrDepartamentoNotFound  = errors.New("departamento not found")
	ErrResidenteNotFound     = errors.New("residente not found")
	ErrResidenteInactive     = errors.New("residente is inactive")
	ErrDepartamentoOcupado   = errors.New("departamento already occupied")
	ErrEstadoInvalido        = errors.New("invalid state transition")
)
