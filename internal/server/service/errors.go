package service

import "errors"

var (
	ErrValidation = errors.New("validation") // 400
	ErrAuth       = errors.New("auth")       // 401
	ErrForbidden  = errors.New("forbidden")  // 403
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
	ErrLocked     = errors.New("locked")     // 423
)
