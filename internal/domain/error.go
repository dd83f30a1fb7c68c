package domain

import "errors"

var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("invalid input")
	ErrDuplicate  = errors.New("record already exists")
)
