package models

import "errors"

// ErrInvalidFormat indicates a price string could not be parsed as a non-negative amount.
var ErrInvalidFormat = errors.New("invalid price format")

// ErrInvalidArgument indicates a stock quantity was negative.
var ErrInvalidArgument = errors.New("invalid argument")
