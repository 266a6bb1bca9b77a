package services

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidBet          = errors.New("invalid bet")
)
