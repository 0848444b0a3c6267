package common

import "errors"

var (
	// Credential failures. The two login rejections deliberately share
	// ErrInvalidCredentials so a caller cannot tell a missing account from
	// a wrong password; a missing profile after a valid credential is a
	// data-consistency fault and gets its own error.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("user profile not found")

	ErrUserNotFound  = errors.New("user not found")
	ErrEmailExists   = errors.New("email already exists")
	ErrMediaNotFound = errors.New("media not found")

	ErrUnsupportedOTPType  = errors.New("unsupported otp type")
	ErrUnsupportedProvider = errors.New("unsupported storage provider")
)
