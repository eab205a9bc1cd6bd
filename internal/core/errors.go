package core

import "errors"

var (
	// ErrNotFound is returned when a contact, account or cache entry does not exist
	ErrNotFound = errors.New("not found")
	// ErrExpired is returned when a cache entry has expired
	ErrExpired = errors.New("cache entry expired")
	// ErrNoDomain is returned when no email domain is known or resolvable
	ErrNoDomain = errors.New("no email domain available")
	// ErrEmailConfirmed is returned when enriching a contact whose address is already confirmed
	ErrEmailConfirmed = errors.New("contact email already confirmed")
	// ErrPersonalAddress is returned when an address belongs to a personal mail provider
	ErrPersonalAddress = errors.New("address belongs to a personal mail provider")
	// ErrInvalidAddress is returned when an address has no usable domain
	ErrInvalidAddress = errors.New("invalid email address")
)
