package models

import (
	"errors"
	"strings"
)

var ErrEmptyIdentity = errors.New("identity must not be empty")

// Identity is an opaque principal reference such as an account address.
type Identity string

func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyIdentity
	}
	return Identity(s), nil
}

func (i Identity) String() string {
	return string(i)
}
