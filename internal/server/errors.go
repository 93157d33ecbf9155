package server

import "errors"

var (
	ErrUnknownClient = errors.New("unknown client")
	ErrUnknownRealm  = errors.New("unknown realm")
	ErrResponseOnly  = errors.New("message is a response")
)
