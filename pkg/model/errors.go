package model

import (
	"errors"
	"fmt"
)

// Failure categories surfaced by the lookup and synthesis paths. Callers
// branch with errors.Is / errors.As; rendering them as user-facing text is
// left to the CLI and HTTP layers.
var (
	ErrEmptyResponse = errors.New("response output is empty")
	ErrInvalidFormat = errors.New("response is not a valid definition")
	ErrNoAudio       = errors.New("response contains no audio payload")
	ErrOffline       = errors.New("network is unreachable")
)

// LookupError reports a failed definition lookup for a word.
type LookupError struct {
	Word string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q: %v", e.Word, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// SynthesisError reports a pronunciation request the backend accepted but
// did not answer with audio.
type SynthesisError struct {
	Word string
	Err  error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize %q: %v", e.Word, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// NetworkError reports a transport-level failure: the request never reached
// the backend, or the connection broke before a response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
