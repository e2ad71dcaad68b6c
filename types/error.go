// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"
)

// issuance
var (
	ErrInvalidAmount = errors.New("ErrInvalidAmount")
	ErrEmptyIdentity = errors.New("ErrEmptyIdentity")
	ErrAlreadySigned = errors.New("ErrAlreadySigned")
	// ErrNotSigned 也是 ErrInvalidSignature
	ErrNotSigned     = fmt.Errorf("ErrNotSigned: %w", ErrInvalidSignature)
)

// spend & dispute
var (
	ErrInvalidSignature = errors.New("ErrInvalidSignature")
	ErrShareMismatch    = errors.New("ErrShareMismatch")
	ErrMalformedToken   = errors.New("ErrMalformedToken")
	ErrTokenIDMismatch  = errors.New("ErrTokenIDMismatch")
	ErrIndexOutOfRange  = errors.New("ErrIndexOutOfRange")
	ErrInvalidSide      = errors.New("ErrInvalidSide")
)

// fair signing
var (
	ErrCandidateMismatch = errors.New("ErrCandidateMismatch")
	ErrCandidateCount    = errors.New("ErrCandidateCount")
	ErrCandidateReused   = errors.New("ErrCandidateReused")
	ErrSessionState      = errors.New("ErrSessionState")
	ErrBlinderUsed       = errors.New("ErrBlinderUsed")
	ErrAlreadyDisclosed  = errors.New("ErrAlreadyDisclosed")
)

// infrastructure
var (
	ErrUnknownHash   = errors.New("ErrUnknownHash")
	ErrUnknownDriver = errors.New("ErrUnknownDriver")
	ErrNotFoundInDb  = errors.New("ErrNotFoundInDb")
	ErrDecode        = errors.New("ErrDecode")
	ErrConfig        = errors.New("ErrConfig")
	ErrInvalidParam  = errors.New("ErrInvalidParam")
)

// ShareMismatchError 份额与承诺不一致, Index 为第一个不一致的位置
type ShareMismatchError struct {
	Index int
}

func (e *ShareMismatchError) Error() string {
	return fmt.Sprintf("%s: index %d", ErrShareMismatch.Error(), e.Index)
}

// Unwrap errors.Is(err, ErrShareMismatch)
func (e *ShareMismatchError) Unwrap() error {
	return ErrShareMismatch
}

// CandidateMismatchError 公开的候选文档无法重新得到其盲化结果
type CandidateMismatchError struct {
	Index int
}

func (e *CandidateMismatchError) Error() string {
	return fmt.Sprintf("%s: index %d", ErrCandidateMismatch.Error(), e.Index)
}

// Unwrap errors.Is(err, ErrCandidateMismatch)
func (e *CandidateMismatchError) Unwrap() error {
	return ErrCandidateMismatch
}
