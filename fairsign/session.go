// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fairsign

import (
	"bytes"
	"sync"
	"time"

	"github.com/33cn/blindcoin/metrics"
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
)

// State 会话状态
type State int32

// state
const (
	StateAwaitingCandidates State = iota
	StateIndexChosen
	StateAwaitingDisclosures
	StateVerifying
	StateSigned
	StateRejected
)

var stateNames = map[State]string{
	StateAwaitingCandidates:  "AwaitingCandidates",
	StateIndexChosen:         "IndexChosen",
	StateAwaitingDisclosures: "AwaitingDisclosures",
	StateVerifying:           "Verifying",
	StateSigned:              "Signed",
	StateRejected:            "Rejected",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Session 一次签名请求, 被拒绝后不会重试, 请求方需要用新的候选重新开始
type Session struct {
	mu      sync.Mutex
	id      string
	agency  *Agency
	blinded [][]byte
	sealed  int
	state   State
	start   time.Time
}

// ID 会话标识
func (s *Session) ID() string {
	return s.id
}

// Sealed 封存的位置, 选定后不再改变
func (s *Session) Sealed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sealed
}

// State 当前状态
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) choose() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingCandidates {
		return errors.Wrapf(types.ErrSessionState, "choose in state %s", s.state)
	}
	index, err := s.agency.chooser.Choose(len(s.blinded))
	if err != nil {
		return errors.Wrap(err, "choose sealed candidate")
	}
	s.sealed = index
	s.state = StateIndexChosen
	flog.Debug("choose", "session", s.id, "state", s.state, "sealed", index)
	// 选定的位置告知请求方, 等待其余候选公开
	s.state = StateAwaitingDisclosures
	return nil
}

// Submit 验证公开的候选, 全部一致时对封存的候选签名并返回盲签名
//
// 除封存位置外每个位置都必须恰好公开一次. 任何一个候选不一致整个请求被拒绝.
// 公开过的盲化结果无论成败都不能再次使用.
func (s *Session) Submit(ds []Disclosure) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingDisclosures {
		return nil, errors.Wrapf(types.ErrSessionState, "submit in state %s", s.state)
	}
	s.state = StateVerifying
	for i, b := range s.blinded {
		if i != s.sealed {
			s.agency.burn(b)
		}
	}

	if err := s.verify(ds); err != nil {
		s.state = StateRejected
		metrics.Mark(metrics.SessionRejected)
		metrics.UpdateSince(metrics.SessionTimer, s.start)
		flog.Error("Submit", "session", s.id, "state", s.state, "err", err)
		return nil, err
	}
	sig, err := s.agency.priv.BlindSign(s.blinded[s.sealed])
	if err != nil {
		s.state = StateRejected
		metrics.Mark(metrics.SessionRejected)
		return nil, errors.Wrap(err, "sign sealed candidate")
	}
	s.state = StateSigned
	metrics.Mark(metrics.SessionSigned)
	metrics.UpdateSince(metrics.SessionTimer, s.start)
	flog.Info("Submit", "session", s.id, "state", s.state, "sealed", s.sealed)
	return sig, nil
}

func (s *Session) verify(ds []Disclosure) error {
	covered := make([]bool, len(s.blinded))
	for _, d := range ds {
		if d.Index < 0 || d.Index >= len(s.blinded) || d.Index == s.sealed || covered[d.Index] {
			return &types.CandidateMismatchError{Index: d.Index}
		}
		covered[d.Index] = true
		blinded, err := s.agency.pub.BlindWithFactor(d.Plaintext, d.Factor)
		if err != nil || !bytes.Equal(blinded, s.blinded[d.Index]) {
			return &types.CandidateMismatchError{Index: d.Index}
		}
	}
	for i, ok := range covered {
		if !ok && i != s.sealed {
			return &types.CandidateMismatchError{Index: i}
		}
	}
	return nil
}
