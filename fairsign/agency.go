// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fairsign

import (
	"encoding/hex"
	"time"

	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/common/db"
	"github.com/33cn/blindcoin/metrics"
	"github.com/33cn/blindcoin/types"
	"github.com/google/uuid"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var flog = log.New("module", "fairsign")

// Agency 签名方
type Agency struct {
	priv    crypto.BlindPrivKey
	pub     crypto.BlindPubKey
	cfg     *types.Agency
	chooser crypto.Chooser
	// 已经公开过盲化因子的盲化结果, 只增不删
	burned  db.DB
}

// NewAgency 根据配置生成签名密钥, chooser 为空时使用 crypto.NewChooser
func NewAgency(cfg *types.Agency, chooser crypto.Chooser) (*Agency, error) {
	if cfg == nil {
		return nil, errors.Wrap(types.ErrConfig, "nil agency config")
	}
	c, err := crypto.New(cfg.Driver)
	if err != nil {
		return nil, err
	}
	priv, err := c.GenKey(cfg.KeyBits)
	if err != nil {
		return nil, errors.Wrap(err, "agency GenKey")
	}
	flog.Info("NewAgency", "driver", cfg.Driver, "bits", cfg.KeyBits, "candidates", cfg.Candidates)
	return NewAgencyWithKey(priv, cfg, chooser)
}

// NewAgencyWithKey 使用已有的密钥
func NewAgencyWithKey(priv crypto.BlindPrivKey, cfg *types.Agency, chooser crypto.Chooser) (*Agency, error) {
	if priv == nil || cfg == nil {
		return nil, errors.Wrap(types.ErrInvalidParam, "nil agency key or config")
	}
	if cfg.Candidates < types.MinCandidates {
		return nil, errors.Wrapf(types.ErrConfig, "agency.candidates %d", cfg.Candidates)
	}
	burned, err := db.NewDB("burned", db.MemDBBackendStr, "", 0)
	if err != nil {
		return nil, err
	}
	if chooser == nil {
		chooser = crypto.NewChooser()
	}
	return &Agency{
		priv:    priv,
		pub:     priv.PubKey(),
		cfg:     cfg,
		chooser: chooser,
		burned:  burned,
	}, nil
}

// PubKey 签名方公钥
func (a *Agency) PubKey() crypto.BlindPubKey {
	return a.pub
}

// Candidates 每次请求的候选数量
func (a *Agency) Candidates() int {
	return a.cfg.Candidates
}

// Open 接收一组盲化候选, 随机选定封存的位置
func (a *Agency) Open(blinded [][]byte) (*Session, error) {
	if len(blinded) != a.cfg.Candidates {
		metrics.Mark(metrics.CandidateRejected)
		return nil, errors.Wrapf(types.ErrCandidateCount, "%d candidates, %d expected", len(blinded), a.cfg.Candidates)
	}
	seen := make(map[string]bool, len(blinded))
	candidates := make([][]byte, len(blinded))
	for i, b := range blinded {
		key := string(b)
		if len(b) == 0 || seen[key] || a.isBurned(b) {
			metrics.Mark(metrics.CandidateRejected)
			return nil, errors.Wrapf(types.ErrCandidateReused, "candidate %d", i)
		}
		seen[key] = true
		candidates[i] = crypto.CopyBytes(b)
	}

	s := &Session{
		id:      uuid.New().String(),
		agency:  a,
		blinded: candidates,
		sealed:  -1,
		state:   StateAwaitingCandidates,
		start:   time.Now(),
	}
	if err := s.choose(); err != nil {
		return nil, err
	}
	metrics.Mark(metrics.SessionOpened)
	flog.Debug("Open", "session", s.id, "sealed", s.sealed)
	return s, nil
}

func burnKey(blinded []byte) []byte {
	return append(append([]byte(nil), types.BurnPrefix...), hex.EncodeToString(blinded)...)
}

func (a *Agency) isBurned(blinded []byte) bool {
	_, err := a.burned.Get(burnKey(blinded))
	return err == nil
}

func (a *Agency) burn(blinded []byte) {
	if err := a.burned.Set(burnKey(blinded), []byte{1}); err != nil {
		flog.Error("burn", "err", err)
	}
}
