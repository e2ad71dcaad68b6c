// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coin

import (
	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/metrics"
	"github.com/33cn/blindcoin/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var clog = log.New("module", "coin")

// Params 银行的公开参数, 启动时生成一次, 之后只读
type Params struct {
	PubKey   crypto.BlindPubKey
	Hash     crypto.HashFunc
	HashName string
}

// NewParams 由公钥和承诺hash名称构造
func NewParams(pub crypto.BlindPubKey, hashName string) (*Params, error) {
	if pub == nil {
		return nil, errors.Wrap(types.ErrInvalidParam, "nil bank key")
	}
	h, err := crypto.GetHash(hashName)
	if err != nil {
		return nil, err
	}
	return &Params{PubKey: pub, Hash: h, HashName: hashName}, nil
}

// Bank 发行 coin 的银行, 持有签名私钥
type Bank struct {
	priv   crypto.BlindPrivKey
	params *Params
}

// NewBank 根据配置生成银行密钥
func NewBank(cfg *types.Bank) (*Bank, error) {
	c, err := crypto.New(cfg.Driver)
	if err != nil {
		return nil, err
	}
	priv, err := c.GenKey(cfg.KeyBits)
	if err != nil {
		return nil, errors.Wrap(err, "bank GenKey")
	}
	clog.Info("NewBank", "driver", cfg.Driver, "bits", cfg.KeyBits, "commitHash", cfg.CommitHash)
	return NewBankWithKey(priv, cfg.CommitHash)
}

// NewBankWithKey 使用已有的密钥
func NewBankWithKey(priv crypto.BlindPrivKey, commitHash string) (*Bank, error) {
	if priv == nil {
		return nil, errors.Wrap(types.ErrInvalidParam, "nil bank key")
	}
	params, err := NewParams(priv.PubKey(), commitHash)
	if err != nil {
		return nil, err
	}
	return &Bank{priv: priv, params: params}, nil
}

// Params 公开参数
func (b *Bank) Params() *Params {
	return b.params
}

// SignCoin 对 coin 的盲化摘要签名, 银行看不到 coin 的内容
func (b *Bank) SignCoin(blinded []byte) ([]byte, error) {
	sig, err := b.priv.BlindSign(blinded)
	if err != nil {
		return nil, errors.Wrap(err, "SignCoin")
	}
	metrics.Mark(metrics.CoinSigned)
	return sig, nil
}
