// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fairsign cut-and-choose 盲签名
//
// 请求方盲化 N 份候选文档, 签名方随机封存其中一份, 其余全部公开并逐一验证,
// 全部一致时才对封存的那一份签名.
package fairsign

import (
	"fmt"
	"io"
	"sync"

	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
)

// CoverNames 默认的候选身份
var CoverNames = []string{
	"Agent X", "Shadow", "Ghost", "Phantom", "Nightfall",
	"Specter", "Raven", "Falcon", "Viper", "Cipher",
}

// MakeDocument 候选文档
func MakeDocument(coverName string) []byte {
	return []byte(fmt.Sprintf("The bearer of this signed document, %s, has full diplomatic immunity.", coverName))
}

// Envelope 一份盲化后的候选文档, 盲化因子公开前只有请求方知道
type Envelope struct {
	Plaintext []byte
	Blinded   []byte
	factor    []byte
}

// Disclosure 公开的候选文档和盲化因子
type Disclosure struct {
	Index     int
	Plaintext []byte
	Factor    []byte
}

// Blinder 请求方
type Blinder struct {
	mu        sync.Mutex
	pub       crypto.BlindPubKey
	random    io.Reader
	envelopes []*Envelope
	sealed    int
	disclosed bool
	unblinded bool
}

// NewBlinder pub 为签名方的公钥
func NewBlinder(pub crypto.BlindPubKey) *Blinder {
	return &Blinder{pub: pub, random: crypto.CReader(), sealed: -1}
}

// Prepare 每份文档使用新的盲化因子, 一个 Blinder 只能准备一次
func (b *Blinder) Prepare(docs [][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.envelopes != nil {
		return types.ErrBlinderUsed
	}
	if len(docs) < types.MinCandidates {
		return errors.Wrapf(types.ErrCandidateCount, "%d candidates", len(docs))
	}
	envelopes := make([]*Envelope, len(docs))
	for i, doc := range docs {
		blinded, factor, err := b.pub.Blind(b.random, doc)
		if err != nil {
			return errors.Wrapf(err, "blind candidate %d", i)
		}
		envelopes[i] = &Envelope{Plaintext: crypto.CopyBytes(doc), Blinded: blinded, factor: factor}
	}
	b.envelopes = envelopes
	return nil
}

// Blinded 提交给签名方的盲化结果
func (b *Blinder) Blinded() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := make([][]byte, len(b.envelopes))
	for i, e := range b.envelopes {
		res[i] = crypto.CopyBytes(e.Blinded)
	}
	return res
}

// Document 第 index 份候选文档
func (b *Blinder) Document(index int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.envelopes) {
		return nil, errors.Wrapf(types.ErrIndexOutOfRange, "candidate %d", index)
	}
	return crypto.CopyBytes(b.envelopes[index].Plaintext), nil
}

// Disclose 公开除 sealed 以外所有候选的原文和盲化因子, 只能调用一次
func (b *Blinder) Disclose(sealed int) ([]Disclosure, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.envelopes == nil {
		return nil, errors.Wrap(types.ErrSessionState, "blinder not prepared")
	}
	if sealed < 0 || sealed >= len(b.envelopes) {
		return nil, errors.Wrapf(types.ErrIndexOutOfRange, "sealed %d", sealed)
	}
	if b.disclosed {
		return nil, types.ErrAlreadyDisclosed
	}
	ds := make([]Disclosure, 0, len(b.envelopes)-1)
	for i, e := range b.envelopes {
		if i == sealed {
			continue
		}
		ds = append(ds, Disclosure{
			Index:     i,
			Plaintext: crypto.CopyBytes(e.Plaintext),
			Factor:    crypto.CopyBytes(e.factor),
		})
	}
	b.disclosed = true
	b.sealed = sealed
	return ds, nil
}

// Unblind 用封存文档的盲化因子去盲, 并验证签名
func (b *Blinder) Unblind(sealed int, blindSig []byte) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.disclosed {
		return nil, errors.Wrap(types.ErrSessionState, "candidates not disclosed")
	}
	if sealed != b.sealed {
		return nil, errors.Wrapf(types.ErrInvalidParam, "candidate %d was disclosed", sealed)
	}
	if b.unblinded {
		return nil, types.ErrAlreadySigned
	}
	e := b.envelopes[sealed]
	sig, err := b.pub.Unblind(blindSig, e.factor)
	if err != nil {
		return nil, errors.Wrap(err, "unblind")
	}
	if !b.pub.VerifyBytes(e.Plaintext, sig) {
		return nil, errors.Wrap(types.ErrInvalidSignature, "unblinded signature does not verify")
	}
	b.unblinded = true
	return sig, nil
}
