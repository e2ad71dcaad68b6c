// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coin 匿名电子现金: 发行, 花费时的份额公开, 以及双花时的身份追查
package coin

import (
	"strings"

	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Side 份额的左右两侧
type Side int32

// side
const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "unknown"
}

// Valid 是否为合法的一侧
func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

// CoinHeader coin 的公开部分, 也是银行签名的内容
type CoinHeader struct {
	Tag    string
	Amount decimal.Decimal
	ID     string
	Left   []string
	Right  []string
}

// String 规范化字符串 {tag}-{amount}-{id}-{left hashes}-{right hashes}
func (h *CoinHeader) String() string {
	return strings.Join([]string{
		h.Tag,
		h.Amount.String(),
		h.ID,
		strings.Join(h.Left, types.CoinListSep),
		strings.Join(h.Right, types.CoinListSep),
	}, types.CoinFieldSep)
}

// Commitments 某一侧的承诺
func (h *CoinHeader) Commitments(side Side) []string {
	if side == SideLeft {
		return h.Left
	}
	return h.Right
}

// ParseCoin 解析规范化字符串
func ParseCoin(s string) (*CoinHeader, error) {
	fields := strings.Split(s, types.CoinFieldSep)
	if len(fields) != 5 {
		return nil, errors.Wrapf(types.ErrMalformedToken, "%d fields", len(fields))
	}
	if fields[0] != types.BankTag {
		return nil, errors.Wrapf(types.ErrMalformedToken, "invalid identity string: %s received, but %s expected", fields[0], types.BankTag)
	}
	amount, err := decimal.NewFromString(fields[1])
	if err != nil {
		return nil, errors.Wrapf(types.ErrMalformedToken, "amount %s", fields[1])
	}
	if fields[2] == "" {
		return nil, errors.Wrap(types.ErrMalformedToken, "empty id")
	}
	left := strings.Split(fields[3], types.CoinListSep)
	right := strings.Split(fields[4], types.CoinListSep)
	if len(left) < types.CoinRisLength || len(right) < types.CoinRisLength {
		return nil, errors.Wrapf(types.ErrMalformedToken, "commitments left %d right %d", len(left), len(right))
	}
	return &CoinHeader{
		Tag:    fields[0],
		Amount: amount,
		ID:     fields[2],
		Left:   left,
		Right:  right,
	}, nil
}

// Token 银行发行的匿名 coin
//
// 字段按顺序只设置一次: 份额和承诺, 盲化摘要, 签名.
// 份额和盲化因子只有持有者知道.
type Token struct {
	header    *CoinHeader
	bank      crypto.BlindPubKey
	left      [][]byte
	right     [][]byte
	blinded   []byte
	factor    []byte
	signature []byte
}

// ID coin 的唯一标识
func (t *Token) ID() string {
	return t.header.ID
}

// Amount 面额
func (t *Token) Amount() decimal.Decimal {
	return t.header.Amount
}

// Bank 发行时银行的公钥参数
func (t *Token) Bank() crypto.BlindPubKey {
	return t.bank
}

// Header 公开部分的副本
func (t *Token) Header() *CoinHeader {
	h := *t.header
	h.Left = append([]string(nil), t.header.Left...)
	h.Right = append([]string(nil), t.header.Right...)
	return &h
}

// Commitments 某一侧的承诺
func (t *Token) Commitments(side Side) []string {
	return append([]string(nil), t.header.Commitments(side)...)
}

// Blinded 盲化后的摘要, 交给银行签名
func (t *Token) Blinded() []byte {
	return crypto.CopyBytes(t.blinded)
}

// Signature 去盲后的银行签名
func (t *Token) Signature() []byte {
	return crypto.CopyBytes(t.signature)
}

// Signed 是否已经签名
func (t *Token) Signed() bool {
	return len(t.signature) > 0
}

// String 规范化字符串
func (t *Token) String() string {
	return t.header.String()
}

// Share 持有者交出某一侧第 index 个份额
func (t *Token) Share(side Side, index int) ([]byte, error) {
	if !side.Valid() {
		return nil, errors.Wrapf(types.ErrInvalidSide, "side %d", side)
	}
	shares := t.left
	if side == SideRight {
		shares = t.right
	}
	if index < 0 || index >= len(shares) {
		return nil, errors.Wrapf(types.ErrIndexOutOfRange, "share index %d", index)
	}
	return crypto.CopyBytes(shares[index]), nil
}

// Unblind 用发行时的盲化因子去掉银行的盲签名, 只能调用一次
func (t *Token) Unblind(blindSig []byte) error {
	if t.Signed() {
		return types.ErrAlreadySigned
	}
	sig, err := t.bank.Unblind(blindSig, t.factor)
	if err != nil {
		return errors.Wrap(err, "unblind")
	}
	if !t.bank.VerifyBytes([]byte(t.String()), sig) {
		return errors.Wrap(types.ErrInvalidSignature, "unblinded signature does not verify")
	}
	t.signature = sig
	return nil
}
