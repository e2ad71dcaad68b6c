// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coin

import (
	"io"
	"strings"
	"time"

	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/metrics"
	"github.com/33cn/blindcoin/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Issuer coin 持有者一侧的发行逻辑
type Issuer struct {
	params *Params
	random io.Reader
}

// NewIssuer new
func NewIssuer(params *Params) *Issuer {
	return &Issuer{params: params, random: crypto.CReader()}
}

// NewGUID coin 的唯一标识, 不含分隔符
func NewGUID() string {
	return strings.Replace(uuid.New().String(), "-", "", -1)
}

// Issue 生成一个未签名的 coin
//
// 每个位置生成一对份额 left ^ right == IdentMarker + identity,
// 公开的只有份额的承诺. 规范化字符串被盲化后交给银行签名.
func (is *Issuer) Issue(identity string, amount decimal.Decimal) (*Token, error) {
	start := time.Now()
	if !amount.IsPositive() {
		return nil, errors.Wrapf(types.ErrInvalidAmount, "amount %s", amount.String())
	}
	if identity == "" {
		return nil, types.ErrEmptyIdentity
	}
	ident := []byte(types.IdentMarker + identity)

	tok := &Token{
		bank:  is.params.PubKey,
		left:  make([][]byte, types.CoinRisLength),
		right: make([][]byte, types.CoinRisLength),
	}
	header := &CoinHeader{
		Tag:    types.BankTag,
		Amount: amount,
		ID:     NewGUID(),
		Left:   make([]string, types.CoinRisLength),
		Right:  make([]string, types.CoinRisLength),
	}
	for i := 0; i < types.CoinRisLength; i++ {
		key := make([]byte, len(ident))
		if _, err := io.ReadFull(is.random, key); err != nil {
			return nil, errors.Wrap(err, "random share")
		}
		tok.left[i] = key
		tok.right[i] = crypto.XorBytes(key, ident)
		header.Left[i] = crypto.Commit(is.params.Hash, tok.left[i])
		header.Right[i] = crypto.Commit(is.params.Hash, tok.right[i])
	}
	tok.header = header

	blinded, factor, err := is.params.PubKey.Blind(is.random, []byte(header.String()))
	if err != nil {
		return nil, errors.Wrap(err, "blind coin")
	}
	tok.blinded = blinded
	tok.factor = factor

	metrics.Mark(metrics.CoinIssued)
	metrics.UpdateSince(metrics.IssueTimer, start)
	clog.Debug("Issue", "id", header.ID, "amount", amount.String())
	return tok, nil
}
