// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coin

import (
	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/metrics"
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
)

// RevealRecord 一次花费中商家得到的一侧份额
type RevealRecord struct {
	TokenID string
	Side    Side
	Shares  [][]byte
}

// Verifier 商家, 收款时验证 coin 并要求持有者公开一侧份额
type Verifier struct {
	params  *Params
	chooser crypto.Chooser
}

// NewVerifier chooser 为空时使用 crypto.NewChooser
func NewVerifier(params *Params, chooser crypto.Chooser) *Verifier {
	if chooser == nil {
		chooser = crypto.NewChooser()
	}
	return &Verifier{params: params, chooser: chooser}
}

// Accept 接受 coin
//
// 先验证银行签名, 失败时不再向持有者要任何份额.
// 整个 coin 只选一侧, 每个份额都必须和承诺一致, 否则拒收.
func (v *Verifier) Accept(tok *Token) (*RevealRecord, error) {
	rec, err := v.accept(tok)
	if err != nil {
		metrics.Mark(metrics.CoinRejected)
		return nil, err
	}
	metrics.Mark(metrics.CoinAccepted)
	return rec, nil
}

func (v *Verifier) accept(tok *Token) (*RevealRecord, error) {
	if tok == nil || !tok.Signed() {
		return nil, errors.Wrap(types.ErrNotSigned, "Accept")
	}
	if !v.params.PubKey.Equals(tok.Bank()) {
		return nil, errors.Wrap(types.ErrInvalidSignature, "coin issued under another bank key")
	}
	canonical := tok.String()
	if !v.params.PubKey.VerifyBytes([]byte(canonical), tok.Signature()) {
		clog.Error("Accept", "id", tok.ID(), "err", "invalid signature")
		return nil, errors.Wrapf(types.ErrInvalidSignature, "coin %s rejected", tok.ID())
	}
	header, err := ParseCoin(canonical)
	if err != nil {
		return nil, err
	}

	n, err := v.chooser.Choose(2)
	if err != nil {
		return nil, err
	}
	side := Side(n)
	if !side.Valid() {
		return nil, errors.Wrapf(types.ErrInvalidParam, "chooser returned side %d", n)
	}
	commitments := header.Commitments(side)

	shares := make([][]byte, types.CoinRisLength)
	for i := 0; i < types.CoinRisLength; i++ {
		share, err := tok.Share(side, i)
		if err != nil {
			return nil, errors.Wrapf(&types.ShareMismatchError{Index: i}, "get share: %v", err)
		}
		if crypto.Commit(v.params.Hash, share) != commitments[i] {
			clog.Error("Accept", "id", tok.ID(), "side", side, "mismatch", i)
			return nil, &types.ShareMismatchError{Index: i}
		}
		shares[i] = share
	}
	clog.Debug("Accept", "id", header.ID, "side", side)
	return &RevealRecord{TokenID: header.ID, Side: side, Shares: shares}, nil
}
