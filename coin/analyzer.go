// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coin

import (
	"bytes"
	"fmt"

	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/metrics"
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
)

// Cheater 双花的责任方
type Cheater int32

// cheater
const (
	OwnerCheated Cheater = iota + 1
	VerifierCheated
)

func (c Cheater) String() string {
	switch c {
	case OwnerCheated:
		return "owner"
	case VerifierCheated:
		return "verifier"
	}
	return "unknown"
}

// Verdict 双花分析的结论, 不是错误
type Verdict struct {
	TokenID  string
	Kind     Cheater
	Identity string
}

func (v *Verdict) String() string {
	if v.Kind == OwnerCheated {
		return fmt.Sprintf("coin %s double spent, the cheater is the coin owner: %s", v.TokenID, v.Identity)
	}
	return fmt.Sprintf("coin %s double spent, the cheater is the merchant", v.TokenID)
}

// DetermineCheater 同一个 coin 的两次公开记录, 判断是持有者双花还是商家重复提交
//
// 某个位置两次公开的份额不同, 说明公开的是两侧, 异或后以 IdentMarker 开头即得到持有者身份.
// 所有位置都相同(同一侧)时无法得到身份, 认为是商家作弊.
func DetermineCheater(r1, r2 *RevealRecord) (*Verdict, error) {
	if r1 == nil || r2 == nil {
		return nil, errors.Wrap(types.ErrInvalidParam, "nil reveal record")
	}
	if r1.TokenID != r2.TokenID {
		return nil, errors.Wrapf(types.ErrTokenIDMismatch, "%s != %s", r1.TokenID, r2.TokenID)
	}
	n := len(r1.Shares)
	if len(r2.Shares) < n {
		n = len(r2.Shares)
	}
	for i := 0; i < n; i++ {
		if bytes.Equal(r1.Shares[i], r2.Shares[i]) {
			continue
		}
		ident := crypto.XorBytes(r1.Shares[i], r2.Shares[i])
		if bytes.HasPrefix(ident, []byte(types.IdentMarker)) {
			v := &Verdict{
				TokenID:  r1.TokenID,
				Kind:     OwnerCheated,
				Identity: string(ident[len(types.IdentMarker):]),
			}
			metrics.Mark(metrics.OwnerCheated)
			clog.Warn("DetermineCheater", "id", v.TokenID, "cheater", v.Kind, "identity", v.Identity)
			return v, nil
		}
	}
	metrics.Mark(metrics.VerifierCheated)
	clog.Warn("DetermineCheater", "id", r1.TokenID, "cheater", VerifierCheated)
	return &Verdict{TokenID: r1.TokenID, Kind: VerifierCheated}, nil
}
