// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coin

import (
	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// RevealRecord 的 protobuf 编码
//
//	message RevealRecord {
//	    string tokenID = 1;
//	    int32  side    = 2;
//	    repeated bytes shares = 3;
//	}
const (
	fieldTokenID protowire.Number = 1
	fieldSide    protowire.Number = 2
	fieldShares  protowire.Number = 3
)

// Marshal 编码
func (r *RevealRecord) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldTokenID, protowire.BytesType)
	b = protowire.AppendString(b, r.TokenID)
	b = protowire.AppendTag(b, fieldSide, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Side))
	for _, share := range r.Shares {
		b = protowire.AppendTag(b, fieldShares, protowire.BytesType)
		b = protowire.AppendBytes(b, share)
	}
	return b
}

// UnmarshalRevealRecord 解码
func UnmarshalRevealRecord(b []byte) (*RevealRecord, error) {
	r := &RevealRecord{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(types.ErrDecode, protowire.ParseError(n).Error())
		}
		b = b[n:]
		switch {
		case num == fieldTokenID && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			r.TokenID = string(v)
		case num == fieldSide && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			r.Side = Side(v)
		case num == fieldShares && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			r.Shares = append(r.Shares, crypto.CopyBytes(v))
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, errors.Wrap(types.ErrDecode, protowire.ParseError(n).Error())
		}
		b = b[n:]
	}
	if r.TokenID == "" || !r.Side.Valid() {
		return nil, errors.Wrap(types.ErrDecode, "incomplete reveal record")
	}
	return r, nil
}
