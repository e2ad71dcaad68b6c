// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm3"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

//Sha256 加密算法
func Sha256(bytes []byte) []byte {
	hasher := sha256.New()
	hasher.Write(bytes)
	return hasher.Sum(nil)
}

//Sha3 sha3-256
func Sha3(bytes []byte) []byte {
	h := sha3.Sum256(bytes)
	return h[:]
}

//Ripemd160 加密算法
func Ripemd160(bytes []byte) []byte {
	hasher := ripemd160.New()
	hasher.Write(bytes)
	return hasher.Sum(nil)
}

//Sm3Hash 加密算法
func Sm3Hash(msg []byte) []byte {
	c := sm3.New()
	c.Write(msg)
	return c.Sum(nil)
}

var hashes = map[string]HashFunc{
	types.HashSha256:    Sha256,
	types.HashSha3:      Sha3,
	types.HashSm3:       Sm3Hash,
	types.HashRipemd160: Ripemd160,
}

//GetHash 根据名称获取hash函数
func GetHash(name string) (HashFunc, error) {
	h, ok := hashes[name]
	if !ok {
		return nil, errors.Wrapf(types.ErrUnknownHash, "hash %q", name)
	}
	return h, nil
}

//Commit 份额的承诺, hash 的十六进制小写形式
func Commit(h HashFunc, share []byte) string {
	return hex.EncodeToString(h(share))
}
