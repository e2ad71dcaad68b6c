// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rsablind rsa full-domain-hash 盲签名
//
// h = sha256(msg) mod n
// blinded = h * r^e mod n
// blindSig = blinded^d mod n
// sig = blindSig * r^-1 mod n, 验证 sig^e mod n == h
package rsablind

import (
	"bytes"
	crand "crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"io"
	"math/big"

	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
)

//const
const (
	Name = types.BlindDriverRSA
)

var bigOne = big.NewInt(1)

//Driver 驱动
type Driver struct{}

//GenKey 生成私钥
func (d Driver) GenKey(bits int) (crypto.BlindPrivKey, error) {
	if bits < types.MinKeyBits {
		return nil, errors.Wrapf(types.ErrInvalidParam, "key bits %d", bits)
	}
	key, err := rsa.GenerateKey(crypto.CReader(), bits)
	if err != nil {
		return nil, errors.Wrap(err, "rsa.GenerateKey")
	}
	key.Precompute()
	return &PrivKeyRSA{key: key}, nil
}

//PrivKeyFromBytes 字节转为私钥
func (d Driver) PrivKeyFromBytes(b []byte) (crypto.BlindPrivKey, error) {
	key, err := x509.ParsePKCS1PrivateKey(b)
	if err != nil {
		return nil, errors.Wrap(err, "invalid priv key byte")
	}
	return &PrivKeyRSA{key: key}, nil
}

//PubKeyFromBytes 字节转为公钥
func (d Driver) PubKeyFromBytes(b []byte) (crypto.BlindPubKey, error) {
	key, err := x509.ParsePKCS1PublicKey(b)
	if err != nil {
		return nil, errors.Wrap(err, "invalid pub key byte")
	}
	return &PubKeyRSA{key: key}, nil
}

//PrivKeyRSA PrivKey
type PrivKeyRSA struct {
	key *rsa.PrivateKey
}

//Bytes 字节格式
func (privKey *PrivKeyRSA) Bytes() []byte {
	return x509.MarshalPKCS1PrivateKey(privKey.key)
}

//BlindSign 对盲化消息签名
func (privKey *PrivKeyRSA) BlindSign(blinded []byte) ([]byte, error) {
	n := privKey.key.N
	m := new(big.Int).SetBytes(blinded)
	if m.Sign() == 0 || m.Cmp(n) >= 0 {
		return nil, errors.Wrap(types.ErrInvalidParam, "blinded message out of range")
	}
	s := new(big.Int).Exp(m, privKey.key.D, n)
	return leftPad(s.Bytes(), byteLen(n)), nil
}

//PubKey 公钥
func (privKey *PrivKeyRSA) PubKey() crypto.BlindPubKey {
	return &PubKeyRSA{key: &privKey.key.PublicKey}
}

//Equals 相等
func (privKey *PrivKeyRSA) Equals(other crypto.BlindPrivKey) bool {
	if otherRSA, ok := other.(*PrivKeyRSA); ok {
		return privKey.key.Equal(otherRSA.key)
	}
	return false
}

//PubKeyRSA PubKey
type PubKeyRSA struct {
	key *rsa.PublicKey
}

//NewPubKey 由模数和指数构造公钥
func NewPubKey(modulus *big.Int, exponent int) *PubKeyRSA {
	return &PubKeyRSA{key: &rsa.PublicKey{N: new(big.Int).Set(modulus), E: exponent}}
}

//Modulus 模数
func (pubKey *PubKeyRSA) Modulus() *big.Int {
	return new(big.Int).Set(pubKey.key.N)
}

//Exponent 公钥指数
func (pubKey *PubKeyRSA) Exponent() int {
	return pubKey.key.E
}

//Bytes 字节格式
func (pubKey *PubKeyRSA) Bytes() []byte {
	return x509.MarshalPKCS1PublicKey(pubKey.key)
}

//KeyString 公钥字符串格式
func (pubKey *PubKeyRSA) KeyString() string {
	return fmt.Sprintf("%X", pubKey.Bytes())
}

//Blind 盲化
func (pubKey *PubKeyRSA) Blind(random io.Reader, msg []byte) (blinded, factor []byte, err error) {
	r, err := pubKey.randomFactor(random)
	if err != nil {
		return nil, nil, err
	}
	size := byteLen(pubKey.key.N)
	return leftPad(pubKey.blind(msg, r).Bytes(), size), leftPad(r.Bytes(), size), nil
}

//BlindWithFactor 使用给定盲化因子盲化
func (pubKey *PubKeyRSA) BlindWithFactor(msg, factor []byte) ([]byte, error) {
	r := new(big.Int).SetBytes(factor)
	if !pubKey.validFactor(r) {
		return nil, errors.Wrap(types.ErrInvalidParam, "invalid blinding factor")
	}
	return leftPad(pubKey.blind(msg, r).Bytes(), byteLen(pubKey.key.N)), nil
}

//Unblind 去盲
func (pubKey *PubKeyRSA) Unblind(blindSig, factor []byte) ([]byte, error) {
	n := pubKey.key.N
	r := new(big.Int).SetBytes(factor)
	if !pubKey.validFactor(r) {
		return nil, errors.Wrap(types.ErrInvalidParam, "invalid blinding factor")
	}
	s := new(big.Int).SetBytes(blindSig)
	if s.Sign() == 0 || s.Cmp(n) >= 0 {
		return nil, errors.Wrap(types.ErrInvalidParam, "blind signature out of range")
	}
	rInv := new(big.Int).ModInverse(r, n)
	if rInv == nil {
		return nil, errors.Wrap(types.ErrInvalidParam, "blinding factor not invertible")
	}
	s.Mul(s, rInv)
	s.Mod(s, n)
	return leftPad(s.Bytes(), byteLen(n)), nil
}

//VerifyBytes 验证签名
func (pubKey *PubKeyRSA) VerifyBytes(msg, sig []byte) bool {
	n := pubKey.key.N
	s := new(big.Int).SetBytes(sig)
	if s.Sign() == 0 || s.Cmp(n) >= 0 {
		return false
	}
	m := new(big.Int).Exp(s, big.NewInt(int64(pubKey.key.E)), n)
	return m.Cmp(pubKey.hashToInt(msg)) == 0
}

//Equals 相等
func (pubKey *PubKeyRSA) Equals(other crypto.BlindPubKey) bool {
	if otherRSA, ok := other.(*PubKeyRSA); ok {
		return bytes.Equal(pubKey.Bytes(), otherRSA.Bytes())
	}
	return false
}

func (pubKey *PubKeyRSA) blind(msg []byte, r *big.Int) *big.Int {
	n := pubKey.key.N
	re := new(big.Int).Exp(r, big.NewInt(int64(pubKey.key.E)), n)
	h := pubKey.hashToInt(msg)
	h.Mul(h, re)
	return h.Mod(h, n)
}

func (pubKey *PubKeyRSA) hashToInt(msg []byte) *big.Int {
	h := new(big.Int).SetBytes(crypto.Sha256(msg))
	return h.Mod(h, pubKey.key.N)
}

// r 属于 [2, n) 且与 n 互素
func (pubKey *PubKeyRSA) randomFactor(random io.Reader) (*big.Int, error) {
	for i := 0; i < 64; i++ {
		r, err := crand.Int(random, pubKey.key.N)
		if err != nil {
			return nil, errors.Wrap(err, "random factor")
		}
		if pubKey.validFactor(r) {
			return r, nil
		}
	}
	return nil, errors.Wrap(types.ErrInvalidParam, "no valid blinding factor")
}

func (pubKey *PubKeyRSA) validFactor(r *big.Int) bool {
	if r.Cmp(bigOne) <= 0 || r.Cmp(pubKey.key.N) >= 0 {
		return false
	}
	return new(big.Int).GCD(nil, nil, r, pubKey.key.N).Cmp(bigOne) == 0
}

func byteLen(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

func leftPad(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	res := make([]byte, size)
	copy(res[size-len(b):], b)
	return res
}

func init() {
	crypto.Register(Name, &Driver{})
}
