// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import "io"

// BlindCrypto 盲签名方案
type BlindCrypto interface {
	GenKey(bits int) (BlindPrivKey, error)
	PrivKeyFromBytes([]byte) (BlindPrivKey, error)
	PubKeyFromBytes([]byte) (BlindPubKey, error)
}

// BlindPrivKey 签名方私钥
type BlindPrivKey interface {
	Bytes() []byte
	// BlindSign 对盲化后的消息签名, 签名方看不到原文
	BlindSign(blinded []byte) ([]byte, error)
	PubKey() BlindPubKey
	Equals(BlindPrivKey) bool
}

// BlindPubKey 签名方公钥, 请求方用其盲化和去盲
type BlindPubKey interface {
	Bytes() []byte
	KeyString() string
	// Blind 使用新的随机盲化因子盲化消息
	Blind(random io.Reader, msg []byte) (blinded, factor []byte, err error)
	// BlindWithFactor 使用给定的盲化因子盲化消息, 结果是确定的
	BlindWithFactor(msg, factor []byte) ([]byte, error)
	// Unblind 去掉盲签名中的盲化因子
	Unblind(blindSig, factor []byte) ([]byte, error)
	VerifyBytes(msg, sig []byte) bool
	Equals(BlindPubKey) bool
}

// Chooser 在 [0, n) 中均匀随机选择一个值
type Chooser interface {
	Choose(n int) (int, error)
}

// HashFunc 承诺使用的单向hash
type HashFunc func([]byte) []byte
