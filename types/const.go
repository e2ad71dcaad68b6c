// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin protocol
const (
	// CoinRisLength 每一侧身份份额(RIS)的个数
	CoinRisLength = 20
	// IdentMarker 左右份额异或后必须以此开头
	IdentMarker = "IDENT"
	// BankTag 规范化coin字符串的标签
	BankTag = "ELECTRONIC_PIGGYBANK"
	// CoinFieldSep 规范化coin字符串的字段分隔符
	CoinFieldSep = "-"
	// CoinListSep commitment 列表分隔符
	CoinListSep = ","
)

// fair signing
const (
	// MinCandidates 盲签名候选文档的最少个数
	MinCandidates = 2
	// DefaultCandidates 默认候选文档个数
	DefaultCandidates = 10
)

// driver & hash names
const (
	// BlindDriverRSA rsa 盲签名驱动名称
	BlindDriverRSA = "rsablind"
	HashSha256     = "sha256"
	HashSha3       = "sha3"
	HashSm3        = "sm3"
	HashRipemd160  = "ripemd160"
)

// MinKeyBits rsa 模数的最小位数
const MinKeyBits = 512

// ledger key prefix
var (
	SpendPrefix = []byte("spend-")
	BurnPrefix  = []byte("burn-")
)

// Version 版本号
const Version = "1.0.0"
