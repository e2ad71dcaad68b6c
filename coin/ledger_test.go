// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coin

import (
	"testing"

	"github.com/33cn/blindcoin/common/db"
	"github.com/33cn/blindcoin/metrics"
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T, cacheSize int) (*Ledger, db.DB) {
	kvdb, err := db.NewDB("ledger", db.MemDBBackendStr, "", 0)
	require.Nil(t, err)
	ledger, err := NewLedger(kvdb, cacheSize)
	require.Nil(t, err)
	return ledger, kvdb
}

func TestRevealRecordCodec(t *testing.T) {
	bank := newTestBank(t)
	tok := issueSigned(t, bank, "alice", 20)
	rec, err := NewVerifier(bank.Params(), &seqChooser{values: []int{1}}).Accept(tok)
	require.Nil(t, err)

	decoded, err := UnmarshalRevealRecord(rec.Marshal())
	require.Nil(t, err)
	assert.Equal(t, rec, decoded)

	_, err = UnmarshalRevealRecord([]byte{0x0a, 0x10, 'a'})
	assert.Equal(t, types.ErrDecode, errors.Cause(err))
	_, err = UnmarshalRevealRecord(nil)
	assert.Equal(t, types.ErrDecode, errors.Cause(err))
	bad := &RevealRecord{TokenID: "x", Side: Side(3)}
	_, err = UnmarshalRevealRecord(bad.Marshal())
	assert.Equal(t, types.ErrDecode, errors.Cause(err))
}

func TestLedgerDeposit(t *testing.T) {
	bank := newTestBank(t)
	ledger, kvdb := newTestLedger(t, 16)
	defer kvdb.Close()

	tok := issueSigned(t, bank, "alice", 20)
	v := NewVerifier(bank.Params(), &seqChooser{values: []int{0, 0, 1}})
	recs := make([]*RevealRecord, 3)
	for i := range recs {
		var err error
		recs[i], err = v.Accept(tok)
		require.Nil(t, err)
	}

	owner := metrics.Count(metrics.OwnerCheated)
	verdict, err := ledger.Deposit(recs[0])
	require.Nil(t, err)
	assert.Nil(t, verdict)

	// 商家重复提交同一侧
	verdict, err = ledger.Deposit(recs[1])
	require.Nil(t, err)
	require.NotNil(t, verdict)
	assert.Equal(t, VerifierCheated, verdict.Kind)

	verdict, err = ledger.Deposit(recs[2])
	require.Nil(t, err)
	require.NotNil(t, verdict)
	assert.Equal(t, OwnerCheated, verdict.Kind)
	assert.Equal(t, "alice", verdict.Identity)
	assert.True(t, metrics.Count(metrics.OwnerCheated) > owner)

	stored, err := ledger.Records(tok.ID())
	require.Nil(t, err)
	assert.Equal(t, recs, stored)
	assert.Equal(t, 3, kvdb.Len())

	// 另一个 coin 互不影响
	other := issueSigned(t, bank, "bob", 10)
	rec, err := NewVerifier(bank.Params(), nil).Accept(other)
	require.Nil(t, err)
	verdict, err = ledger.Deposit(rec)
	require.Nil(t, err)
	assert.Nil(t, verdict)

	_, err = ledger.Deposit(nil)
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
}

func TestLedgerCacheEviction(t *testing.T) {
	bank := newTestBank(t)
	ledger, kvdb := newTestLedger(t, 1)
	defer kvdb.Close()

	alice := issueSigned(t, bank, "alice", 20)
	bob := issueSigned(t, bank, "bob", 20)
	v := NewVerifier(bank.Params(), &seqChooser{values: []int{1, 0, 0}})

	r1, err := v.Accept(alice)
	require.Nil(t, err)
	_, err = ledger.Deposit(r1)
	require.Nil(t, err)

	r2, err := v.Accept(bob)
	require.Nil(t, err)
	_, err = ledger.Deposit(r2)
	require.Nil(t, err)

	// alice 的记录已被挤出缓存, 从 db 中读回
	r3, err := v.Accept(alice)
	require.Nil(t, err)
	verdict, err := ledger.Deposit(r3)
	require.Nil(t, err)
	require.NotNil(t, verdict)
	assert.Equal(t, OwnerCheated, verdict.Kind)
	assert.Equal(t, "alice", verdict.Identity)

	stored, err := ledger.Records(alice.ID())
	require.Nil(t, err)
	assert.Len(t, stored, 2)

	_, err = NewLedger(kvdb, 0)
	assert.NotNil(t, err)
}

// 每次重复花费只计一次, 与之前的记录条数无关
func TestLedgerDoubleSpendCount(t *testing.T) {
	bank := newTestBank(t)
	ledger, kvdb := newTestLedger(t, 16)
	defer kvdb.Close()

	tok := issueSigned(t, bank, "alice", 20)
	v := NewVerifier(bank.Params(), &seqChooser{values: []int{0, 0, 0, 0}})
	for i := 0; i < 3; i++ {
		rec, err := v.Accept(tok)
		require.Nil(t, err)
		_, err = ledger.Deposit(rec)
		require.Nil(t, err)
	}

	before := metrics.Count(metrics.DoubleSpend)
	rec, err := v.Accept(tok)
	require.Nil(t, err)
	verdict, err := ledger.Deposit(rec)
	require.Nil(t, err)
	require.NotNil(t, verdict)
	assert.Equal(t, VerifierCheated, verdict.Kind)
	assert.Equal(t, before+1, metrics.Count(metrics.DoubleSpend))
}
