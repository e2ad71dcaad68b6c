// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coin

import (
	"fmt"
	"sync"

	"github.com/33cn/blindcoin/common/db"
	"github.com/33cn/blindcoin/metrics"
	"github.com/33cn/blindcoin/types"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// Ledger 银行的花费记录, coin id -> 商家提交的所有公开记录
type Ledger struct {
	mu    sync.Mutex
	db    db.DB
	cache *lru.Cache
}

// NewLedger new
func NewLedger(kvdb db.DB, cacheSize int) (*Ledger, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "NewLedger")
	}
	return &Ledger{db: kvdb, cache: cache}, nil
}

func spendPrefix(id string) []byte {
	return []byte(fmt.Sprintf("%s%s-", types.SpendPrefix, id))
}

func spendKey(id string, index int) []byte {
	return []byte(fmt.Sprintf("%s%s-%08d", types.SpendPrefix, id, index))
}

// Deposit 商家存入一次花费记录
//
// 第一次花费返回 nil. 之后的每次都与已有记录逐一比较,
// 能追查到持有者时返回持有者作弊, 否则为商家作弊.
func (l *Ledger) Deposit(rec *RevealRecord) (*Verdict, error) {
	if rec == nil || rec.TokenID == "" {
		return nil, errors.Wrap(types.ErrInvalidParam, "empty reveal record")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, err := l.records(rec.TokenID)
	if err != nil {
		return nil, err
	}
	if err := l.db.Set(spendKey(rec.TokenID, len(prev)), rec.Marshal()); err != nil {
		return nil, errors.Wrap(err, "Deposit")
	}
	all := append(append([]*RevealRecord(nil), prev...), rec)
	l.cache.Add(rec.TokenID, all)
	metrics.Mark(metrics.CoinDeposited)

	if len(prev) == 0 {
		clog.Info("Deposit", "id", rec.TokenID, "side", rec.Side)
		return nil, nil
	}
	metrics.Mark(metrics.DoubleSpend)
	clog.Warn("Deposit double spend", "id", rec.TokenID, "spends", len(all))
	var verdict *Verdict
	for _, p := range prev {
		v, err := DetermineCheater(p, rec)
		if err != nil {
			return nil, err
		}
		if v.Kind == OwnerCheated {
			return v, nil
		}
		verdict = v
	}
	return verdict, nil
}

// Records 某个 coin 的所有花费记录
func (l *Ledger) Records(id string) ([]*RevealRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	recs, err := l.records(id)
	if err != nil {
		return nil, err
	}
	return append([]*RevealRecord(nil), recs...), nil
}

func (l *Ledger) records(id string) ([]*RevealRecord, error) {
	if v, ok := l.cache.Get(id); ok {
		return v.([]*RevealRecord), nil
	}
	values, err := l.db.List(spendPrefix(id))
	if err != nil {
		return nil, errors.Wrap(err, "list spends")
	}
	recs := make([]*RevealRecord, 0, len(values))
	for _, value := range values {
		rec, err := UnmarshalRevealRecord(value)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
