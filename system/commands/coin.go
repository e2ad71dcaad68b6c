// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/blindcoin/coin"
	"github.com/33cn/blindcoin/common/crypto"
	"github.com/33cn/blindcoin/common/db"
	"github.com/33cn/blindcoin/types"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// CoinCmd 发行一个 coin, 花费两次, 由银行判断双花的责任方
func CoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coin",
		Short: "Issue a coin, spend it twice and find out who cheated",
		Run:   spendTwice,
	}
	addCoinFlags(cmd)
	return cmd
}

func addCoinFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("identity", "i", "alice", "identity of the coin owner")
	cmd.Flags().StringP("amount", "a", "20", "coin amount")
	cmd.Flags().Bool("same-side", false, "both merchants ask for the same side, the bank blames the merchant")
}

func spendTwice(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Println(err)
		return
	}
	identity, _ := cmd.Flags().GetString("identity")
	amountStr, _ := cmd.Flags().GetString("amount")
	sameSide, _ := cmd.Flags().GetBool("same-side")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fmt.Println(errors.Wrapf(types.ErrInvalidAmount, "amount %s", amountStr))
		return
	}

	res, err := runCoin(cfg, identity, amount, sameSide)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("coin:", res.Coin)
	fmt.Println("signature:", base58.Encode(res.Signature))
	for i, rec := range res.Spends {
		fmt.Printf("spend %d: merchant asked for the %s side\n", i+1, rec.Side)
	}
	fmt.Println(res.Verdict.String())
	printStat(cmd)
}

type coinResult struct {
	Coin      string
	Signature []byte
	Spends    []*coin.RevealRecord
	Verdict   *coin.Verdict
}

// 两个商家都要求左侧份额
type sameSideChooser struct{}

func (sameSideChooser) Choose(n int) (int, error) {
	return int(coin.SideLeft), nil
}

// 两个商家分别要求左右两侧
type alternateChooser struct {
	next int
}

func (c *alternateChooser) Choose(n int) (int, error) {
	v := c.next % n
	c.next++
	return v, nil
}

func runCoin(cfg *types.Config, identity string, amount decimal.Decimal, sameSide bool) (*coinResult, error) {
	bank, err := coin.NewBank(cfg.Bank)
	if err != nil {
		return nil, err
	}
	kvdb, err := db.NewDB("ledger", db.MemDBBackendStr, "", cfg.Ledger.CacheSize)
	if err != nil {
		return nil, err
	}
	defer kvdb.Close()
	ledger, err := coin.NewLedger(kvdb, cfg.Ledger.CacheSize)
	if err != nil {
		return nil, err
	}

	tok, err := coin.NewIssuer(bank.Params()).Issue(identity, amount)
	if err != nil {
		return nil, err
	}
	blindSig, err := bank.SignCoin(tok.Blinded())
	if err != nil {
		return nil, err
	}
	if err := tok.Unblind(blindSig); err != nil {
		return nil, err
	}

	var chooser crypto.Chooser = &alternateChooser{}
	if sameSide {
		chooser = sameSideChooser{}
	}
	res := &coinResult{Coin: tok.String(), Signature: tok.Signature()}
	for i := 0; i < 2; i++ {
		rec, err := coin.NewVerifier(bank.Params(), chooser).Accept(tok)
		if err != nil {
			return nil, err
		}
		verdict, err := ledger.Deposit(rec)
		if err != nil {
			return nil, err
		}
		res.Spends = append(res.Spends, rec)
		res.Verdict = verdict
	}
	return res, nil
}
