// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/blindcoin/common/crypto"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
)

// KeyGenCmd 生成盲签名密钥
func KeyGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a blind signature key pair",
		Run:   keyGen,
	}
	addKeyGenFlags(cmd)
	return cmd
}

func addKeyGenFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("bits", "b", 0, "rsa modulus bits, bank.keyBits of config when 0")
	cmd.Flags().StringP("driver", "d", "", "blind signature driver, bank.driver of config when empty")
	cmd.Flags().Bool("priv", false, "also print the private key")
}

func keyGen(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Println(err)
		return
	}
	bits, _ := cmd.Flags().GetInt("bits")
	driver, _ := cmd.Flags().GetString("driver")
	showPriv, _ := cmd.Flags().GetBool("priv")
	if bits == 0 {
		bits = cfg.Bank.KeyBits
	}
	if driver == "" {
		driver = cfg.Bank.Driver
	}

	c, err := crypto.New(driver)
	if err != nil {
		fmt.Println(err, "drivers:", crypto.GetDriverNames())
		return
	}
	priv, err := c.GenKey(bits)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("driver:", driver)
	fmt.Println("bits:", bits)
	fmt.Println("pubkey:", base58.Encode(priv.PubKey().Bytes()))
	if showPriv {
		fmt.Println("privkey:", base58.Encode(priv.Bytes()))
	}
}
