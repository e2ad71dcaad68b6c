// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/33cn/blindcoin/system/commands"
	"github.com/33cn/blindcoin/types"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blindcoin",
	Short: "blind signature coin and fair signing tools",
}

func init() {
	rootCmd.AddCommand(
		commands.CoinCmd(),
		commands.FairSignCmd(),
		commands.KeyGenCmd(),
		commands.ConfigCmd(),
	)
}

//Run :
func Run(confPath string) {
	rootCmd.PersistentFlags().String("conf", confPath, "config file, default config is used when empty")
	rootCmd.PersistentFlags().Bool("stat", false, "print protocol counters after the command")
	rootCmd.Version = types.Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
