// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/blindcoin/fairsign"
	"github.com/33cn/blindcoin/types"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
)

// FairSignCmd 请求签名方对一份候选文档做盲签名
func FairSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fairsign",
		Short: "Get one of several blinded documents signed by the agency",
		Run:   fairSign,
	}
	addFairSignFlags(cmd)
	return cmd
}

func addFairSignFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("candidates", "n", 0, "number of candidate documents, agency.candidates of config when 0")
	cmd.Flags().IntP("tamper", "t", -1, "tamper with the plaintext of this candidate before disclosure")
}

func fairSign(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Println(err)
		return
	}
	candidates, _ := cmd.Flags().GetInt("candidates")
	tamper, _ := cmd.Flags().GetInt("tamper")
	if candidates > 0 {
		cfg.Agency.Candidates = candidates
	}

	res, err := runFairSign(cfg.Agency, tamper)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("agency selected document index:", res.Sealed)
	if res.Tampered >= 0 {
		fmt.Println("tampered document index:", res.Tampered)
	}
	if res.Err != nil {
		fmt.Println("session", res.State, ":", res.Err)
	} else {
		fmt.Printf("unblinded signature for document %q: %s\n", res.Document, base58.Encode(res.Signature))
	}
	printStat(cmd)
}

type fairSignResult struct {
	Sealed    int
	Tampered  int
	State     fairsign.State
	Document  string
	Signature []byte
	Err       error
}

// tamper 为封存的位置时改为修改下一份
func runFairSign(cfg *types.Agency, tamper int) (*fairSignResult, error) {
	agency, err := fairsign.NewAgency(cfg, nil)
	if err != nil {
		return nil, err
	}
	docs := make([][]byte, cfg.Candidates)
	for i := range docs {
		name := fairsign.CoverNames[i%len(fairsign.CoverNames)]
		if i >= len(fairsign.CoverNames) {
			name = fmt.Sprintf("%s %d", name, i/len(fairsign.CoverNames)+1)
		}
		docs[i] = fairsign.MakeDocument(name)
	}

	blinder := fairsign.NewBlinder(agency.PubKey())
	if err := blinder.Prepare(docs); err != nil {
		return nil, err
	}
	session, err := agency.Open(blinder.Blinded())
	if err != nil {
		return nil, err
	}
	res := &fairSignResult{Sealed: session.Sealed(), Tampered: -1}

	ds, err := blinder.Disclose(res.Sealed)
	if err != nil {
		return nil, err
	}
	if tamper >= 0 && tamper < cfg.Candidates {
		if tamper == res.Sealed {
			tamper = (tamper + 1) % cfg.Candidates
		}
		for i := range ds {
			if ds[i].Index == tamper {
				ds[i].Plaintext = fairsign.MakeDocument("James Bond")
				res.Tampered = tamper
			}
		}
	}

	blindSig, err := session.Submit(ds)
	res.State = session.State()
	if err != nil {
		res.Err = err
		return res, nil
	}
	sig, err := blinder.Unblind(res.Sealed, blindSig)
	if err != nil {
		return nil, err
	}
	doc, err := blinder.Document(res.Sealed)
	if err != nil {
		return nil, err
	}
	res.Document = string(doc)
	res.Signature = sig
	return res, nil
}
