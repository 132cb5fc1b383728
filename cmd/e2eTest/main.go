package main

import (
	"context"
	"math/big"

	flag "github.com/spf13/pflag"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/arbo/memdb"
	"github.com/vocdoni/zk-multisig/api"
	"github.com/vocdoni/zk-multisig/api/client"
	"github.com/vocdoni/zk-multisig/config"
	"github.com/vocdoni/zk-multisig/log"
	"github.com/vocdoni/zk-multisig/service"
	"github.com/vocdoni/zk-multisig/storage"
	"github.com/vocdoni/zk-multisig/types"
	"github.com/vocdoni/zk-multisig/util"
)

const (
	usdtAddress = "0xdac17f958d2ee523a2206206994597c13d831ec7"
)

func main() {
	conf := config.Default()
	conf.APIHost = "127.0.0.1"
	conf.APIPort = 0
	conf.LogLevel = log.LogLevelDebug
	conf.BindFlags(flag.CommandLine)
	rosterSize := flag.Int("signers", types.MaxSigners, "roster size")
	threshold := flag.Int("threshold", 3, "required signatures")
	flag.Parse()
	log.Init(conf.LogLevel, conf.LogOutput, nil)

	stg := storage.New(memdb.New())
	defer stg.Close()
	srv := service.NewAPI(stg, conf)
	if err := srv.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
	defer srv.Stop()

	url, err := srv.URL()
	if err != nil {
		log.Fatal(err)
	}
	cli, err := client.New(url)
	if err != nil {
		log.Fatal(err)
	}

	roster, err := cli.NewRoster(*rosterSize)
	if err != nil {
		log.Fatal(err)
	}
	log.Infow("roster created", "rosterId", roster.RosterID.String(), "root", roster.Root.String())

	mask := make([]bool, *rosterSize)
	for i := 0; i < *threshold && i < len(mask); i++ {
		mask[i] = true
	}
	amount := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	amount.Mul(amount, big.NewInt(int64(util.RandomInt(1, 1000))))
	resp, err := cli.NewBatch(&api.NewBatch{
		RosterID:  roster.RosterID,
		Amount:    types.FromBigInt(amount),
		Token:     common.HexToAddress(usdtAddress),
		Recipient: common.BytesToAddress(util.RandomBytes(common.AddressLength)),
		Threshold: *threshold,
		Mask:      mask,
	})
	if err != nil {
		log.Fatal(err)
	}
	log.Infow("batch assembled", "batchId", resp.BatchID.String())

	batch, err := cli.Batch(resp.BatchID)
	if err != nil {
		log.Fatal(err)
	}
	if err := batch.Document.Validate(); err != nil {
		log.Fatal(err)
	}
	for i, sr := range batch.Document.Signatures {
		if !sr.Verify() {
			log.Fatalf("signature %d does not verify", i)
		}
	}
	log.Infow("all signatures verified", "signers", len(batch.Document.Signatures))

	estimation, err := cli.Gas(types.MaxOperations)
	if err != nil {
		log.Fatal(err)
	}
	log.Infow("gas estimation", "operations", estimation.Operations, "perTransfer", estimation.PerTransfer)
}
