package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
	"github.com/vocdoni/zk-multisig/circuits"
	"github.com/vocdoni/zk-multisig/circuits/multisig"
	"github.com/vocdoni/zk-multisig/config"
	"github.com/vocdoni/zk-multisig/gas"
	"github.com/vocdoni/zk-multisig/keystore"
	"github.com/vocdoni/zk-multisig/log"
	"github.com/vocdoni/zk-multisig/packing"
	"github.com/vocdoni/zk-multisig/service"
	"github.com/vocdoni/zk-multisig/storage"
	"github.com/vocdoni/zk-multisig/types"
	"go.vocdoni.io/dvote/db/metadb"
)

const usage = `usage: multisig <command> [flags]

commands:
  keygen   generate a roster of signer keys
  batch    sign an operation and write the circuit inputs
  gas      print the gas estimation of batched transfers
  layout   compile the message layout circuit
  serve    start the HTTP API
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	conf := config.Default()
	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	conf.BindFlags(fs)

	var run func() error
	switch os.Args[1] {
	case "keygen":
		run = keygenCmd(fs)
	case "batch":
		run = batchCmd(fs, conf)
	case "gas":
		run = gasCmd(fs)
	case "layout":
		run = layoutCmd(fs)
	case "serve":
		run = serveCmd(conf)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		log.Fatal(err)
	}
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}
	log.Init(conf.LogLevel, conf.LogOutput, nil)
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func keygenCmd(fs *flag.FlagSet) func() error {
	size := fs.Int("size", 1, "number of keys to generate")
	out := fs.String("out", "keys.json", "roster document file")
	return func() error {
		roster, err := keystore.GenerateRoster(*size)
		if err != nil {
			return err
		}
		fd, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer fd.Close()
		if err := roster.WriteRoster(fd); err != nil {
			return err
		}
		log.Infow("roster generated", "size", *size, "file", *out)
		return nil
	}
}

func batchCmd(fs *flag.FlagSet, conf *config.Config) func() error {
	keys := fs.String("keys", "keys.json", "roster document file")
	amount := fs.String("amount", "", "transfer amount (decimal or 0x hex)")
	token := fs.String("token", "", "token address")
	recipient := fs.String("recipient", "", "recipient address")
	threshold := fs.Int("threshold", 1, "required valid signatures (n)")
	signers := fs.Int("signers", 0, "roster signers used (m), 0 for the whole roster")
	mask := fs.BoolSlice("mask", nil, "validity flag of every signer, defaults to all valid")
	out := fs.String("out", "inputs.json", "circuit inputs file")
	sigsOut := fs.String("signatures", "", "optional signatures document file")
	store := fs.Bool("store", false, "store the roster and the batch in the database")
	return func() error {
		value := new(types.BigInt)
		if err := value.UnmarshalText([]byte(*amount)); err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		if !common.IsHexAddress(*token) || !common.IsHexAddress(*recipient) {
			return fmt.Errorf("invalid token or recipient address")
		}
		fd, err := os.Open(*keys)
		if err != nil {
			return err
		}
		roster, err := keystore.ReadRoster(fd)
		fd.Close()
		if err != nil {
			return err
		}
		m := *signers
		if m == 0 {
			m = roster.Len()
		}
		if *mask == nil {
			*mask = multisig.FullMask(m)
		}
		doc, err := multisig.AssembleWithShape(context.Background(), &multisig.Request{
			Operation: packing.NewOperation(value.MathBigInt(), common.HexToAddress(*token), common.HexToAddress(*recipient)),
			Threshold: *threshold,
			Signers:   *signers,
			Roster:    roster,
			Mask:      *mask,
		}, conf.Shape())
		if err != nil {
			return err
		}
		if err := writeJSON(*out, doc.Inputs); err != nil {
			return err
		}
		if *sigsOut != "" {
			if err := writeJSON(*sigsOut, doc.Signatures); err != nil {
				return err
			}
		}
		log.Infow("batch assembled", "inputs", *out, "rosterRoot", doc.RosterRoot.String())
		if !*store {
			return nil
		}
		database, err := metadb.New(conf.DBType, conf.Datadir)
		if err != nil {
			return err
		}
		stg := storage.New(database)
		defer stg.Close()
		rosterID := uuid.New()
		if _, err := stg.SetRoster(rosterID, roster); err != nil {
			return err
		}
		key, err := stg.SetBatch(rosterID, doc)
		if err != nil {
			return err
		}
		log.Infow("batch stored", "rosterId", rosterID.String(), "batchId", types.HexBytes(key).String())
		return nil
	}
}

func gasCmd(fs *flag.FlagSet) func() error {
	operations := fs.Int("operations", 0, "batch size, 0 prints the whole table")
	return func() error {
		table := gas.Table()
		if *operations != 0 {
			e, err := gas.Estimate(*operations)
			if err != nil {
				return err
			}
			table = []*gas.Estimation{e}
		}
		fmt.Printf("EOA ERC-20 transfer: %d\n", gas.EOATransferGas)
		fmt.Printf("Safe 3 of 5 ERC-20 transfer: %d\n", gas.Safe3of5TransferGas)
		for _, e := range table {
			fmt.Printf("%2d transfers: %10d total, %12.2f per transfer\n", e.Operations, e.TotalGas, e.PerTransfer)
		}
		return nil
	}
}

func layoutCmd(fs *flag.FlagSet) func() error {
	out := fs.String("out", "layout.ccs", "constraint system file")
	return func() error {
		ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &multisig.LayoutCircuit{})
		if err != nil {
			return fmt.Errorf("compile layout circuit: %w", err)
		}
		return circuits.StoreConstraintSystem(ccs, *out)
	}
}

func serveCmd(conf *config.Config) func() error {
	return func() error {
		database, err := metadb.New(conf.DBType, conf.Datadir)
		if err != nil {
			return err
		}
		stg := storage.New(database)
		defer stg.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		srv := service.NewAPI(stg, conf)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer srv.Stop()
		<-ctx.Done()
		log.Infow("shutting down")
		return nil
	}
}

func writeJSON(file string, data any) error {
	jdata, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, append(jdata, '\n'), 0o644)
}
