// Package gas estimates the amortized cost of authorizing transfers in
// batches verified by a single multisig proof.
package gas

import "fmt"

const (
	// ProofGas is the gas used to verify one batch proof on chain.
	ProofGas = 431777
	// EOATransferGas is the gas of an ERC-20 transfer from an EOA.
	EOATransferGas = 41946
	// Safe3of5TransferGas is the gas of an ERC-20 transfer from a 3 of 5
	// Safe multisig.
	Safe3of5TransferGas = 81452
	// MaxMeasuredOperations is the biggest batch with a measured cost.
	MaxMeasuredOperations = 50
)

// CallsWithoutProof holds the measured gas of executing a batch of n
// transfers, without the proof verification.
var CallsWithoutProof = map[int]uint64{
	1:  9402,
	2:  17081,
	3:  24767,
	4:  32454,
	5:  40147,
	6:  47842,
	7:  55543,
	8:  63248,
	9:  70965,
	10: 78678,
	11: 86404,
	12: 94137,
	13: 101877,
	14: 109627,
	15: 117385,
	16: 125154,
	17: 132945,
	18: 140725,
	19: 148528,
	20: 156343,
	21: 164171,
	22: 172012,
	23: 179867,
	24: 187736,
	25: 195640,
	26: 203523,
	27: 211441,
	28: 219375,
	29: 227327,
	30: 235297,
	31: 243286,
	32: 251294,
	33: 259351,
	34: 267371,
	35: 275441,
	36: 283533,
	37: 291646,
	38: 299782,
	39: 307944,
	40: 316128,
	41: 324376,
	42: 332571,
	43: 340830,
	44: 349116,
	45: 357429,
	46: 365769,
	47: 374139,
	48: 382536,
	49: 391017,
	50: 399421,
}

// Estimation is the cost of a batch of Operations transfers.
type Estimation struct {
	Operations  int     `json:"operations"`
	CallsGas    uint64  `json:"callsGas"`
	ProofGas    uint64  `json:"proofGas"`
	TotalGas    uint64  `json:"totalGas"`
	PerTransfer float64 `json:"perTransfer"`
	// SavingVsEOA and SavingVsSafe are the fraction of gas saved per
	// transfer. Negative values mean the batch is more expensive.
	SavingVsEOA  float64 `json:"savingVsEOA"`
	SavingVsSafe float64 `json:"savingVsSafe"`
}

// Estimate returns the cost of a batch of n transfers.
func Estimate(n int) (*Estimation, error) {
	calls, ok := CallsWithoutProof[n]
	if !ok {
		return nil, fmt.Errorf("no gas measure for %d operations, valid range is 1 to %d", n, MaxMeasuredOperations)
	}
	total := calls + ProofGas
	perTransfer := float64(total) / float64(n)
	return &Estimation{
		Operations:   n,
		CallsGas:     calls,
		ProofGas:     ProofGas,
		TotalGas:     total,
		PerTransfer:  perTransfer,
		SavingVsEOA:  1 - perTransfer/EOATransferGas,
		SavingVsSafe: 1 - perTransfer/Safe3of5TransferGas,
	}, nil
}

// Table returns the estimations of every measured batch size.
func Table() []*Estimation {
	table := make([]*Estimation, 0, MaxMeasuredOperations)
	for n := 1; n <= MaxMeasuredOperations; n++ {
		e, err := Estimate(n)
		if err != nil {
			panic(err)
		}
		table = append(table, e)
	}
	return table
}

// BreakEven returns the smallest batch size whose cost per transfer is lower
// than reference. False is returned if no measured batch is cheaper.
func BreakEven(reference uint64) (int, bool) {
	for _, e := range Table() {
		if e.PerTransfer < float64(reference) {
			return e.Operations, true
		}
	}
	return 0, false
}
