package circuits

import (
	"os"

	"github.com/consensys/gnark/constraint"
	"github.com/vocdoni/zk-multisig/log"
)

// BoolToInt returns 1 when b is true or 0 otherwise.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// BoolsToInts converts the bool slice to a 0/1 slice padded with zeros to n
// elements.
func BoolsToInts(bs []bool, n int) []int {
	out := make([]int, n)
	for i := 0; i < len(bs) && i < n; i++ {
		out[i] = BoolToInt(bs[i])
	}
	return out
}

// StoreConstraintSystem stores the constraint system in a file.
func StoreConstraintSystem(cs constraint.ConstraintSystem, filepath string) error {
	csFd, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer csFd.Close()
	if _, err := cs.WriteTo(csFd); err != nil {
		return err
	}
	log.Infow("constraint system written", "file", filepath, "constraints", cs.GetNbConstraints())
	return nil
}
