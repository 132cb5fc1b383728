package multisig

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/babyjub"
	"github.com/vocdoni/zk-multisig/circuits"
	"github.com/vocdoni/zk-multisig/crypto/eddsa"
	"github.com/vocdoni/zk-multisig/keystore"
	"github.com/vocdoni/zk-multisig/packing"
	"github.com/vocdoni/zk-multisig/types"
)

// CircuitInputs is the fixed-shape input document of the multisig circuit.
// Every slice has MaxOperations elements and every signer slice MaxSigners
// elements. Unused slots are zero filled.
type CircuitInputs struct {
	N              []int             `json:"n"`
	M              []int             `json:"m"`
	ValidSignature [][]int           `json:"validSignature"`
	Message        [][]*types.BigInt `json:"message"`
	MsgBits        [][]int           `json:"msgBits"`
	A              [][][]int         `json:"a"`
	R8             [][][]int         `json:"r8"`
	S              [][][]int         `json:"s"`
}

// NewCircuitInputs returns an all-zero document with the given shape.
func NewCircuitInputs(shape Shape) *CircuitInputs {
	ci := &CircuitInputs{
		N:              make([]int, shape.MaxOperations),
		M:              make([]int, shape.MaxOperations),
		ValidSignature: make([][]int, shape.MaxOperations),
		Message:        make([][]*types.BigInt, shape.MaxOperations),
		MsgBits:        make([][]int, shape.MaxOperations),
		A:              make([][][]int, shape.MaxOperations),
		R8:             make([][][]int, shape.MaxOperations),
		S:              make([][][]int, shape.MaxOperations),
	}
	for i := range shape.MaxOperations {
		ci.ValidSignature[i] = make([]int, shape.MaxSigners)
		ci.Message[i] = types.BigIntSlice(packing.ZeroPackedOperation().Serialize())
		ci.MsgBits[i] = circuits.ZeroBits(circuits.MessageBits)
		ci.A[i] = zeroSignerBits(shape.MaxSigners)
		ci.R8[i] = zeroSignerBits(shape.MaxSigners)
		ci.S[i] = zeroSignerBits(shape.MaxSigners)
	}
	return ci
}

func zeroSignerBits(signers int) [][]int {
	bits := make([][]int, signers)
	for j := range bits {
		bits[j] = circuits.ZeroBits(circuits.PointBits)
	}
	return bits
}

// Shape returns the shape of the document.
func (ci *CircuitInputs) Shape() Shape {
	s := Shape{MaxOperations: len(ci.N)}
	if len(ci.ValidSignature) > 0 {
		s.MaxSigners = len(ci.ValidSignature[0])
	}
	return s
}

// setOperation fills slot i with a live operation.
func (ci *CircuitInputs) setOperation(i, n int, packed *packing.PackedOperation, mask []bool, records []*SignatureRecord) {
	ci.N[i] = n
	ci.M[i] = len(records)
	ci.ValidSignature[i] = circuits.BoolsToInts(mask, len(ci.ValidSignature[i]))
	ci.Message[i] = types.BigIntSlice(packed.Serialize())
	ci.MsgBits[i] = circuits.BytesToBits(packed.Message())
	for j, rec := range records {
		ci.A[i][j] = rec.PubKeyBits
		ci.R8[i][j] = rec.R8Bits
		ci.S[i][j] = rec.SBits
	}
}

// PackedOperation returns the message of slot i.
func (ci *CircuitInputs) PackedOperation(i int) (*packing.PackedOperation, error) {
	if i < 0 || i >= len(ci.Message) {
		return nil, fmt.Errorf("operation slot %d out of bounds", i)
	}
	if len(ci.Message[i]) != types.PackedElements {
		return nil, fmt.Errorf("operation slot %d: message has %d elements", i, len(ci.Message[i]))
	}
	p := &packing.PackedOperation{}
	for k, e := range ci.Message[i] {
		if e == nil {
			return nil, fmt.Errorf("operation slot %d: nil message element %d", i, k)
		}
		p[k] = new(big.Int).Set(e.MathBigInt())
	}
	return p, nil
}

// LiveSlots returns the indexes of the slots holding an operation.
func (ci *CircuitInputs) LiveSlots() []int {
	live := []int{}
	for i, n := range ci.N {
		if n != 0 {
			live = append(live, i)
		}
	}
	return live
}

// Validate checks the shape of the document and the consistency of every
// slot: live slots must have 0 < n <= m <= MaxSigners, a 0/1 mask that is
// zero beyond m and message bits matching the message; placeholder slots
// must be all zero.
func (ci *CircuitInputs) Validate() error {
	shape := ci.Shape()
	if err := shape.Validate(); err != nil {
		return err
	}
	ops := shape.MaxOperations
	if len(ci.M) != ops || len(ci.ValidSignature) != ops || len(ci.Message) != ops ||
		len(ci.MsgBits) != ops || len(ci.A) != ops || len(ci.R8) != ops || len(ci.S) != ops {
		return fmt.Errorf("inconsistent number of operation slots")
	}
	for i := range ops {
		if err := ci.validateSlot(i, shape); err != nil {
			return fmt.Errorf("operation slot %d: %w", i, err)
		}
	}
	return nil
}

func (ci *CircuitInputs) validateSlot(i int, shape Shape) error {
	n, m := ci.N[i], ci.M[i]
	if len(ci.ValidSignature[i]) != shape.MaxSigners {
		return fmt.Errorf("mask has %d elements", len(ci.ValidSignature[i]))
	}
	if len(ci.MsgBits[i]) != circuits.MessageBits {
		return fmt.Errorf("message has %d bits", len(ci.MsgBits[i]))
	}
	for _, bits := range [][][]int{ci.A[i], ci.R8[i], ci.S[i]} {
		if len(bits) != shape.MaxSigners {
			return fmt.Errorf("%d signer slots", len(bits))
		}
		for j := range bits {
			if len(bits[j]) != circuits.PointBits {
				return fmt.Errorf("signer %d has %d bits", j, len(bits[j]))
			}
		}
	}
	packed, err := ci.PackedOperation(i)
	if err != nil {
		return err
	}
	if n == 0 {
		if m != 0 || !packed.IsZero() || !allZero(ci.ValidSignature[i]) || !allZero(ci.MsgBits[i]) {
			return fmt.Errorf("placeholder slot is not zero filled")
		}
		for _, bits := range [][][]int{ci.A[i], ci.R8[i], ci.S[i]} {
			for j := range bits {
				if !allZero(bits[j]) {
					return fmt.Errorf("placeholder slot has signer %d bits", j)
				}
			}
		}
		return nil
	}
	if n < 0 || n > m || m > shape.MaxSigners {
		return fmt.Errorf("invalid threshold %d of %d signers", n, m)
	}
	for j, v := range ci.ValidSignature[i] {
		if v != 0 && v != 1 {
			return fmt.Errorf("invalid mask value %d at signer %d", v, j)
		}
		if j >= m && v != 0 {
			return fmt.Errorf("mask set for unused signer %d", j)
		}
	}
	if _, err := packing.Unpack(packed); err != nil {
		return err
	}
	msg, err := circuits.BitsToBytes(ci.MsgBits[i])
	if err != nil {
		return err
	}
	if !bytes.Equal(msg, packed.Message()) {
		return fmt.Errorf("message bits do not match the message")
	}
	return nil
}

func allZero(values []int) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

// SignatureValue is a decoded EdDSA signature.
type SignatureValue struct {
	R8 [2]*types.BigInt `json:"R8"`
	S  *types.BigInt    `json:"S"`
}

// SignatureRecord is the signature of one signer over the operation message,
// with the bit decompositions consumed by the circuit.
type SignatureRecord struct {
	Message         types.HexBytes   `json:"msg"`
	PublicKey       [2]*types.BigInt `json:"pubKey"`
	PackedPublicKey types.HexBytes   `json:"pPubKey"`
	Signature       SignatureValue   `json:"signature"`
	MessageBits     []int            `json:"msgBits"`
	R8Bits          []int            `json:"r8"`
	SBits           []int            `json:"s"`
	PubKeyBits      []int            `json:"a"`
}

func newSignatureRecord(msg []byte, key *keystore.KeyRecord, sig *babyjub.Signature) *SignatureRecord {
	packed := eddsa.Pack(sig)
	return &SignatureRecord{
		Message:         append([]byte{}, msg...),
		PublicKey:       [2]*types.BigInt{types.FromBigInt(key.PublicKey.X), types.FromBigInt(key.PublicKey.Y)},
		PackedPublicKey: append([]byte{}, key.PackedPublicKey[:]...),
		Signature: SignatureValue{
			R8: [2]*types.BigInt{types.FromBigInt(sig.R8.X), types.FromBigInt(sig.R8.Y)},
			S:  types.FromBigInt(sig.S),
		},
		MessageBits: circuits.BytesToBits(msg),
		R8Bits:      circuits.BytesToBits(packed[:circuits.SerializedFieldSize]),
		SBits:       circuits.BytesToBits(packed[circuits.SerializedFieldSize:]),
		PubKeyBits:  circuits.BytesToBits(key.PackedPublicKey[:]),
	}
}

// Verify rebuilds the packed signature and public key from the bit fields and
// checks the signature over the message bits.
func (sr *SignatureRecord) Verify() bool {
	msg, err := circuits.BitsToBytes(sr.MessageBits)
	if err != nil || !bytes.Equal(msg, sr.Message) {
		return false
	}
	sigBits := append(append([]int{}, sr.R8Bits...), sr.SBits...)
	packedSig, err := circuits.BitsToBytes(sigBits)
	if err != nil {
		return false
	}
	pubBytes, err := circuits.BitsToBytes(sr.PubKeyBits)
	if err != nil || len(pubBytes) != circuits.SerializedFieldSize {
		return false
	}
	var comp babyjub.PublicKeyComp
	copy(comp[:], pubBytes)
	pub, err := comp.Decompress()
	if err != nil {
		return false
	}
	return eddsa.VerifyPacked(msg, packedSig, pub)
}

// BatchDocument is the result of a batch assembly: the circuit inputs, the
// signatures they were built from and the root of the signer roster.
type BatchDocument struct {
	Inputs     *CircuitInputs     `json:"inputs"`
	Signatures []*SignatureRecord `json:"signatures"`
	RosterRoot types.HexBytes     `json:"rosterRoot"`
}

// Validate checks the inputs and that the batch holds a single live
// operation, in slot 0, signed by its m signers.
func (bd *BatchDocument) Validate() error {
	if bd.Inputs == nil {
		return fmt.Errorf("missing circuit inputs")
	}
	if err := bd.Inputs.Validate(); err != nil {
		return err
	}
	live := bd.Inputs.LiveSlots()
	if len(live) != 1 || live[0] != 0 {
		return fmt.Errorf("expected a single live operation in slot 0, got %v", live)
	}
	if len(bd.Signatures) != bd.Inputs.M[0] {
		return fmt.Errorf("%d signatures for %d signers", len(bd.Signatures), bd.Inputs.M[0])
	}
	return nil
}
