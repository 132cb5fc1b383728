package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/vocdoni/zk-multisig/util"
)

// HexBytes is a []byte which encodes as hexadecimal in json, as opposed to
// the base64 default.
type HexBytes []byte

// String returns the hexadecimal representation of the bytes, prefixed with
// "0x".
func (b HexBytes) String() string {
	return "0x" + hex.EncodeToString(b)
}

// MarshalJSON implements the json.Marshaler interface.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

// UnmarshalJSON implements the json.Unmarshaler interface. The optional
// "0x" prefix is accepted.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(util.TrimHex(s))
	if err != nil {
		return fmt.Errorf("invalid hex bytes: %w", err)
	}
	*b = decoded
	return nil
}

// HexStringToHexBytes converts a hex string (with or without "0x") to
// HexBytes. It panics if the string is not valid hex, so it should only be
// used with constants.
func HexStringToHexBytes(s string) HexBytes {
	b, err := hex.DecodeString(util.TrimHex(s))
	if err != nil {
		panic(err)
	}
	return b
}
