package circuits

import "github.com/vocdoni/zk-multisig/types"

// used across different circuits
const (
	SerializedFieldSize = 32 // bytes
	MessageBits         = types.MessageBytes * 8
	PointBits           = SerializedFieldSize * 8
)
