package keystore

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/iden3/go-iden3-crypto/babyjub"
	"github.com/vocdoni/zk-multisig/circuits"
	"github.com/vocdoni/zk-multisig/types"
	"github.com/vocdoni/zk-multisig/util"
)

// keyDocument is the JSON representation of a roster record.
type keyDocument struct {
	PrivateKey      string `json:"privateKey"`
	PublicKey       string `json:"publicKey"`
	PackedPublicKey string `json:"packedPublicKey"`
}

// MarshalJSON encodes the roster as an ordered list of key documents.
func (r *Roster) MarshalJSON() ([]byte, error) {
	docs := make([]keyDocument, len(r.records))
	for i, rec := range r.records {
		docs[i] = keyDocument{
			PrivateKey:      hex.EncodeToString(rec.PrivateKey[:]),
			PublicKey:       hex.EncodeToString(rec.PublicKeyBytes()),
			PackedPublicKey: hex.EncodeToString(rec.PackedPublicKey[:]),
		}
	}
	return json.Marshal(docs)
}

// UnmarshalJSON decodes and checks a roster document. Every record must hold
// a valid private key and the public keys derived from it.
func (r *Roster) UnmarshalJSON(data []byte) error {
	var docs []keyDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return &types.MalformedDocumentError{Index: -1, Reason: err.Error()}
	}
	if len(docs) > maxRosterSize {
		return &types.MalformedDocumentError{
			Index:  -1,
			Reason: fmt.Sprintf("%d records, maximum is %d", len(docs), maxRosterSize),
		}
	}
	records := make([]*KeyRecord, len(docs))
	for i, doc := range docs {
		rec, reason := decodeKeyDocument(doc)
		if reason != "" {
			return &types.MalformedDocumentError{Index: i, Reason: reason}
		}
		records[i] = rec
	}
	r.records = records
	return nil
}

func decodeKeyDocument(doc keyDocument) (*KeyRecord, string) {
	privBytes, err := hex.DecodeString(util.TrimHex(doc.PrivateKey))
	if err != nil {
		return nil, "invalid private key hex"
	}
	if len(privBytes) != circuits.SerializedFieldSize {
		return nil, fmt.Sprintf("private key has %d bytes", len(privBytes))
	}
	var priv babyjub.PrivateKey
	copy(priv[:], privBytes)
	rec := NewKeyRecord(priv)

	pubBytes, err := hex.DecodeString(util.TrimHex(doc.PublicKey))
	if err != nil {
		return nil, "invalid public key hex"
	}
	if len(pubBytes) != 2*circuits.SerializedFieldSize {
		return nil, fmt.Sprintf("public key has %d bytes", len(pubBytes))
	}
	if !samePoint(pointFromBytes(pubBytes), rec.PublicKey) {
		return nil, "public key does not match the private key"
	}

	packed, err := hex.DecodeString(util.TrimHex(doc.PackedPublicKey))
	if err != nil {
		return nil, "invalid packed public key hex"
	}
	if len(packed) != circuits.SerializedFieldSize {
		return nil, fmt.Sprintf("packed public key has %d bytes", len(packed))
	}
	var comp babyjub.PublicKeyComp
	copy(comp[:], packed)
	if comp != rec.PackedPublicKey {
		return nil, "packed public key does not match the private key"
	}
	return rec, ""
}

// ReadRoster reads a roster document.
func ReadRoster(rd io.Reader) (*Roster, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("could not read roster: %w", err)
	}
	r := &Roster{}
	if err := json.Unmarshal(data, r); err != nil {
		var docErr *types.MalformedDocumentError
		if errors.As(err, &docErr) {
			return nil, err
		}
		return nil, &types.MalformedDocumentError{Index: -1, Reason: err.Error()}
	}
	if r.Len() == 0 {
		return nil, &types.MalformedDocumentError{Index: -1, Reason: "empty roster"}
	}
	return r, nil
}

// WriteRoster writes the roster document, indented.
func (r *Roster) WriteRoster(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
