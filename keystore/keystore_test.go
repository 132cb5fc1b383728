package keystore

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/zk-multisig/types"
)

func TestGenerateRoster(t *testing.T) {
	c := qt.New(t)
	roster, err := GenerateRoster(5)
	c.Assert(err, qt.IsNil)
	c.Assert(roster.Len(), qt.Equals, 5)

	for i, rec := range roster.Records() {
		derived := NewKeyRecord(rec.PrivateKey)
		c.Assert(samePoint(derived.PublicKey, rec.PublicKey), qt.IsTrue, qt.Commentf("signer %d", i))
		c.Assert(derived.PackedPublicKey, qt.Equals, rec.PackedPublicKey)
		c.Assert(rec.PublicKeyBytes(), qt.HasLen, 64)
	}

	sliced, err := roster.Slice(3)
	c.Assert(err, qt.IsNil)
	c.Assert(sliced.Len(), qt.Equals, 3)
	_, err = roster.Slice(6)
	c.Assert(err, qt.ErrorIs, types.ErrMalformedDocument)

	_, err = roster.Record(5)
	c.Assert(err, qt.IsNotNil)
	_, err = GenerateRoster(0)
	c.Assert(err, qt.IsNotNil)
}

func TestRosterDocument(t *testing.T) {
	c := qt.New(t)
	roster, err := GenerateRoster(3)
	c.Assert(err, qt.IsNil)

	buf := &bytes.Buffer{}
	c.Assert(roster.WriteRoster(buf), qt.IsNil)

	var docs []map[string]string
	c.Assert(json.Unmarshal(buf.Bytes(), &docs), qt.IsNil)
	c.Assert(docs, qt.HasLen, 3)
	for _, doc := range docs {
		c.Assert(doc["privateKey"], qt.HasLen, 64)
		c.Assert(doc["publicKey"], qt.HasLen, 128)
		c.Assert(doc["packedPublicKey"], qt.HasLen, 64)
	}

	decoded, err := ReadRoster(bytes.NewReader(buf.Bytes()))
	c.Assert(err, qt.IsNil)
	c.Assert(decoded.Len(), qt.Equals, roster.Len())
	for i, rec := range decoded.Records() {
		c.Assert(rec.PrivateKey, qt.Equals, roster.records[i].PrivateKey)
		c.Assert(rec.PackedPublicKey, qt.Equals, roster.records[i].PackedPublicKey)
	}
}

func TestRosterDocumentMalformed(t *testing.T) {
	c := qt.New(t)
	roster, err := GenerateRoster(2)
	c.Assert(err, qt.IsNil)
	data, err := json.Marshal(roster)
	c.Assert(err, qt.IsNil)

	other, err := GenerateRoster(1)
	c.Assert(err, qt.IsNil)
	otherPacked := hex.EncodeToString(other.records[0].PackedPublicKey[:])
	otherPub := hex.EncodeToString(other.records[0].PublicKeyBytes())

	tamper := func(field, value string) string {
		var docs []map[string]string
		c.Assert(json.Unmarshal(data, &docs), qt.IsNil)
		docs[1][field] = value
		out, err := json.Marshal(docs)
		c.Assert(err, qt.IsNil)
		return string(out)
	}

	for _, tc := range []struct {
		doc    string
		reason string
	}{
		{tamper("privateKey", "zz"), "invalid private key hex"},
		{tamper("privateKey", "abcd"), "private key has 2 bytes"},
		{tamper("publicKey", otherPub), "public key does not match the private key"},
		{tamper("publicKey", otherPub[:64]), "public key has 32 bytes"},
		{tamper("packedPublicKey", otherPacked), "packed public key does not match the private key"},
	} {
		_, err := ReadRoster(strings.NewReader(tc.doc))
		c.Assert(err, qt.ErrorIs, types.ErrMalformedDocument)
		var docErr *types.MalformedDocumentError
		c.Assert(errors.As(err, &docErr), qt.IsTrue)
		c.Assert(docErr.Index, qt.Equals, 1)
		c.Assert(docErr.Reason, qt.Equals, tc.reason)
	}

	for _, doc := range []string{"{", "[{]", `{"privateKey":"00"}`, "", "[]"} {
		_, err = ReadRoster(strings.NewReader(doc))
		c.Assert(err, qt.ErrorIs, types.ErrMalformedDocument, qt.Commentf("document %q", doc))
		var docErr *types.MalformedDocumentError
		c.Assert(errors.As(err, &docErr), qt.IsTrue)
		c.Assert(docErr.Index, qt.Equals, -1)
	}
}

func TestRosterRoot(t *testing.T) {
	c := qt.New(t)
	roster, err := GenerateRoster(5)
	c.Assert(err, qt.IsNil)

	root, err := roster.Root()
	c.Assert(err, qt.IsNil)
	again, err := roster.Root()
	c.Assert(err, qt.IsNil)
	c.Assert(again, qt.DeepEquals, root)

	reordered := NewRoster(roster.records[1], roster.records[0], roster.records[2], roster.records[3], roster.records[4])
	otherRoot, err := reordered.Root()
	c.Assert(err, qt.IsNil)
	c.Assert(otherRoot, qt.Not(qt.DeepEquals), root)

	for i, rec := range roster.Records() {
		siblings, err := roster.Proof(i)
		c.Assert(err, qt.IsNil)
		valid, err := VerifyProof(root, i, rec, siblings)
		c.Assert(err, qt.IsNil)
		c.Assert(valid, qt.IsTrue)
	}
	siblings, err := roster.Proof(0)
	c.Assert(err, qt.IsNil)
	valid, err := VerifyProof(root, 0, roster.records[1], siblings)
	c.Assert(err, qt.IsNil)
	c.Assert(valid, qt.IsFalse)
}

func TestPublicInfo(t *testing.T) {
	c := qt.New(t)
	roster, err := GenerateRoster(2)
	c.Assert(err, qt.IsNil)
	info := roster.PublicInfo()
	c.Assert(info, qt.HasLen, 2)
	c.Assert(info[1].Index, qt.Equals, 1)
	c.Assert([]byte(info[1].PackedPublicKey), qt.DeepEquals, roster.records[1].PackedPublicKey[:])
	c.Assert(info[1].X.MathBigInt().Cmp(roster.records[1].PublicKey.X), qt.Equals, 0)

	data, err := json.Marshal(info)
	c.Assert(err, qt.IsNil)
	c.Assert(strings.Contains(string(data), "privateKey"), qt.IsFalse)
}
