package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arbo/memdb"
	"github.com/vocdoni/zk-multisig/storage"
	"github.com/vocdoni/zk-multisig/types"
)

func testAPI(c *qt.C) *API {
	stg := storage.New(memdb.New())
	c.Cleanup(stg.Close)
	a, err := NewHandler(&APIConfig{Storage: stg})
	c.Assert(err, qt.IsNil)
	return a
}

func doRequest(c *qt.C, a *API, method, endpoint string, body any) (*httptest.ResponseRecorder, []byte) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		c.Assert(err, qt.IsNil)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, endpoint, reader)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec, rec.Body.Bytes()
}

func errorCode(c *qt.C, data []byte) int {
	var apiErr struct {
		Code int `json:"code"`
	}
	c.Assert(json.Unmarshal(data, &apiErr), qt.IsNil, qt.Commentf("body %s", data))
	return apiErr.Code
}

func TestPing(t *testing.T) {
	c := qt.New(t)
	rec, _ := doRequest(c, testAPI(c), http.MethodGet, PingEndpoint, nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
}

func TestRosterAndBatch(t *testing.T) {
	c := qt.New(t)
	a := testAPI(c)

	rec, data := doRequest(c, a, http.MethodPost, RostersEndpoint, &NewRoster{Size: 5})
	c.Assert(rec.Code, qt.Equals, http.StatusOK, qt.Commentf("%s", data))
	roster := &Roster{}
	c.Assert(json.Unmarshal(data, roster), qt.IsNil)
	c.Assert(roster.Signers, qt.HasLen, 5)
	c.Assert(strings.Contains(string(data), "privateKey"), qt.IsFalse)

	rec, data = doRequest(c, a, http.MethodGet,
		EndpointWithParam(RosterEndpoint, RosterURLParam, roster.RosterID.String()), nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	fetched := &Roster{}
	c.Assert(json.Unmarshal(data, fetched), qt.IsNil)
	c.Assert(fetched.Root, qt.DeepEquals, roster.Root)

	body := map[string]any{
		"rosterId":  roster.RosterID.String(),
		"amount":    "1000000000000000000",
		"token":     "0xdac17f958d2ee523a2206206994597c13d831ec7",
		"recipient": "0x5b38da6a701c568545dcfcb03fcb875f56beddc4",
		"threshold": 3,
		"mask":      []bool{true, true, true, false, false},
	}
	rec, data = doRequest(c, a, http.MethodPost, BatchesEndpoint, body)
	c.Assert(rec.Code, qt.Equals, http.StatusOK, qt.Commentf("%s", data))
	resp := &NewBatchResponse{}
	c.Assert(json.Unmarshal(data, resp), qt.IsNil)
	c.Assert(resp.Inputs.N[0], qt.Equals, 3)
	c.Assert(resp.Inputs.M[0], qt.Equals, 5)
	c.Assert(resp.Inputs.Validate(), qt.IsNil)

	rec, data = doRequest(c, a, http.MethodGet,
		EndpointWithParam(BatchEndpoint, BatchURLParam, resp.BatchID.String()), nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	batch := &Batch{}
	c.Assert(json.Unmarshal(data, batch), qt.IsNil)
	c.Assert(batch.Document.Signatures, qt.HasLen, 5)
	for _, sr := range batch.Document.Signatures {
		c.Assert(sr.Verify(), qt.IsTrue)
	}

	// assembly errors
	body["threshold"] = 6
	rec, data = doRequest(c, a, http.MethodPost, BatchesEndpoint, body)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(errorCode(c, data), qt.Equals, ErrInvalidBatchRequest.Code)

	body["threshold"] = 3
	body["amount"] = new(types.BigInt).SetBytes(bytes.Repeat([]byte{0xff}, 33)).String()
	rec, data = doRequest(c, a, http.MethodPost, BatchesEndpoint, body)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(errorCode(c, data), qt.Equals, ErrValueOutOfRange.Code)
}

func TestRosterOverflow(t *testing.T) {
	c := qt.New(t)
	a := testAPI(c)
	rec, data := doRequest(c, a, http.MethodPost, RostersEndpoint, &NewRoster{Size: 7})
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	roster := &Roster{}
	c.Assert(json.Unmarshal(data, roster), qt.IsNil)

	rec, data = doRequest(c, a, http.MethodPost, BatchesEndpoint, map[string]any{
		"rosterId":  roster.RosterID.String(),
		"amount":    "1",
		"token":     "0xdac17f958d2ee523a2206206994597c13d831ec7",
		"recipient": "0x5b38da6a701c568545dcfcb03fcb875f56beddc4",
		"threshold": 1,
		"mask":      []bool{true, true, true, true, true, true, true},
	})
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(errorCode(c, data), qt.Equals, ErrRosterOverflow.Code)
}

func TestRequestErrors(t *testing.T) {
	c := qt.New(t)
	a := testAPI(c)

	for _, tc := range []struct {
		method   string
		endpoint string
		body     any
		status   int
		code     int
	}{
		{http.MethodPost, RostersEndpoint, &NewRoster{Size: 0}, http.StatusBadRequest, ErrInvalidRosterSize.Code},
		{http.MethodPost, RostersEndpoint, map[string]any{"size": 3, "seed": "x"}, http.StatusBadRequest, ErrMalformedBody.Code},
		{http.MethodGet, "/rosters/not-a-uuid", nil, http.StatusBadRequest, ErrMalformedRosterID.Code},
		{http.MethodGet, "/rosters/4f2a1c3e-8b5d-4e6f-9a7b-1c2d3e4f5a6b", nil, http.StatusNotFound, ErrRosterNotFound.Code},
		{http.MethodGet, "/batches/zz", nil, http.StatusBadRequest, ErrMalformedBatchID.Code},
		{http.MethodGet, "/batches/0102", nil, http.StatusNotFound, ErrBatchNotFound.Code},
		{http.MethodGet, "/gas/51", nil, http.StatusBadRequest, ErrInvalidOperations.Code},
		{http.MethodGet, "/unknown", nil, http.StatusNotFound, ErrResourceNotFound.Code},
	} {
		rec, data := doRequest(c, a, tc.method, tc.endpoint, tc.body)
		c.Assert(rec.Code, qt.Equals, tc.status, qt.Commentf("%s %s", tc.method, tc.endpoint))
		c.Assert(errorCode(c, data), qt.Equals, tc.code)
	}

	rec, _ := doRequest(c, a, http.MethodPost, BatchesEndpoint, "not an object")
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
}

func TestGas(t *testing.T) {
	c := qt.New(t)
	rec, data := doRequest(c, testAPI(c), http.MethodGet, "/gas/10", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var estimation map[string]any
	c.Assert(json.Unmarshal(data, &estimation), qt.IsNil)
	c.Assert(estimation["perTransfer"], qt.Equals, 51045.5)
}
