package client

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/vocdoni/zk-multisig/api"
	"github.com/vocdoni/zk-multisig/gas"
)

// call performs the request and decodes a 200 response into out. Any other
// status is returned as an api.Error when the body carries an error code, so
// callers can match it with errors.Is.
func (c *HTTPclient) call(method string, body, out any, urlPath string) error {
	data, status, err := c.Request(method, body, nil, urlPath)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		if apiErr, ok := api.ParseError(status, data); ok {
			return apiErr
		}
		return fmt.Errorf("%s: %d (%s)", errCodeNot200, status, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

// NewRoster asks the API to generate a roster of size signers.
func (c *HTTPclient) NewRoster(size int) (*api.Roster, error) {
	roster := &api.Roster{}
	if err := c.call(HTTPPOST, &api.NewRoster{Size: size}, roster, api.RostersEndpoint); err != nil {
		return nil, err
	}
	return roster, nil
}

// Roster returns the public info of a roster.
func (c *HTTPclient) Roster(id uuid.UUID) (*api.Roster, error) {
	roster := &api.Roster{}
	endpoint := api.EndpointWithParam(api.RosterEndpoint, api.RosterURLParam, id.String())
	if err := c.call(HTTPGET, nil, roster, endpoint); err != nil {
		return nil, err
	}
	return roster, nil
}

// NewBatch asks the API to assemble and store a batch.
func (c *HTTPclient) NewBatch(req *api.NewBatch) (*api.NewBatchResponse, error) {
	resp := &api.NewBatchResponse{}
	if err := c.call(HTTPPOST, req, resp, api.BatchesEndpoint); err != nil {
		return nil, err
	}
	return resp, nil
}

// Batch returns a stored batch document.
func (c *HTTPclient) Batch(id []byte) (*api.Batch, error) {
	batch := &api.Batch{}
	endpoint := api.EndpointWithParam(api.BatchEndpoint, api.BatchURLParam, hex.EncodeToString(id))
	if err := c.call(HTTPGET, nil, batch, endpoint); err != nil {
		return nil, err
	}
	return batch, nil
}

// Gas returns the gas estimation of a batch of n operations.
func (c *HTTPclient) Gas(n int) (*gas.Estimation, error) {
	estimation := &gas.Estimation{}
	endpoint := api.EndpointWithParam(api.GasEndpoint, api.GasURLParam, strconv.Itoa(n))
	if err := c.call(HTTPGET, nil, estimation, endpoint); err != nil {
		return nil, err
	}
	return estimation, nil
}
