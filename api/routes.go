package api

import "strings"

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// RostersEndpoint is the endpoint for generating a new signer roster
	RostersEndpoint = "/rosters"
	// RosterEndpoint is the endpoint to get the public info of a roster
	RosterURLParam = "rosterId"
	RosterEndpoint = RostersEndpoint + "/{" + RosterURLParam + "}"
	// BatchesEndpoint is the endpoint for assembling a new batch
	BatchesEndpoint = "/batches"
	// BatchEndpoint is the endpoint to get a stored batch document
	BatchURLParam = "batchId"
	BatchEndpoint = BatchesEndpoint + "/{" + BatchURLParam + "}"
	// GasEndpoint is the endpoint to estimate the gas of a batch of n
	// operations
	GasURLParam = "operations"
	GasEndpoint = "/gas/{" + GasURLParam + "}"
)

// EndpointWithParam replaces the URL param placeholder of the endpoint with
// the value provided.
func EndpointWithParam(endpoint, param, value string) string {
	return strings.Replace(endpoint, "{"+param+"}", value, 1)
}
