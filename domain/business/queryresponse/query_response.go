package queryresponse

import (
	"encoding/json"

	"bikeshare/domain/entities"
)

// QueryResponse contains the response of a query, as published to the consumers
// + Metadata: city, type and criteria of the query
// + QueryID: unique identifier of the query
// + Report: statistics report, already encoded
// + Failures: reason of each statistic family that could not be computed, keyed by family
type QueryResponse struct {
	Metadata entities.Metadata `json:"metadata"`
	QueryID  string            `json:"query_id"`
	Report   json.RawMessage   `json:"report"`
	Failures map[string]string `json:"failures,omitempty"`
}

func NewQueryResponse(queryID string, metadata entities.Metadata, report json.RawMessage, failures map[string]string) *QueryResponse {
	return &QueryResponse{
		Metadata: metadata,
		QueryID:  queryID,
		Report:   report,
		Failures: failures,
	}
}

func (qr *QueryResponse) GetMetadata() entities.Metadata {
	return qr.Metadata
}

func (qr *QueryResponse) GetQueryID() string {
	return qr.QueryID
}

// HasFailures returns true if at least one statistic family could not be computed
func (qr *QueryResponse) HasFailures() bool {
	return len(qr.Failures) > 0
}
