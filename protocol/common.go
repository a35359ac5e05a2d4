package protocol

import "encoding/json"

// Response is the envelope every API reply is wrapped in
type Response struct {
	Status     int    `json:"status"`
	ResultCode string `json:"resultCode,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Failed reports whether the envelope status describes an error. A missing
// status is treated as success, some endpoints omit it.
func (r Response) Failed() bool {
	return r.Status >= 400
}

// DataResponse is a Response carrying the raw data field
type DataResponse struct {
	Response
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	ResultCodeOK = "OK"
)

type EmptyRequest struct{}
