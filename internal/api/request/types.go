package request

import "encoding/json"

// AddEntryRequest is the request body for appending an entry
type AddEntryRequest struct {
	PublicBody  json.RawMessage `json:"publicBody"`
	PrivateBody json.RawMessage `json:"privateBody"`
}
