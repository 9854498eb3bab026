package model

import (
	"encoding/json"
	"time"
)

// Entry is one stored record of a resource's append-only log.
// Bodies are kept as raw JSON objects; the server does not interpret them.
type Entry struct {
	ResourceUID string          `json:"resourceUid"`
	EntryUID    string          `json:"entryUid"`
	Sequence    int64           `json:"sequence"` // strictly increasing per resource, starts at 1
	Timestamp   time.Time       `json:"timestamp"`
	PublicBody  json.RawMessage `json:"publicBody"`
	PrivateBody json.RawMessage `json:"privateBody"`
}

// EntryMeta holds request metadata recorded alongside an entry
type EntryMeta struct {
	URL       string `json:"url,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// StoredEntry is an Entry together with its request metadata
type StoredEntry struct {
	Entry
	Meta EntryMeta `json:"meta"`
}

// ResourceSummary describes one resource known to the server
type ResourceSummary struct {
	ResourceUID  string    `json:"resourceUid"`
	Entries      int       `json:"entries"`
	LastSequence int64     `json:"lastSequence"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
