package response

import (
	"encoding/json"
	"time"

	"github.com/gildedernacht/olymp/internal/model"
)

var emptyObject = json.RawMessage(`{}`)

// Status is the response for the health endpoint
type Status struct {
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}

// Entry represents a stored entry in API responses
type Entry struct {
	ResourceUID string          `json:"resourceUid"`
	EntryUID    string          `json:"entryUid"`
	Sequence    int64           `json:"sequence"`
	Timestamp   time.Time       `json:"timestamp"`
	PublicBody  json.RawMessage `json:"publicBody"`
	PrivateBody json.RawMessage `json:"privateBody"`
	URL         string          `json:"url"`
	UserAgent   string          `json:"userAgent"`
}

// EntryFromModel converts a stored entry.
// Private data and request metadata are only included for admins.
func EntryFromModel(e *model.StoredEntry, admin bool) Entry {
	out := Entry{
		ResourceUID: e.ResourceUID,
		EntryUID:    e.EntryUID,
		Sequence:    e.Sequence,
		Timestamp:   e.Timestamp,
		PublicBody:  e.PublicBody,
		PrivateBody: emptyObject,
	}
	if admin {
		out.PrivateBody = e.PrivateBody
		out.URL = e.Meta.URL
		out.UserAgent = e.Meta.UserAgent
	}
	return out
}

// EntriesFromModel converts a log, keeping its order
func EntriesFromModel(entries []model.StoredEntry, admin bool) []Entry {
	out := make([]Entry, len(entries))
	for i := range entries {
		out[i] = EntryFromModel(&entries[i], admin)
	}
	return out
}

// EntryCreated is the response for a successful append
type EntryCreated struct {
	EntryUID string `json:"entryUid"`
	Sequence int64  `json:"sequence"`
}

// Resource summarizes a resource
type Resource struct {
	ResourceUID  string    `json:"resourceUid"`
	Entries      int       `json:"entries"`
	LastSequence int64     `json:"lastSequence"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ResourcesFromModel converts resource summaries
func ResourcesFromModel(summaries []model.ResourceSummary) []Resource {
	out := make([]Resource, len(summaries))
	for i, s := range summaries {
		out[i] = Resource(s)
	}
	return out
}
