package registration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gildedernacht/olymp/internal/identity"
	"github.com/gildedernacht/olymp/internal/model"
)

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// entryFor builds a raw registration entry the way the server would store it
func entryFor(seq int64, round model.RoundID, email string, status model.RegistrationStatus) model.Entry {
	public, _ := json.Marshal(model.RegistrationPublic{
		RoundID: round,
		UserID:  identity.Hash(email),
		Status:  status,
	})
	private, _ := json.Marshal(model.RegistrationPrivate{Name: email, Email: email})
	return model.Entry{
		EntryUID:    identity.Hash(fmt.Sprintf("entry-%d", seq)),
		Sequence:    seq,
		Timestamp:   baseTime.Add(time.Duration(seq) * time.Minute),
		PublicBody:  public,
		PrivateBody: private,
	}
}

// fakeClient is an in-memory entry log with call counters
type fakeClient struct {
	mu       sync.Mutex
	entries  []model.Entry
	adds     int
	lists    int
	addErr   error
	listErr  error
	lastUID  string
	lastBody model.RegistrationPublic
}

func (f *fakeClient) AddEntry(ctx context.Context, resourceUID string, publicBody, privateBody any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.adds++
	f.lastUID = resourceUID
	if f.addErr != nil {
		return f.addErr
	}

	pub, err := json.Marshal(publicBody)
	if err != nil {
		return err
	}
	priv, err := json.Marshal(privateBody)
	if err != nil {
		return err
	}
	_ = json.Unmarshal(pub, &f.lastBody)

	seq := int64(len(f.entries) + 1)
	f.entries = append(f.entries, model.Entry{
		ResourceUID: resourceUID,
		EntryUID:    identity.Hash(fmt.Sprintf("entry-%d", seq)),
		Sequence:    seq,
		Timestamp:   baseTime.Add(time.Duration(seq) * time.Minute),
		PublicBody:  pub,
		PrivateBody: priv,
	})
	return nil
}

func (f *fakeClient) ListEntries(ctx context.Context, resourceUID string) ([]model.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lists++
	f.lastUID = resourceUID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Entry(nil), f.entries...), nil
}
