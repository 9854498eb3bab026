package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// RegistrationStatus marks whether an entry claims or releases a seat
type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusWithdrawn  RegistrationStatus = "withdrawn"
)

// RegistrationPublic is the publicly readable part of a registration entry
type RegistrationPublic struct {
	RoundID RoundID            `json:"roundId"`
	UserID  string             `json:"userId"`
	Status  RegistrationStatus `json:"status,omitempty"`
}

// RegistrationPrivate is only returned to authenticated readers
type RegistrationPrivate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Comment string `json:"comment,omitempty"`
}

// Registration is a registration entry decoded from the raw log
type Registration struct {
	EntryUID  string
	Sequence  int64
	Timestamp time.Time
	Public    RegistrationPublic
	Private   RegistrationPrivate
}

// Withdrawn returns true if the entry releases the seat instead of claiming it
func (r *Registration) Withdrawn() bool {
	return r.Public.Status == StatusWithdrawn
}

// RegistrationFromEntry decodes the bodies of a raw entry
func RegistrationFromEntry(e Entry) (Registration, error) {
	reg := Registration{
		EntryUID:  e.EntryUID,
		Sequence:  e.Sequence,
		Timestamp: e.Timestamp,
	}
	if err := json.Unmarshal(e.PublicBody, &reg.Public); err != nil {
		return Registration{}, fmt.Errorf("entry %s: decode public body: %w", e.EntryUID, err)
	}
	if len(e.PrivateBody) > 0 {
		if err := json.Unmarshal(e.PrivateBody, &reg.Private); err != nil {
			return Registration{}, fmt.Errorf("entry %s: decode private body: %w", e.EntryUID, err)
		}
	}
	return reg, nil
}

// CanonicalRegistration is the current standing of one participant in one round
type CanonicalRegistration struct {
	Registration
}

// Active returns true if the participant currently holds a seat
func (c *CanonicalRegistration) Active() bool {
	return !c.Withdrawn()
}

// CapacityReport is the derived seat availability of one round
type CapacityReport struct {
	RoundID          RoundID `json:"roundId"`
	GameID           GameID  `json:"gameId"`
	GameName         string  `json:"gameName"`
	Day              string  `json:"day"`
	From             int     `json:"from"`
	To               int     `json:"to"`
	PlayersMax       int     `json:"playersMax"`
	PlayersCurrent   int     `json:"playersCurrent"`
	PlayersRemaining int     `json:"playersRemaining"`
}

// Full returns true if no seats remain
func (c *CapacityReport) Full() bool {
	return c.PlayersRemaining <= 0
}
