package registration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gildedernacht/olymp/internal/catalog"
	"github.com/gildedernacht/olymp/internal/identity"
	"github.com/gildedernacht/olymp/internal/model"
)

// EntryClient is the part of the resource client the service needs
type EntryClient interface {
	AddEntry(ctx context.Context, resourceUID string, publicBody, privateBody any) error
	ListEntries(ctx context.Context, resourceUID string) ([]model.Entry, error)
}

// Submission is a participant's request for a seat
type Submission struct {
	RoundID model.RoundID
	Name    string
	Email   string
	Comment string
}

// Receipt describes an accepted submission
type Receipt struct {
	RoundID model.RoundID `json:"roundId"`
	UserID  string        `json:"userId"`
	// Repeat is true if the participant already held a seat in the round
	Repeat bool `json:"repeat"`
}

// Snapshot is the canonical state of the registration log at one point in time
type Snapshot struct {
	Canonical []model.CanonicalRegistration
	Skipped   int
}

// Service runs the registration flow against one registration resource.
// Capacity checks are advisory: the server decides whether a write is accepted.
type Service struct {
	client      EntryClient
	catalog     catalog.Store
	calculator  *Calculator
	resourceUID string
	logger      *slog.Logger
}

// NewService creates a new registration service
func NewService(client EntryClient, store catalog.Store, resourceUID string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		client:      client,
		catalog:     store,
		calculator:  NewCalculator(store),
		resourceUID: resourceUID,
		logger:      logger,
	}
}

// Snapshot lists the log and collapses it into canonical registrations
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	entries, err := s.client.ListEntries(ctx, s.resourceUID)
	if err != nil {
		return nil, err
	}

	regs, skipped := Decode(entries)
	for _, err := range skipped {
		s.logger.Warn("skipping entry", slog.String("error", err.Error()))
	}

	return &Snapshot{
		Canonical: Canonicalize(regs),
		Skipped:   len(skipped),
	}, nil
}

// Reports returns the current capacity of every round
func (s *Service) Reports(ctx context.Context) ([]model.CapacityReport, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.calculator.Reports(ctx, snap.Canonical)
}

// Submit validates a submission, checks capacity and appends the entry
func (s *Service) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.SubmitAgainst(ctx, snap, sub)
}

// SubmitAgainst is Submit with a snapshot the caller already holds.
// A full round is rejected with model.ErrCapacityExceeded before anything is sent.
func (s *Service) SubmitAgainst(ctx context.Context, snap *Snapshot, sub Submission) (*Receipt, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	report, err := s.calculator.Report(ctx, sub.RoundID, snap.Canonical)
	if err != nil {
		return nil, err
	}

	userID := identity.Hash(sub.Email)
	repeat := Holds(snap.Canonical, sub.RoundID, userID)

	// A repeat submission collapses into the seat already held
	if !repeat && report.Full() {
		return nil, fmt.Errorf("%w: %s (%d/%d)", model.ErrCapacityExceeded, sub.RoundID, report.PlayersCurrent, report.PlayersMax)
	}

	public := model.RegistrationPublic{
		RoundID: sub.RoundID,
		UserID:  userID,
		Status:  model.StatusRegistered,
	}
	private := model.RegistrationPrivate{
		Name:    sub.Name,
		Email:   sub.Email,
		Comment: sub.Comment,
	}

	if err := s.client.AddEntry(ctx, s.resourceUID, public, private); err != nil {
		return nil, err
	}

	s.logger.Info("registration submitted",
		slog.String("round_id", string(sub.RoundID)),
		slog.String("user_id", userID),
		slog.Bool("repeat", repeat),
	)

	return &Receipt{RoundID: sub.RoundID, UserID: userID, Repeat: repeat}, nil
}

// Withdraw appends an entry releasing the participant's seat in a round
func (s *Service) Withdraw(ctx context.Context, roundID model.RoundID, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", model.ErrInvalidParameter)
	}
	if _, err := s.catalog.Round(ctx, roundID); err != nil {
		return err
	}

	userID := identity.Hash(email)
	public := model.RegistrationPublic{
		RoundID: roundID,
		UserID:  userID,
		Status:  model.StatusWithdrawn,
	}
	private := model.RegistrationPrivate{Email: email}

	if err := s.client.AddEntry(ctx, s.resourceUID, public, private); err != nil {
		return err
	}

	s.logger.Info("registration withdrawn",
		slog.String("round_id", string(roundID)),
		slog.String("user_id", userID),
	)
	return nil
}

func validateSubmission(sub Submission) error {
	if sub.RoundID == "" {
		return fmt.Errorf("%w: round is required", model.ErrInvalidParameter)
	}
	if strings.TrimSpace(sub.Name) == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalidParameter)
	}
	if strings.TrimSpace(sub.Email) == "" {
		return fmt.Errorf("%w: email is required", model.ErrInvalidParameter)
	}
	return nil
}
