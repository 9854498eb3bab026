package entries

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gildedernacht/olymp/internal/catalog"
	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/registration"
)

// Guard enforces round seat limits on the registration resource
type Guard struct {
	resourceUID string
	catalog     catalog.Store
	calculator  *registration.Calculator
}

// NewGuard creates a guard for one resource
func NewGuard(resourceUID string, store catalog.Store) *Guard {
	return &Guard{
		resourceUID: resourceUID,
		catalog:     store,
		calculator:  registration.NewCalculator(store),
	}
}

// Applies reports whether appends to the resource are checked
func (g *Guard) Applies(resourceUID string) bool {
	return resourceUID == g.resourceUID
}

// Check decides whether a registration may be appended to the current log.
// Withdrawals and repeat submissions of a seat holder always pass.
func (g *Guard) Check(ctx context.Context, public json.RawMessage, log []model.StoredEntry) error {
	var reg model.RegistrationPublic
	if err := json.Unmarshal(public, &reg); err != nil {
		return fmt.Errorf("%w: publicBody is not a registration: %v", model.ErrInvalidParameter, err)
	}
	if reg.RoundID == "" || reg.UserID == "" {
		return fmt.Errorf("%w: registration needs roundId and userId", model.ErrInvalidParameter)
	}
	if _, err := g.catalog.Round(ctx, reg.RoundID); err != nil {
		return err
	}
	if reg.Status == model.StatusWithdrawn {
		return nil
	}

	raw := make([]model.Entry, len(log))
	for i, e := range log {
		raw[i] = e.Entry
	}
	regs, _ := registration.Decode(raw)
	canonical := registration.Canonicalize(regs)

	if registration.Holds(canonical, reg.RoundID, reg.UserID) {
		return nil
	}

	report, err := g.calculator.Report(ctx, reg.RoundID, canonical)
	if err != nil {
		return err
	}
	if report.Full() {
		return fmt.Errorf("%w: %s (%d/%d)", model.ErrCapacityExceeded, reg.RoundID, report.PlayersCurrent, report.PlayersMax)
	}
	return nil
}
