package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/olymp"
	"github.com/gildedernacht/olymp/internal/registration"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *olymp.StatusPayload:
		o.printStatus(v)
	case HashResult:
		_, _ = fmt.Fprintln(o.w, v.Hash)
	case []model.Entry:
		o.printEntries(v)
	case []model.CapacityReport:
		o.printReports(v)
	case *registration.Receipt:
		o.printReceipt(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HashResult is the output of the hash commands
type HashResult struct {
	Hash string `json:"hash"`
}

func (o *Output) printStatus(s *olymp.StatusPayload) {
	_, _ = fmt.Fprintf(o.w, "Version: %s\n", s.Version)
	_, _ = fmt.Fprintf(o.w, "Time: %s\n", s.Time.Format(time.RFC3339))
}

func (o *Output) printEntries(entries []model.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(o.w, "No entries")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SEQ\tTIME\tENTRY\tPUBLIC\tPRIVATE")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.Sequence, e.Timestamp.Format(time.RFC3339), e.EntryUID[:min(12, len(e.EntryUID))],
			string(e.PublicBody), string(e.PrivateBody))
	}
	_ = tw.Flush()
}

func (o *Output) printReports(reports []model.CapacityReport) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ROUND\tGAME\tDAY\tTIME\tSEATS")
	for _, r := range reports {
		seats := fmt.Sprintf("%d/%d", r.PlayersCurrent, r.PlayersMax)
		if r.Full() {
			seats += " full"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d-%d\t%s\n", r.RoundID, r.GameName, r.Day, r.From, r.To, seats)
	}
	_ = tw.Flush()
}

func (o *Output) printReceipt(r *registration.Receipt) {
	if r.Repeat {
		_, _ = fmt.Fprintf(o.w, "Registration for %s updated\n", r.RoundID)
	} else {
		_, _ = fmt.Fprintf(o.w, "Registered for %s\n", r.RoundID)
	}
	_, _ = fmt.Fprintf(o.w, "User: %s\n", r.UserID)
}
