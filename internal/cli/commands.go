package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gildedernacht/olymp/internal/identity"
	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/registration"
	"github.com/gildedernacht/olymp/internal/services/auth"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check server status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.olymp.Status(cmd.Context())
			if err != nil {
				return err
			}
			app.out.Print(status)
			return nil
		},
	}
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <contact>",
		Short: "Print the user id derived from a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.out.Print(HashResult{Hash: identity.Hash(args[0])})
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for OLYMP_ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			app.out.Print(HashResult{Hash: hash})
			return nil
		},
	}
}

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Raw entry log commands",
	}

	cmd.AddCommand(newEntriesListCmd())
	cmd.AddCommand(newEntriesAddCmd())

	return cmd
}

func newEntriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <resource-uid>",
		Short: "List the entries of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.olymp.ListEntries(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.out.Print(entries)
			return nil
		},
	}
}

func newEntriesAddCmd() *cobra.Command {
	var public, private string

	cmd := &cobra.Command{
		Use:   "add <resource-uid>",
		Short: "Append an entry to a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(public)) {
				return fmt.Errorf("--public is not valid JSON")
			}
			if !json.Valid([]byte(private)) {
				return fmt.Errorf("--private is not valid JSON")
			}

			err := app.olymp.AddEntry(cmd.Context(), args[0], json.RawMessage(public), json.RawMessage(private))
			if err != nil {
				return err
			}
			app.out.PrintMessage("Entry added")
			return nil
		},
	}

	cmd.Flags().StringVar(&public, "public", "{}", "Public body (JSON object)")
	cmd.Flags().StringVar(&private, "private", "{}", "Private body (JSON object)")

	return cmd
}

func newRoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rounds",
		Short: "Show the seat report of every round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.registration()
			if err != nil {
				return err
			}
			reports, err := svc.Reports(cmd.Context())
			if err != nil {
				return err
			}
			app.out.Print(reports)
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var sub registration.Submission
	var round string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a participant for a round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.registration()
			if err != nil {
				return err
			}
			sub.RoundID = model.RoundID(round)
			receipt, err := svc.Submit(cmd.Context(), sub)
			if err != nil {
				return err
			}
			app.out.Print(receipt)
			return nil
		},
	}

	cmd.Flags().StringVar(&round, "round", "", "Round id (required)")
	cmd.Flags().StringVar(&sub.Name, "name", "", "Participant name (required)")
	cmd.Flags().StringVar(&sub.Email, "email", "", "Participant email (required)")
	cmd.Flags().StringVar(&sub.Comment, "comment", "", "Comment for the game master")
	_ = cmd.MarkFlagRequired("round")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newWithdrawCmd() *cobra.Command {
	var round, email string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Release a participant's seat in a round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.registration()
			if err != nil {
				return err
			}
			if err := svc.Withdraw(cmd.Context(), model.RoundID(round), email); err != nil {
				return err
			}
			app.out.PrintMessage(fmt.Sprintf("Withdrawn from %s", round))
			return nil
		},
	}

	cmd.Flags().StringVar(&round, "round", "", "Round id (required)")
	cmd.Flags().StringVar(&email, "email", "", "Participant email (required)")
	_ = cmd.MarkFlagRequired("round")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
