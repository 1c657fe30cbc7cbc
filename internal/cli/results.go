package cli

import (
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var resourceUsed, duration float64

	cmd := &cobra.Command{
		Use:   "submit <room-id> <wallet-id>",
		Short: "Submit match metrics for a wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.Submit(args[0], args[1], resourceUsed, duration)
			if err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&resourceUsed, "resource", 0, "Resource (mana/gas) used during the match")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Match duration in seconds")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}

func newResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <room-id>",
		Short: "Get the arbitrated result of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := client.Result(args[0])
			if err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(outcome)
			return nil
		},
	}
}
