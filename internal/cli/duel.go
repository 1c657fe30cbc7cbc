package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DuelPlayer is one side of a CLI-driven duel
type DuelPlayer struct {
	WalletID     string
	ResourceUsed float64
	Duration     float64
}

// RunDuel pairs two wallets through matchmaking, submits both results, and returns the outcome.
// It fails if the wallets are not matched into the same room.
func RunDuel(c *Client, p1, p2 DuelPlayer) (*DuelResult, error) {
	first, err := c.Join(p1.WalletID)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", p1.WalletID, err)
	}
	second, err := c.Join(p2.WalletID)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", p2.WalletID, err)
	}
	if second.RoomID != first.RoomID {
		return nil, fmt.Errorf("wallets were placed in different rooms (%s, %s); another player may be waiting",
			first.RoomID, second.RoomID)
	}

	if _, err := c.Submit(first.RoomID, p1.WalletID, p1.ResourceUsed, p1.Duration); err != nil {
		return nil, fmt.Errorf("submit %s: %w", p1.WalletID, err)
	}
	result, err := c.Submit(first.RoomID, p2.WalletID, p2.ResourceUsed, p2.Duration)
	if err != nil {
		return nil, fmt.Errorf("submit %s: %w", p2.WalletID, err)
	}

	return &DuelResult{
		RoomID:  first.RoomID,
		Player1: p1.WalletID,
		Player2: p2.WalletID,
		Result:  result,
	}, nil
}

func newDuelCmd() *cobra.Command {
	var p1, p2 DuelPlayer

	cmd := &cobra.Command{
		Use:   "duel",
		Short: "Play a complete match between two wallets",
		Long: `duel enters two wallets into matchmaking one after the other, submits
metrics for both, and prints the arbitrated outcome.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := RunDuel(client, p1, p2)
			if err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&p1.WalletID, "wallet1", "duelist-1", "First wallet id")
	cmd.Flags().Float64Var(&p1.ResourceUsed, "resource1", 100, "First wallet resource used")
	cmd.Flags().Float64Var(&p1.Duration, "duration1", 10, "First wallet duration in seconds")
	cmd.Flags().StringVar(&p2.WalletID, "wallet2", "duelist-2", "Second wallet id")
	cmd.Flags().Float64Var(&p2.ResourceUsed, "resource2", 200, "Second wallet resource used")
	cmd.Flags().Float64Var(&p2.Duration, "duration2", 20, "Second wallet duration in seconds")

	return cmd
}
