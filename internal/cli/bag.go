package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/troynguyen8/tetris-sandbox/internal/bag"
)

func newBagCmd(app *App) *cobra.Command {
	var (
		seed  uint64
		count int
	)
	cmd := &cobra.Command{
		Use:   "bag",
		Short: "Print shuffled 7-piece bags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return writeErr(cmd, errUsage("--count must be at least 1"))
			}
			var r *rand.Rand
			if cmd.Flags().Changed("seed") {
				r = bag.Seeded(seed)
			}
			bags := make([][]string, 0, count)
			for i := 0; i < count; i++ {
				bags = append(bags, bag.New(r))
			}
			return writeOut(cmd, app, map[string]any{"bags": bags})
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a repeatable sequence")
	cmd.Flags().IntVar(&count, "count", 1, "Number of bags")
	return cmd
}
