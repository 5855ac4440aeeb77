package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewZonesCommand lists the catalog.
func NewZonesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List the timezone catalog with both offsets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.Env()
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(env.Catalog))
			for id := range env.Catalog {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				e := env.Catalog[id]
				dst := "-"
				if e.ObservesDaylight() {
					dst = fmt.Sprintf("%+d", e.DaylightOffsetSeconds)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s std %+d  dst %s\n", id, e.StandardOffsetSeconds, dst)
			}
			return nil
		},
	}
	return cmd
}
