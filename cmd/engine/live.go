package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"jobboard-engine/internal/api"
	"jobboard-engine/internal/live"

	"github.com/spf13/cobra"
)

var liveJSON bool

var liveCmd = &cobra.Command{
	Use:       "live [trending|search|external]",
	Short:     "Show one live jobs board",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(api.KindTrending), string(api.KindSearch), string(api.KindExternal)},
	RunE:      runLive,
}

func init() {
	liveCmd.Flags().BoolVar(&liveJSON, "json", false, "Print the board snapshot as JSON")
	rootCmd.AddCommand(liveCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.sync()

	name := rt.cfg.Live.Kind
	if len(args) == 1 {
		name = args[0]
	}
	kind, err := api.ParseLiveKind(name)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	board := live.New(rt.client(), live.WithLogger(rt.log.Named("live")))
	snap, err := board.Load(ctx, kind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if liveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCOMPANY\tLOCATION\tSOURCE\tPOSTED\tURL")
	for _, it := range snap.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", it.Title, it.Company, it.Location, it.Source, it.PostedAgo, it.URL)
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "\n%s: %d jobs\n", snap.Kind, len(snap.Items))
	return nil
}
