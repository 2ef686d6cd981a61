package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"jobboard-engine/internal/imgload"

	"github.com/spf13/cobra"
)

var logoOpts struct {
	out      string
	fallback string
	label    string
	noProxy  bool
}

var logoCmd = &cobra.Command{
	Use:   "logo <url>",
	Short: "Load one logo the way the UI would and report what happened",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogo,
}

func init() {
	f := logoCmd.Flags()
	f.StringVarP(&logoOpts.out, "out", "o", "", "Write the image (or the drawn fallback) to this file")
	f.StringVar(&logoOpts.fallback, "fallback", string(imgload.StrategyIcon), "Fallback: icon, initial or placeholder")
	f.StringVar(&logoOpts.label, "text", "", "Label for the initial-letter fallback")
	f.BoolVar(&logoOpts.noProxy, "no-proxy", false, "Skip the proxy rewrite")
	rootCmd.AddCommand(logoCmd)
}

func runLogo(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	req := imgload.Request{
		URL:      args[0],
		Label:    logoOpts.label,
		Fallback: imgload.ParseStrategy(logoOpts.fallback),
		UseProxy: rt.cfg.Images.UseProxy && !logoOpts.noProxy,
	}
	res := rt.loader().Load(ctx, req)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "state:    %s\n", res.Phase)
	fmt.Fprintf(out, "attempts: %s\n", strings.Join(res.Attempts, " -> "))

	var (
		ct   string
		body []byte
	)
	if res.Phase == imgload.Loaded {
		ct, body = res.Image.ContentType, res.Image.Bytes
		fmt.Fprintf(out, "loaded:   %s (%s, %d bytes)\n", res.Address, ct, len(body))
	} else {
		eff := res.Fallback.Effective(req.Label)
		ct, body = imgload.RenderFallback(eff, req.Label, "")
		fmt.Fprintf(out, "fallback: %s\n", eff)
		if res.Err != nil {
			fmt.Fprintf(out, "error:    %v\n", res.Err)
		}
	}

	if logoOpts.out == "" {
		return nil
	}
	if err := os.WriteFile(logoOpts.out, body, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s (%s)\n", logoOpts.out, ct)
	return nil
}
