package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"jobboard-engine/internal/domain"

	"github.com/spf13/cobra"
)

var jobsOpts struct {
	probe  bool
	asJSON bool
	page   int
	limit  int
	patch  struct {
		keyword, location, jobType, source string
		remote                             bool
	}
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Query the backend once",
	Long: `Fetch one page of jobs the way a feed view would: the random sample when
no filter is set, the filtered query otherwise. --probe only checks that the
backend answers.`,
	Args: cobra.NoArgs,
	RunE: runJobs,
}

func init() {
	f := jobsCmd.Flags()
	f.BoolVar(&jobsOpts.probe, "probe", false, "Call the random endpoint and report status and latency")
	f.BoolVar(&jobsOpts.asJSON, "json", false, "Print raw records as JSON")
	f.IntVar(&jobsOpts.page, "page", 1, "Page for filtered queries")
	f.IntVar(&jobsOpts.limit, "limit", 0, "Page size (default feed.page_size)")
	f.StringVar(&jobsOpts.patch.keyword, "keyword", "", "Keyword filter")
	f.StringVar(&jobsOpts.patch.location, "location", "", "Location filter")
	f.StringVar(&jobsOpts.patch.jobType, "type", domain.AllJobTypes, "Job type filter")
	f.StringVar(&jobsOpts.patch.source, "source", domain.AllSources, "Source filter")
	f.BoolVar(&jobsOpts.patch.remote, "remote", true, "Include remote jobs")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	client := rt.client()
	out := cmd.OutOrStdout()

	if jobsOpts.probe {
		start := time.Now()
		jobs, err := client.Random(ctx)
		dur := time.Since(start).Round(time.Millisecond)
		if err != nil {
			fmt.Fprintf(out, "FAIL %s (%s) after %s: %v\n", rt.baseURL, rt.baseSrc, dur, err)
			return err
		}
		fmt.Fprintf(out, "OK %s (%s) %d jobs in %s\n", rt.baseURL, rt.baseSrc, len(jobs), dur)
		return nil
	}

	f := domain.FilterState{
		Keyword:       jobsOpts.patch.keyword,
		Location:      jobsOpts.patch.location,
		JobType:       jobsOpts.patch.jobType,
		Source:        jobsOpts.patch.source,
		IncludeRemote: jobsOpts.patch.remote,
	}
	if err := f.Validate(); err != nil {
		return err
	}

	var (
		jobs []domain.JobRecord
		pg   domain.Pagination
	)
	if f.Mode() == domain.ModeFiltered {
		limit := jobsOpts.limit
		if limit <= 0 {
			limit = rt.cfg.PageSize()
		}
		res, err := client.Mixed(ctx, f, jobsOpts.page, limit)
		if err != nil {
			return err
		}
		jobs = res.Jobs
		pg = domain.Pagination{Page: jobsOpts.page, TotalPages: res.TotalPages, TotalJobs: res.TotalJobs}
	} else {
		jobs, err = client.Random(ctx)
		if err != nil {
			return err
		}
		pg = domain.SinglePage(len(jobs))
	}

	if jobsOpts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"mode": f.Mode(), "pagination": pg, "jobs": jobs})
	}
	printJobs(out, jobs, time.Now())
	fmt.Fprintf(out, "\n%s: page %d of %d, %d jobs\n", f.Mode(), pg.Page, pg.TotalPages, pg.TotalJobs)
	return nil
}

func printJobs(w io.Writer, jobs []domain.JobRecord, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCOMPANY\tLOCATION\tTYPE\tSALARY\tPOSTED")
	for _, j := range jobs {
		posted := ""
		if t, err := time.Parse(time.RFC3339, j.CreatedAt); err == nil {
			posted = domain.PostedAgo(t, now)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			j.Title, j.CompanyName(), j.Location, j.JobType, j.Salary.String(), posted)
	}
	_ = tw.Flush()
}
