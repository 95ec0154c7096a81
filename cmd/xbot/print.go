package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ibeckermayer/xbot/internal/pacer"
	"github.com/ibeckermayer/xbot/internal/types"
)

func printProfiles(w io.Writer, profiles []types.Profile) error {
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(w, "no profiles")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tNAME\tFOLLOWERS\tREPLY\tSCRAPED")
	for _, p := range profiles {
		fmt.Fprintf(tw, "@%s\t%s\t%d\t%t\t%s\n", p.Username, p.Name, p.FollowersCount, p.Reply, p.ScrapedAt.Format(time.DateTime))
	}
	return tw.Flush()
}

func printSessions(w io.Writer, sessions []types.PacingSession) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "no pacing sessions")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTOPPED\tPLAN\tREST\tFOLLOWED")
	for _, s := range sessions {
		stopped := "running"
		if s.StoppedAt != nil {
			stopped = s.StoppedAt.Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%s by %d\t%s\t%d\n",
			s.StartedAt.Format(time.DateTime), stopped,
			s.TotalCount, s.Window, s.BatchSize, s.RestInterval, s.Followed)
	}
	return tw.Flush()
}

// printPlan writes the schedule a plan would produce without running it.
func printPlan(w io.Writer, plan pacer.Plan, minRest time.Duration) error {
	rest, err := pacer.ComputeRestInterval(plan, minRest)
	if err != nil {
		return err
	}
	batches := plan.Batches()
	active := plan.PerItem * time.Duration(plan.BatchSize)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "total\t%d per %s\n", plan.TotalCount, plan.Window)
	fmt.Fprintf(tw, "batches\t%d of %d\n", batches, plan.BatchSize)
	fmt.Fprintf(tw, "batch time\t%s\n", active)
	fmt.Fprintf(tw, "rest\t%s\n", rest)
	fmt.Fprintf(tw, "cycle\t%s\n", active+rest)
	return tw.Flush()
}
