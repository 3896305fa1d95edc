// Package main implements labctl, the command-line client for the oscillab
// workbench. It submits experiment manifests and inspects stored snapshots.
//
// Usage:
//
//	labctl run -manifest examples/pendulum.yaml
//	labctl current
//	labctl snapshot -id <id>
//	labctl series -id <id> [-o series.csv]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/oscillab/oscillab/pkg/client"
	"github.com/oscillab/oscillab/pkg/experiment"
	"github.com/oscillab/oscillab/pkg/series"
	"github.com/oscillab/oscillab/pkg/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		runCmd(os.Args[2:])
	case "current":
		currentCmd(os.Args[2:])
	case "snapshot":
		snapshotCmd(os.Args[2:])
	case "series":
		seriesCmd(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `labctl - oscillab workbench client

Commands:
  run       Submit an experiment manifest and print its snapshot
  current   Print the snapshot of the most recent run
  snapshot  Print one snapshot by ID
  series    Export a run's series as CSV

Common flags:
  -addr      Workbench base URL (default http://localhost:8080, env WORKBENCH_ADDR)
  -timeout   Request timeout (default 30s)
  -json      Print snapshots as JSON instead of text`)
}

// commonFlags registers the flags every command shares.
func commonFlags(fs *flag.FlagSet) (addr *string, timeout *time.Duration, asJSON *bool) {
	addr = fs.String("addr", getEnv("WORKBENCH_ADDR", "http://localhost:8080"), "Workbench base URL")
	timeout = fs.Duration("timeout", 30*time.Second, "Request timeout")
	asJSON = fs.Bool("json", false, "Print snapshots as JSON")
	return addr, timeout, asJSON
}

func runCmd(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	addr, timeout, asJSON := commonFlags(fs)
	manifest := fs.String("manifest", "", "Path to an experiment manifest (required)")
	fs.Parse(args)

	if *manifest == "" {
		fatal("run: -manifest is required")
	}

	def, err := experiment.Load(*manifest)
	if err != nil {
		fatal("run: %v", err)
	}
	if err := def.Validate(); err != nil {
		fatal("run: invalid manifest: %v", err)
	}

	c := client.NewWorkbenchClientWithTimeout(*addr, *timeout)
	snapshot, err := c.Run(context.Background(), *def)
	if err != nil {
		fatal("run: %v", err)
	}

	printSnapshot(os.Stdout, snapshot, *asJSON)
}

func currentCmd(args []string) {
	fs := flag.NewFlagSet("current", flag.ExitOnError)
	addr, timeout, asJSON := commonFlags(fs)
	fs.Parse(args)

	c := client.NewWorkbenchClientWithTimeout(*addr, *timeout)
	snapshot, err := c.Current(context.Background())
	if err != nil {
		fatal("current: %v", err)
	}

	printSnapshot(os.Stdout, snapshot, *asJSON)
}

func snapshotCmd(args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	addr, timeout, asJSON := commonFlags(fs)
	id := fs.String("id", "", "Snapshot ID (required)")
	fs.Parse(args)

	if *id == "" {
		fatal("snapshot: -id is required")
	}

	c := client.NewWorkbenchClientWithTimeout(*addr, *timeout)
	snapshot, err := c.Snapshot(context.Background(), *id)
	if err != nil {
		fatal("snapshot: %v", err)
	}

	printSnapshot(os.Stdout, snapshot, *asJSON)
}

func seriesCmd(args []string) {
	fs := flag.NewFlagSet("series", flag.ExitOnError)
	addr, timeout, _ := commonFlags(fs)
	id := fs.String("id", "", "Snapshot ID (required)")
	output := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)

	if *id == "" {
		fatal("series: -id is required")
	}

	c := client.NewWorkbenchClientWithTimeout(*addr, *timeout)
	frame, err := c.SeriesCSV(context.Background(), *id)
	if err != nil {
		fatal("series: %v", err)
	}

	out := io.Writer(os.Stdout)
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			fatal("series: %v", err)
		}
		defer file.Close()
		out = file
	}

	if err := series.WriteCSV(out, frame); err != nil {
		fatal("series: %v", err)
	}

	if *output != "" {
		fmt.Fprintf(os.Stderr, "wrote %d rows to %s\n", frame.Len(), *output)
	}
}

// printSnapshot renders a snapshot as an indented JSON document or as a
// readable text block with one metrics row per model.
func printSnapshot(w io.Writer, snapshot *storage.Snapshot, asJSON bool) {
	if asJSON {
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			fatal("encode snapshot: %v", err)
		}
		fmt.Fprintln(w, string(data))
		return
	}

	fmt.Fprintf(w, "ID:        %s\n", snapshot.ID)
	fmt.Fprintf(w, "Name:      %s\n", snapshot.Name)
	fmt.Fprintf(w, "Generated: %s\n", snapshot.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Rows:      %d\n", snapshot.Rows)
	fmt.Fprintf(w, "Windows:   train=%d val=%d test=%d\n",
		snapshot.TrainWindows, snapshot.ValWindows, snapshot.TestWindows)
	fmt.Fprintf(w, "Series:    mean=%.6g std=%.6g min=%.6g max=%.6g\n",
		snapshot.Summary.Mean, snapshot.Summary.Std, snapshot.Summary.Min, snapshot.Summary.Max)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tWINDOWS\tMAE\tMSE\tRMSE\tMAPE\tSMAPE")
	for _, r := range snapshot.Reports {
		fmt.Fprintf(tw, "%s\t%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n",
			r.Model, r.Windows, r.MAE, r.MSE, r.RMSE, r.MAPE, r.SMAPE)
	}
	tw.Flush()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
