package cmd

import (
	"fmt"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Display the node event log",
	Long: `Display the node event log: device additions, starts and stops, Edge CLI
installs, requirement checks from watch, and new earnings.`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

var (
	eventsJSON  bool
	eventsLimit int
	eventsClear bool
)

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "jsonl", false, "Output events as JSON lines")
	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "n", 0, "Show only the newest n events")
	eventsCmd.Flags().BoolVar(&eventsClear, "clear", false, "Delete the event log")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	log := auditLog()

	if eventsClear {
		if err := log.Clear(); err != nil {
			return fmt.Errorf("failed to clear event log: %w", err)
		}
		logSuccess("Event log cleared")
		return nil
	}

	events, err := log.Events(eventsLimit)
	if err != nil {
		return fmt.Errorf("failed to read event log: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events recorded")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if eventsJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}

		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		node := e.Node
		if node == "" {
			node = "-"
		}
		if e.Details != "" {
			fmt.Fprintf(out, "[%s] %-8s %s (%s)\n", ts, e.Type, node, e.Details)
		} else {
			fmt.Fprintf(out, "[%s] %-8s %s\n", ts, e.Type, node)
		}
	}

	return nil
}
