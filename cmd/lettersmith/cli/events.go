package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var eventType string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage time-scoped personal events",
	Run: func(cmd *cobra.Command, args []string) {
		listEvents()
	},
}

var eventsAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add an event, parsing dates from the description",
	Long: `Add parses a temporal expression from the description, for example
"starting my CS degree in September 2026" or "attending a bootcamp next
month", and stores the event with an initial status.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		store := getMemory()
		tm := getTemporal(store, cfg)

		ev := tm.NewEvent(strings.Join(args, " "), eventType)
		store.AddEvent(ev)
		if err := store.Save(); err != nil {
			fmt.Printf("Failed to save memory: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Added %s event (%s)\n", ev.Type, ev.Status)
		if ev.Start != nil {
			fmt.Printf("  %s — %s (precision: %s)\n",
				ev.Start.Format("2006-01-02"), ev.End.Format("2006-01-02"), ev.AutoUpdate.Precision)
		}
	},
}

var eventsSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Recompute event statuses against the current date",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		store := getMemory()
		tm := getTemporal(store, cfg)

		transitions := tm.Sweep()
		if len(transitions) == 0 {
			fmt.Println("All events up to date.")
			return
		}
		for _, tr := range transitions {
			fmt.Printf("%s: %s -> %s\n", tr.Description, tr.From, tr.To)
		}
		if err := store.Save(); err != nil {
			fmt.Printf("Failed to save memory: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsAddCmd)
	eventsCmd.AddCommand(eventsSweepCmd)
	eventsAddCmd.Flags().StringVarP(&eventType, "type", "t", "education", "Event type (education, employment, project, certification)")
}

func listEvents() {
	store := getMemory()
	events := store.Events()
	if len(events) == 0 {
		fmt.Println("No events in memory.")
		return
	}
	for _, ev := range events {
		dates := "no dates"
		if ev.Start != nil {
			dates = ev.Start.Format("2006-01-02")
			if ev.End != nil {
				dates += " — " + ev.End.Format("2006-01-02")
			}
		}
		fmt.Printf("[%-18s] %s (%s, %s)\n", ev.Status, ev.Description, ev.Type, dates)
	}
}
