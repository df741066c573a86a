package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var recordsLimit int

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show past generation runs",
	Run: func(cmd *cobra.Command, args []string) {
		log := getRecords()
		defer log.Close()

		recs, err := log.Recent(recordsLimit)
		if err != nil {
			fmt.Printf("Failed to read records: %v\n", err)
			os.Exit(1)
		}
		if len(recs) == 0 {
			fmt.Println("No generation records yet.")
			return
		}
		for _, r := range recs {
			fmt.Printf("#%-4d %s  %-9s %-20s %s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Outcome, r.RoleType, r.Provider)
			if len(r.SkillsSelected) > 0 {
				fmt.Printf("      skills: %s\n", strings.Join(r.SkillsSelected, ", "))
			}
		}
	},
}

var recordsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize outcomes across all runs",
	Run: func(cmd *cobra.Command, args []string) {
		log := getRecords()
		defer log.Close()

		st, err := log.Stats()
		if err != nil {
			fmt.Printf("Failed to read records: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Total runs:  %d\n", st.Total)
		fmt.Printf("Accepted:    %d\n", st.Accepted)
		fmt.Printf("Revised:     %d\n", st.Revised)
		fmt.Printf("Rejected:    %d\n", st.Rejected)
		if st.Total > 0 {
			fmt.Printf("Accept rate: %.0f%%\n", st.AcceptRate()*100)
		}
	},
}

func init() {
	RootCmd.AddCommand(recordsCmd)
	recordsCmd.AddCommand(recordsStatsCmd)
	recordsCmd.Flags().IntVarP(&recordsLimit, "limit", "n", 20, "Number of records to show")
}
