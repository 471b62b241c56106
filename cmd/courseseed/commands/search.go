package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"courseplan-backend/lib/scrapers/timetable"
	"courseplan-backend/lib/serviceutil"
	"courseplan-backend/services/courses"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchEnrich *bool

func init() {
	searchEnrich = searchCmd.Flags().Bool("enrich", true, "Fetch prerequisites/descriptions/comments.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <course id>",
	Short: "Searches one course and prints its sections and normalized record.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, _ := createService()

		res, err := service.SearchCourseID(cmd.Context(), *year, *semesterName, args[0], *searchEnrich)
		if err != nil {
			serviceutil.Fatal("search failed", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"CRN", "Kind", "Modality", "Credits", "Capacity", "Instructor", "Schedule"})
		for _, s := range res.Sections {
			t.AppendRow(table.Row{
				s.CRN, s.Kind, s.Modality, s.CreditHours,
				s.Capacity, s.Instructor, formatSchedule(s.Schedule),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		record := courses.RecordFromSearch(res, nil)
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			serviceutil.Fatal("failed to encode record", err)
		}
		fmt.Println(string(data))
	},
}

func formatSchedule(schedule timetable.Schedule) string {
	var lines []string
	for _, day := range schedule.Days() {
		for _, m := range schedule.Meetings(day) {
			lines = append(lines, fmt.Sprintf("%s %s-%s %s", day, m.Start, m.End, m.Location))
		}
	}
	return strings.Join(lines, "\n")
}
