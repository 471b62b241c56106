package commands

import (
	"fmt"
	"os"

	"courseplan-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(subjectsCmd)
}

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Prints the terms the timetable currently accepts searches for.",
	Run: func(cmd *cobra.Command, args []string) {
		_, tt := createService()

		terms, err := tt.Terms(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list terms", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Semester", "Year"})
		for _, term := range terms {
			t.AppendRow(table.Row{term.Semester, fmt.Sprint(term.Year)})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Prints the searchable subject codes.",
	Run: func(cmd *cobra.Command, args []string) {
		_, tt := createService()

		subjects, err := tt.Subjects(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list subjects", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Code", "Name"})
		for _, s := range subjects {
			t.AppendRow(table.Row{s.Code, s.Name})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
