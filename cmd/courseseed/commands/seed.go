package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"courseplan-backend/lib/configutil"
	"courseplan-backend/lib/scrapers/timetable"
	"courseplan-backend/lib/serviceutil"
	"courseplan-backend/services/courses"

	"github.com/spf13/cobra"
)

// Config drives a seeding run. Courses lists the identifiers to query;
// Extra holds hand-maintained records appended verbatim for courses the
// timetable does not expose.
type Config struct {
	Courses []string         `json:"courses"`
	Extra   []courses.Record `json:"extra"`
}

var (
	seedOut     *string
	seedSubject *string
	seedEnrich  *bool
)

func init() {
	seedOut = seedCmd.Flags().String("out", "courses.json", "The file to write the record list to.")
	seedSubject = seedCmd.Flags().String("subject", "", "Seed every course found under a subject code instead of the configured list.")
	seedEnrich = seedCmd.Flags().Bool("enrich", true, "Fetch prerequisites/descriptions/comments per course.")
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed [--subject <code>] [--out <path/to/courses.json>]",
	Short: "Builds normalized course records and writes them to a JSON file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("courseseed.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}

		service, tt := createService()
		ctx := cmd.Context()

		ids := cfg.Courses
		if *seedSubject != "" {
			ids, err = discoverCourseIDs(ctx, tt, *seedSubject)
			if err != nil {
				serviceutil.Fatal("failed to list subject courses", err)
			}
		}
		if len(ids) == 0 {
			slog.Warn("nothing to seed; set courses in courseseed.json5 or pass --subject")
		}

		t1 := time.Now()
		records := service.BuildRecords(ctx, *year, *semesterName, ids, *seedEnrich)
		records = append(records, cfg.Extra...)
		slog.Info("seeding time",
			"courses", len(ids),
			"records", len(records),
			"seconds", time.Since(t1).Seconds())

		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			serviceutil.Fatal("failed to encode records", err)
		}
		err = os.WriteFile(*seedOut, data, 0644)
		if err != nil {
			serviceutil.Fatal("failed to write output", err)
		}
		slog.Info("wrote records", "path", *seedOut)
	},
}

// discoverCourseIDs runs one unfiltered subject search and collects the
// distinct course identifiers out of the returned sections.
func discoverCourseIDs(ctx context.Context, tt *timetable.Client, subject string) ([]string, error) {
	semester, err := timetable.ParseSemester(*semesterName)
	if err != nil {
		return nil, err
	}
	page, err := tt.Search(ctx, timetable.SearchQuery{
		Year:     *year,
		Semester: semester,
		Subject:  subject,
	})
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := map[string]bool{}
	for _, section := range page.Sections {
		id := section.CourseID()
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
