package commands

import (
	"context"
	"fmt"
	"os"

	"courseplan-backend/lib/restyutil"
	"courseplan-backend/lib/scrapers/banner"
	"courseplan-backend/lib/scrapers/catalog"
	"courseplan-backend/lib/scrapers/timetable"
	"courseplan-backend/lib/serviceutil"
	"courseplan-backend/services/courses"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "courseseed",
	Short: "courseseed queries the university timetable and builds normalized course records.",
}

var (
	year         *int
	semesterName *string
)

func init() {
	year = rootCmd.PersistentFlags().Int("year", 2026, "The academic calendar year to query.")
	semesterName = rootCmd.PersistentFlags().String("semester", "Spring", "The semester to query: Spring, Summer, Fall or Winter.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createService() (courses.Service, *timetable.Client) {
	timetable.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/timetable"))
	banner.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/banner"))
	catalog.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/catalog"))

	tt, err := timetable.NewClient(timetable.ClientOptions{})
	if err != nil {
		serviceutil.Fatal("failed to initialize timetable client", err)
	}
	bn, err := banner.NewClient(banner.ClientOptions{})
	if err != nil {
		serviceutil.Fatal("failed to initialize banner client", err)
	}
	cat := catalog.NewClient(catalog.ClientOptions{})

	return courses.NewService(tt, bn, cat), tt
}
