package cmd

import (
	"fmt"

	"card-catalog/feature/status"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report cache storage, circuit breaker and search index state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fix, _ := cmd.Flags().GetBool("fix")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		a, err := loadApplication(ctx)
		if err != nil {
			return err
		}

		if fix && a.status.HasBucket() {
			if _, err := a.status.FixBucket(ctx); err != nil {
				return fmt.Errorf("failed to create cache bucket: %w", err)
			}
		}

		report := a.status.Report(ctx)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, report)
		}

		fmt.Fprintln(out, "=== Card Catalog Status ===")
		fmt.Fprintf(out, "Cache Backend: %s\n", report.CacheBackend)
		if report.Bucket != nil {
			fmt.Fprintf(out, "Bucket: %s (exists: %t)\n", report.Bucket.Bucket, report.Bucket.Exists)
			for _, family := range status.CachePrefixes {
				fmt.Fprintf(out, "  %s entries: %t\n", family, report.Bucket.Populated[family])
			}
		}
		if report.BucketError != "" {
			fmt.Fprintf(out, "Bucket Error: %s\n", report.BucketError)
		}
		if report.Search != nil {
			fmt.Fprintf(out, "Search Index: %s\n", report.Search.Status)
		} else {
			fmt.Fprintln(out, "Search Index: disabled")
		}
		fmt.Fprintf(out, "Circuit Breakers: %d\n", len(report.Breakers))
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("fix", false, "Create the cache bucket when missing")
	statusCmd.Flags().Bool("json", false, "Print the report as JSON")
	RootCmd.AddCommand(statusCmd)
}
