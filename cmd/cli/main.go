package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"

	"advocate/adapters/excel"
	"advocate/app"
	"advocate/domain/dispute"
	"advocate/internal/agents"
	"advocate/internal/batch"
	"advocate/internal/config"
	"advocate/internal/container"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed demo_cases.yaml
var defaultDemoCases []byte

// demoCase is one entry of a demo cases file
type demoCase struct {
	Name      string            `yaml:"name"`
	Complaint dispute.Complaint `yaml:"complaint"`
}

type demoFile struct {
	Cases []demoCase `yaml:"cases"`
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "advocate-cli",
		Short:         "Universal Advocate CLI for routing, refund estimates and demand letters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRouteCmd(),
		newRefundCmd(),
		newDemoCmd(),
		newBatchCmd(),
	)
	return rootCmd
}

func newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route [issue]",
		Short: "Classify an issue description into a sector",
		Long: `Classify an issue description by keyword into HEALTH, TRAVEL, FINANCE or RETAIL.

Example: advocate-cli route "My flight was delayed by 5 hours."`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), dispute.RouteCase(args[0]))
			return nil
		},
	}
}

func newRefundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refund [amount] [sector]",
		Short: "Estimate the refund for an amount in a sector",
		Long: `Estimate the refund for a dispute amount under the sector's rules.

Example: advocate-cli refund 800 travel`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := dispute.ParseAmount(args[0])
			if err != nil {
				return err
			}
			sector, err := dispute.ParseSector(args[1])
			if err != nil {
				return err
			}
			refund := dispute.CalculateRefund(amount, sector)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", agents.FormatAmount(refund.Amount), refund.Note)
			return nil
		},
	}
}

func newDemoCmd() *cobra.Command {
	var casesPath string
	var apiKey string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in demo cases through the full pipeline",
		Long: `Run demo complaints through every agent and print the user reply and letter.

Cases are read from --cases, or the built-in Delta Airlines and Amazon cases.
Set LLM_PROVIDER=mock to run without an API key.

Example: LLM_PROVIDER=mock advocate-cli demo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := loadDemoCases(casesPath)
			if err != nil {
				return err
			}
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Close()
			return runDemo(cmd.Context(), cmd.OutOrStdout(), c.Advocate, cases, app.RunOptions{APIKey: apiKey})
		},
	}

	cmd.Flags().StringVar(&casesPath, "cases", "", "YAML file of demo cases")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the configured provider")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var inPath, outPath, apiKey string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every complaint in a spreadsheet through the pipeline",
		Long: `Read complaints from an xlsx or csv file and write a results workbook.

Required columns: company, amount, issue. Optional: user_name, user_email,
user_address, purchase_date, ref_number, payment_method.

Example: advocate-cli batch --in complaints.xlsx --out results.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := excel.ReadComplaints(inPath)
			if err != nil {
				return err
			}
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			runner := batch.NewRunner(c.Advocate, workers, app.RunOptions{APIKey: apiKey})
			results, err := runner.Run(cmd.Context(), rows)
			if err != nil {
				return err
			}
			summary := batch.Summarize(results)
			if err := excel.WriteResults(outPath, results, summary.Rows()); err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "Input xlsx or csv file")
	cmd.Flags().StringVar(&outPath, "out", "results.xlsx", "Output xlsx file")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the configured provider")
	cmd.Flags().IntVar(&workers, "workers", batch.DefaultWorkers, "Concurrent pipeline runs")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return container.New(cfg)
}

func loadDemoCases(path string) ([]demoCase, error) {
	data := defaultDemoCases
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read demo cases: %w", err)
		}
	}

	var file demoFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse demo cases: %w", err)
	}
	if len(file.Cases) == 0 {
		return nil, fmt.Errorf("no demo cases found")
	}
	return file.Cases, nil
}

func runDemo(ctx context.Context, out io.Writer, svc *app.AdvocateService, cases []demoCase, opts app.RunOptions) error {
	for _, dc := range cases {
		fmt.Fprintln(out, headerStyle.Render("--- Test Case: "+dc.Name+" ---"))

		result, err := svc.Run(ctx, dc.Complaint, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", dc.Name, err)
		}

		fmt.Fprintln(out, field("Sector", string(result.Sector)))
		fmt.Fprintln(out, field("Refund", agents.FormatAmount(result.Refund.Amount)+" ("+result.Refund.Note+")"))
		if result.Verification.Authentic {
			fmt.Fprintln(out, okStyle.Render("Source Verified"))
		} else {
			fmt.Fprintln(out, warnStyle.Render("Source Unverified"))
		}
		fmt.Fprintln(out, field("Policy", result.PolicyApplied.URL))
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("[USER REPLY]:"))
		fmt.Fprintln(out, result.UserReply)
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("[LEGAL LETTER]:"))
		fmt.Fprintln(out, result.Letter)
		fmt.Fprintln(out)
		fmt.Fprintln(out, rule())
		fmt.Fprintln(out)
	}
	return nil
}

func printSummary(out io.Writer, s batch.Summary, outPath string) {
	lines := []string{
		headerStyle.Render("Batch complete"),
		field("Complaints", strconv.Itoa(s.Count)),
		field("Succeeded", strconv.Itoa(s.Succeeded)),
		field("Failed", strconv.Itoa(s.Failed)),
		field("Total refund", agents.FormatAmount(s.TotalRefund)),
		field("Mean refund", agents.FormatAmount(s.MeanRefund)),
		field("Median refund", agents.FormatAmount(s.MedianRefund)),
		field("Results", outPath),
	}
	fmt.Fprintln(out, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}
