package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"abdesign/adapters/gonumdist"
	"abdesign/adapters/report"
	"abdesign/adapters/stats/design"
	"abdesign/adapters/stats/inference"
	"abdesign/adapters/stats/simulate"
	"abdesign/app"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "abdesign-cli",
		Short: "A/B test design and inference engine CLI",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSampleSizeCmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() *app.DesignService {
	sampler := simulate.NewSampler(gonumdist.NewBinomialSource())
	return app.NewDesignService(
		sampler,
		inference.NewNullBuilder(sampler),
		inference.NewPowerEstimator(sampler),
		design.NewCalculator(gonumdist.NewNormal()),
	)
}

func newAnalyzeCmd() *cobra.Command {
	req := app.AnalysisRequest{}
	var xlsxPath string
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Simulate a design: null distribution, threshold, power, p-value",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService()
			result, err := svc.AnalyzeDesign(context.Background(), req)
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				f, err := os.Create(xlsxPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteWorkbook(f, result, nil); err != nil {
					return err
				}
				fmt.Printf("workbook written to %s\n", xlsxPath)
				return nil
			}

			if asMarkdown {
				fmt.Print(report.RenderMarkdown(result, nil))
				return nil
			}

			return printJSON(result)
		},
	}

	cmd.Flags().IntVar(&req.Trials, "trials", 10000, "trials per condition")
	cmd.Flags().Float64Var(&req.ControlRate, "control-rate", 0.50, "assumed control conversion rate")
	cmd.Flags().Float64Var(&req.TreatmentRate, "treatment-rate", 0.51, "assumed treatment conversion rate")
	cmd.Flags().Float64Var(&req.Alpha, "alpha", 0.05, "significance level")
	cmd.Flags().IntVar(&req.SimCount, "sims", 100000, "simulation replicates")
	cmd.Flags().Int64Var(&req.Seed, "seed", 42, "base random seed")
	cmd.Flags().StringVar(&req.TailType, "tails", "two_tail", "tail convention (one_tail or two_tail)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the report as an xlsx workbook to this path")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "print the report as markdown")

	return cmd
}

func newSampleSizeCmd() *cobra.Command {
	req := design.Request{}

	cmd := &cobra.Command{
		Use:   "sample-size",
		Short: "Closed-form minimum sample size per condition",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService()
			result, err := svc.RequiredSamples(req)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().Float64Var(&req.Alpha, "alpha", 0.05, "significance level")
	cmd.Flags().Float64Var(&req.Power, "power", 0.80, "target statistical power")
	cmd.Flags().Float64Var(&req.ControlRate, "control-rate", 0.50, "assumed control conversion rate")
	cmd.Flags().Float64Var(&req.TreatmentRate, "treatment-rate", 0.51, "assumed treatment conversion rate")
	cmd.Flags().Float64Var(&req.AllocationRatio, "ratio", 1, "control:treatment allocation ratio")
	cmd.Flags().StringVar(&req.TailType, "tails", "two_tail", "tail convention (one_tail or two_tail)")

	return cmd
}

func newSweepCmd() *cobra.Command {
	req := app.SweepRequest{}
	var trialList string
	var workers int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Empirical power curve across trial counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := parseTrialCounts(trialList)
			if err != nil {
				return err
			}
			req.TrialCounts = counts

			svc := newService()
			points, err := svc.PowerSweep(context.Background(), req, workers)
			if err != nil {
				return err
			}
			return printJSON(points)
		},
	}

	cmd.Flags().StringVar(&trialList, "trials", "10000,20000,40000", "comma-separated trial counts")
	cmd.Flags().Float64Var(&req.ControlRate, "control-rate", 0.50, "assumed control conversion rate")
	cmd.Flags().Float64Var(&req.TreatmentRate, "treatment-rate", 0.51, "assumed treatment conversion rate")
	cmd.Flags().Float64Var(&req.Alpha, "alpha", 0.05, "significance level")
	cmd.Flags().IntVar(&req.SimCount, "sims", 50000, "simulation replicates per point")
	cmd.Flags().Int64Var(&req.Seed, "seed", 42, "base random seed")
	cmd.Flags().StringVar(&req.TailType, "tails", "two_tail", "tail convention (one_tail or two_tail)")
	cmd.Flags().IntVar(&workers, "workers", 4, "maximum concurrent sweep evaluations")

	return cmd
}

func parseTrialCounts(list string) ([]int, error) {
	parts := strings.Split(list, ",")
	counts := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trial count %q: %w", p, err)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
