package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"abdesign/app"
	"abdesign/domain/abtest"
)

// RenderMarkdown produces a human-readable design report. It consumes only
// the scalar summaries of the analysis; raw distributions never enter the
// document.
func RenderMarkdown(r *app.DesignReport, sweep []app.SweepPoint) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Experiment Design Report\n\n")
	fmt.Fprintf(&b, "Analysis `%s`, generated %s.\n\n", r.AnalysisID, r.CreatedAt.Time().Format("2006-01-02 15:04:05 MST"))

	fmt.Fprintf(&b, "## Inputs\n\n")
	fmt.Fprintf(&b, "| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Trials per condition | %d |\n", r.Request.Trials)
	fmt.Fprintf(&b, "| Control rate | %.4f |\n", r.Request.ControlRate)
	fmt.Fprintf(&b, "| Treatment rate | %.4f |\n", r.Request.TreatmentRate)
	fmt.Fprintf(&b, "| Alpha | %.4f |\n", r.Request.Alpha)
	fmt.Fprintf(&b, "| Tails | %s |\n", r.Tails)
	fmt.Fprintf(&b, "| Replicates | %d |\n", r.Request.SimCount)
	fmt.Fprintf(&b, "| Seed | %d |\n\n", r.Request.Seed)

	fmt.Fprintf(&b, "## Results\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Rejection threshold | %.6f |\n", r.RejectionThreshold)
	fmt.Fprintf(&b, "| Empirical power | %.4f |\n", r.Power)
	fmt.Fprintf(&b, "| Empirical p-value of expected delta | %.4f |\n", r.EmpiricalPValue)
	if r.SampleSize.ControlSamples > 0 {
		fmt.Fprintf(&b, "| Required control samples (80%% power) | %d |\n", r.SampleSize.ControlSamples)
		fmt.Fprintf(&b, "| Required treatment samples (80%% power) | %d |\n", r.SampleSize.TreatmentSamples)
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "## Null distribution\n\n")
	writeSummaryTable(&b, r.NullSummary)

	fmt.Fprintf(&b, "## Alternative distribution\n\n")
	writeSummaryTable(&b, r.AlternativeSummary)

	if len(sweep) > 0 {
		fmt.Fprintf(&b, "## Power curve\n\n")
		fmt.Fprintf(&b, "| Trials | Threshold | Power |\n|---|---|---|\n")
		for _, p := range sweep {
			fmt.Fprintf(&b, "| %d | %.6f | %.4f |\n", p.Trials, p.RejectionThreshold, p.Power)
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}

func writeSummaryTable(b *strings.Builder, s abtest.DistributionSummary) {
	fmt.Fprintf(b, "| Statistic | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Mean | %.6f |\n", s.Mean)
	fmt.Fprintf(b, "| Std dev | %.6f |\n", s.StdDev)
	fmt.Fprintf(b, "| Min | %.6f |\n", s.Min)
	fmt.Fprintf(b, "| Max | %.6f |\n", s.Max)
	fmt.Fprintf(b, "| 95th percentile | %.6f |\n", s.Percentile95)
	fmt.Fprintf(b, "| 99th percentile | %.6f |\n", s.Percentile99)
	fmt.Fprintf(b, "| Replicates | %d |\n\n", s.Count)
}

// RenderHTML converts the markdown report to HTML for browser consumption
func RenderHTML(r *app.DesignReport, sweep []app.SweepPoint) []byte {
	md := RenderMarkdown(r, sweep)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
