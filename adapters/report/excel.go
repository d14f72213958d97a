package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"abdesign/app"
)

const (
	designSheet = "Design"
	sweepSheet  = "Power Curve"
)

// WriteWorkbook exports a design report (and optional power sweep) as an
// Excel workbook. Like the markdown renderer it receives only scalar
// summaries.
func WriteWorkbook(w io.Writer, r *app.DesignReport, sweep []app.SweepPoint) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", designSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Analysis ID", r.AnalysisID.String()},
		{"Trials per condition", r.Request.Trials},
		{"Control rate", r.Request.ControlRate},
		{"Treatment rate", r.Request.TreatmentRate},
		{"Alpha", r.Request.Alpha},
		{"Tails", string(r.Tails)},
		{"Replicates", r.Request.SimCount},
		{"Seed", r.Request.Seed},
		{"Rejection threshold", r.RejectionThreshold},
		{"Empirical power", r.Power},
		{"Empirical p-value", r.EmpiricalPValue},
		{"Null mean", r.NullSummary.Mean},
		{"Null std dev", r.NullSummary.StdDev},
		{"Alternative mean", r.AlternativeSummary.Mean},
		{"Alternative std dev", r.AlternativeSummary.StdDev},
		{"Required control samples", r.SampleSize.ControlSamples},
		{"Required treatment samples", r.SampleSize.TreatmentSamples},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(designSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if len(sweep) > 0 {
		if _, err := f.NewSheet(sweepSheet); err != nil {
			return fmt.Errorf("failed to create sweep sheet: %w", err)
		}
		header := []interface{}{"Trials", "Rejection threshold", "Power"}
		if err := f.SetSheetRow(sweepSheet, "A1", &header); err != nil {
			return fmt.Errorf("failed to write sweep header: %w", err)
		}
		for i, p := range sweep {
			row := []interface{}{p.Trials, p.RejectionThreshold, p.Power}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetSheetRow(sweepSheet, cell, &row); err != nil {
				return fmt.Errorf("failed to write sweep row %d: %w", i+1, err)
			}
		}
	}

	return f.Write(w)
}
