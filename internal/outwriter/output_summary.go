package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"rigkpi/internal/contract"
	"rigkpi/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// summaryFieldnames is the executive-summary CSV header carried over from
// the legacy report, including its unusual column order.
var summaryFieldnames = []string{
	"perforadora",
	"dias_con_datos",
	"horas_efectivas",
	"horas_operativas",
	"horas_totales",
	"uebd_formula_usuario",
	"disponibilidad_formula_usuario",
	"uebd_ratio",
	"uebd_pct",
	"disponibilidad_ratio",
	"disponibilidad_pct",
	"horas_reserva",
	"horas_mant_programada",
	"horas_mant_no_programada",
	"horas_otras",
}

// PrintSummaryResults outputs the executive per-rig summary, dispatching
// based on the output format configured.
func PrintSummaryResults(rows []schema.RigSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtRatio, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSummaryJSONResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSVResults(rows, cfg, fmtRatio); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the executive summary")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(rows, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryJSONResults handles opening the file and calling the JSON writer.
func writeSummaryJSONResults(rows []schema.RigSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type JSONSummaryResult struct {
			Label string `json:"label"`
			schema.RigSummary
		}

		output := make([]JSONSummaryResult, len(rows))
		for i, row := range rows {
			output[i] = JSONSummaryResult{
				Label:      contract.GetPlainLabel(row.AvailabilityRatio),
				RigSummary: row,
			}
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeSummaryCSVResults handles opening the file and calling the CSV writer.
func writeSummaryCSVResults(rows []schema.RigSummary, cfg *contract.Config, fmtRatio func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, summaryFieldnames, func(csvWriter *csv.Writer) error {
			for i := range rows {
				r := &rows[i]
				rec := []string{
					r.Rig,
					strconv.Itoa(r.DaysWithData),
					fmtRatio(r.EffectiveHours),
					fmtRatio(r.OperativeHours),
					fmtRatio(r.TotalHours),
					fmtRatio(schema.UserFormula(r.UEBDRatio)),
					fmtRatio(schema.UserFormula(r.AvailabilityRatio)),
					fmtRatio(r.UEBDRatio),
					fmtRatio(r.UEBDRatio * 100.0),
					fmtRatio(r.AvailabilityRatio),
					fmtRatio(r.AvailabilityRatio * 100.0),
					fmtRatio(r.ReserveHours),
					fmtRatio(r.SchedMaintHours),
					fmtRatio(r.UnschedHours),
					fmtRatio(r.OtherHours),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(rows []schema.RigSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rig", "Dias", "Efectivas", "Operativas", "Totales", "UEBD", "Disp", "Label"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i := range rows {
		r := &rows[i]
		data = append(data, []string{
			r.Rig,
			fmt.Sprintf(intFmt, r.DaysWithData),
			fmtFloat(r.EffectiveHours),
			fmtFloat(r.OperativeHours),
			fmtFloat(r.TotalHours),
			contract.FormatRatio(r.UEBDRatio, cfg.Precision),
			contract.FormatRatio(r.AvailabilityRatio, cfg.Precision),
			contract.GetColorLabel(r.AvailabilityRatio),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// The trailing TOTAL row is part of the data, not a computed footer.
	rigCount := len(rows)
	if rigCount > 0 {
		rigCount--
	}
	if _, err := fmt.Fprintf(writer, "Showing %d rigs. Summary completed in %v\n", rigCount, duration); err != nil {
		return err
	}
	return nil
}
