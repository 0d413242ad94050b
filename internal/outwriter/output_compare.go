package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"rigkpi/internal/contract"
	"rigkpi/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// comparisonFieldnames is the monthly target-vs-real CSV header carried over
// from the legacy comparison report. Missing targets leave their cells blank.
var comparisonFieldnames = []string{
	"anio",
	"mes_num",
	"mes",
	"dias_reales_con_datos",
	"horas_totales_real",
	"horas_operativas_real",
	"horas_efectivo_real",
	"disponibilidad_obj_ratio",
	"disponibilidad_obj_pct",
	"disponibilidad_real_ratio",
	"disponibilidad_real_pct",
	"disponibilidad_gap_pp",
	"uebd_obj_ratio",
	"uebd_obj_pct",
	"uebd_real_ratio",
	"uebd_real_pct",
	"uebd_gap_pp",
	"perdida_horas_uebd_mes",
	"perdida_horas_disponibilidad_mes",
}

// PrintComparisonResults outputs the monthly target-vs-real comparison,
// dispatching based on the output format configured.
func PrintComparisonResults(rows []schema.MonthlyComparison, cfg *contract.Config) error {
	fmtFloat, fmtRatio, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeComparisonCSVResults(rows, cfg, fmtRatio); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the monthly comparison")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(rows, cfg, fmtFloat, intFmt, w)
		}, "Wrote table")
	}
	return nil
}

// writeComparisonCSVResults handles opening the file and calling the CSV writer.
func writeComparisonCSVResults(rows []schema.MonthlyComparison, cfg *contract.Config, fmtRatio func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, comparisonFieldnames, func(csvWriter *csv.Writer) error {
			for i := range rows {
				r := &rows[i]
				rec := []string{
					strconv.Itoa(r.Year),
					strconv.Itoa(r.Month),
					schema.MonthName(r.Month),
					strconv.Itoa(r.DaysWithData),
					fmtRatio(r.TotalHours),
					fmtRatio(r.OperativeHours),
					fmtRatio(r.EffectiveHours),
					fmtOptRatio(r.AvailabilityTarget, fmtRatio),
					fmtOptPct(r.AvailabilityTarget, fmtRatio),
					fmtRatio(r.AvailabilityReal),
					fmtRatio(r.AvailabilityReal * 100.0),
					fmtOptRatio(r.AvailabilityGapPp, fmtRatio),
					fmtOptRatio(r.UEBDTarget, fmtRatio),
					fmtOptPct(r.UEBDTarget, fmtRatio),
					fmtRatio(r.UEBDReal),
					fmtRatio(r.UEBDReal * 100.0),
					fmtOptRatio(r.UEBDGapPp, fmtRatio),
					fmtOptRatio(r.LostHoursUEBD, fmtRatio),
					fmtOptRatio(r.LostHoursAvailability, fmtRatio),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeComparisonTable generates and writes the human-readable table.
func writeComparisonTable(rows []schema.MonthlyComparison, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Anio", "Mes", "Dias", "Disp Obj", "Disp Real", "Gap pp", "UEBD Obj", "UEBD Real", "Gap pp", "Perdida h"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	optRatioCell := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return contract.FormatRatio(*v, cfg.Precision)
	}
	optFloatCell := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmtFloat(*v)
	}

	var data [][]string
	for i := range rows {
		r := &rows[i]
		lost := 0.0
		if r.LostHoursUEBD != nil {
			lost += *r.LostHoursUEBD
		}
		if r.LostHoursAvailability != nil {
			lost += *r.LostHoursAvailability
		}
		data = append(data, []string{
			strconv.Itoa(r.Year),
			schema.MonthName(r.Month),
			fmt.Sprintf(intFmt, r.DaysWithData),
			optRatioCell(r.AvailabilityTarget),
			contract.FormatRatio(r.AvailabilityReal, cfg.Precision),
			optFloatCell(r.AvailabilityGapPp),
			optRatioCell(r.UEBDTarget),
			contract.FormatRatio(r.UEBDReal, cfg.Precision),
			optFloatCell(r.UEBDGapPp),
			fmtFloat(lost),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d months against targets\n", len(rows)); err != nil {
		return err
	}
	return nil
}
