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

// impactFieldnames is the fleet impact CSV header carried over from the
// legacy report. The valor_final columns repeat the realized metric value.
var impactFieldnames = []string{
	"metrica",
	"ranking",
	"codigo",
	"horas",
	"impacto_ratio",
	"impacto_pct_points",
	"denominador_horas",
	"valor_final_ratio",
	"valor_final_pct",
}

// impactByRigFieldnames is the per-rig impact CSV header.
var impactByRigFieldnames = []string{
	"metrica",
	"perforadora",
	"ranking",
	"codigo",
	"horas",
	"impacto_ratio",
	"impacto_pct_points",
	"denominador_horas",
}

// PrintImpactResults outputs the fleet per-code impact ranking, dispatching
// based on the output format configured. finalRatio is the realized metric
// value that the ranked codes eroded.
func PrintImpactResults(rows []schema.ImpactRow, finalRatio float64, cfg *contract.Config) error {
	fmtFloat, fmtRatio, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeImpactJSONResults(rows, finalRatio, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeImpactCSVResults(rows, finalRatio, cfg, fmtRatio); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the impact ranking")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImpactTable(rows, finalRatio, cfg, fmtFloat, intFmt, w)
		}, "Wrote table")
	}
	return nil
}

// PrintImpactByRigResults outputs the per-rig per-code impact ranking,
// dispatching based on the output format configured.
func PrintImpactByRigResults(rows []schema.ImpactRow, cfg *contract.Config) error {
	fmtFloat, fmtRatio, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeImpactByRigCSVResults(rows, cfg, fmtRatio); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the impact ranking")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImpactByRigTable(rows, cfg, fmtFloat, intFmt, w)
		}, "Wrote table")
	}
	return nil
}

// writeImpactJSONResults handles opening the file and calling the JSON writer.
func writeImpactJSONResults(rows []schema.ImpactRow, finalRatio float64, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type JSONImpactReport struct {
			FinalRatio float64            `json:"valor_final_ratio"`
			FinalPct   float64            `json:"valor_final_pct"`
			Rows       []schema.ImpactRow `json:"filas"`
		}
		return writeJSON(w, JSONImpactReport{
			FinalRatio: finalRatio,
			FinalPct:   finalRatio * 100.0,
			Rows:       rows,
		})
	}, "Wrote JSON")
}

// writeImpactCSVResults handles opening the file and calling the CSV writer.
func writeImpactCSVResults(rows []schema.ImpactRow, finalRatio float64, cfg *contract.Config, fmtRatio func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, impactFieldnames, func(csvWriter *csv.Writer) error {
			for i := range rows {
				r := &rows[i]
				rec := []string{
					string(r.Metric),
					strconv.Itoa(r.Rank),
					r.Code,
					fmtRatio(r.Hours),
					fmtRatio(r.ImpactRatio),
					fmtRatio(r.ImpactPp),
					fmtRatio(r.DenominatorHours),
					fmtRatio(finalRatio),
					fmtRatio(finalRatio * 100.0),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeImpactByRigCSVResults handles opening the file and calling the CSV writer.
func writeImpactByRigCSVResults(rows []schema.ImpactRow, cfg *contract.Config, fmtRatio func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, impactByRigFieldnames, func(csvWriter *csv.Writer) error {
			for i := range rows {
				r := &rows[i]
				rec := []string{
					string(r.Metric),
					r.Rig,
					strconv.Itoa(r.Rank),
					r.Code,
					fmtRatio(r.Hours),
					fmtRatio(r.ImpactRatio),
					fmtRatio(r.ImpactPp),
					fmtRatio(r.DenominatorHours),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeImpactTable generates and writes the human-readable fleet table.
func writeImpactTable(rows []schema.ImpactRow, finalRatio float64, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Codigo", "Horas", "Impacto pp"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxCode := GetMaxTableCodeWidth(cfg)
	var data [][]string
	for i := range rows {
		r := &rows[i]
		data = append(data, []string{
			fmt.Sprintf(intFmt, r.Rank),
			contract.TruncateLabel(r.Code, maxCode),
			fmtFloat(r.Hours),
			fmtFloat(r.ImpactPp),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	metric := ""
	denominator := 0.0
	if len(rows) > 0 {
		metric = string(rows[0].Metric)
		denominator = rows[0].DenominatorHours
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d codes by %s impact (denominator: %s h, final value: %s)\n",
		len(rows), metric, fmtFloat(denominator), contract.FormatRatio(finalRatio, cfg.Precision)); err != nil {
		return err
	}
	return nil
}

// writeImpactByRigTable generates and writes the human-readable per-rig table.
func writeImpactByRigTable(rows []schema.ImpactRow, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rig", "Rank", "Codigo", "Horas", "Impacto pp"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxCode := GetMaxTableCodeWidth(cfg)
	var data [][]string
	for i := range rows {
		r := &rows[i]
		data = append(data, []string{
			r.Rig,
			fmt.Sprintf(intFmt, r.Rank),
			contract.TruncateLabel(r.Code, maxCode),
			fmtFloat(r.Hours),
			fmtFloat(r.ImpactPp),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d per-rig impact rows\n", len(rows)); err != nil {
		return err
	}
	return nil
}
