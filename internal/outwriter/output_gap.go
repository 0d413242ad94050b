package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"rigkpi/internal/contract"
	"rigkpi/internal/parquet"
	"rigkpi/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// attributionFieldnames is the gap-attribution CSV header carried over from
// the legacy "aporte gap por codigo" report.
var attributionFieldnames = []string{
	"ranking_impacto",
	"codigo",
	"baseline_horas_dia",
	"comparado_horas_dia",
	"delta_horas_dia",
	"delta_horas_dia_positivo",
	"impacto_raw_pp",
	"factor_escalamiento",
	"impacto_atribuido_pp",
	"participacion_gap_pct",
	"impacto_acumulado_pp",
	"perdida_horas_dia_atribuida",
	"perdida_horas_mes_atribuida",
}

// PrintAttributionResults outputs a gap attribution table, dispatching based
// on the output format configured.
func PrintAttributionResults(result schema.AttributionResult, cfg *contract.Config) error {
	fmtFloat, fmtRatio, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeAttributionCSVResults(result, cfg, fmtRatio); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeAttributionParquetResults(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAttributionTable(result, cfg, fmtFloat, intFmt, w)
		}, "Wrote table")
	}
	return nil
}

// writeAttributionCSVResults handles opening the file and calling the CSV writer.
func writeAttributionCSVResults(result schema.AttributionResult, cfg *contract.Config, fmtRatio func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, attributionFieldnames, func(csvWriter *csv.Writer) error {
			for i := range result.Rows {
				r := &result.Rows[i]
				rec := []string{
					strconv.Itoa(r.Rank),
					r.Code,
					fmtRatio(r.BaselineHpd),
					fmtRatio(r.ComparisonHpd),
					fmtRatio(r.DeltaHpd),
					fmtRatio(r.DeltaPositive),
					fmtRatio(r.RawImpactPp),
					fmtRatio(r.ScalingFactor),
					fmtRatio(r.AttributedImpactPp),
					fmtRatio(r.GapSharePct),
					fmtRatio(r.CumulativeImpactPp),
					fmtRatio(r.LostHoursPerDay),
					fmtRatio(r.LostHoursPerPeriod),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeAttributionParquetResults delegates to the parquet exporter.
func writeAttributionParquetResults(result schema.AttributionResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if err := parquet.WriteGapAttributionParquet(parquet.ConvertAttributionResult(0, &result), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeAttributionTable generates and writes the human-readable table.
func writeAttributionTable(result schema.AttributionResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Codigo", "Delta h/d", "Impacto pp", "Particip %", "Acum pp", "Perdida h"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxCode := GetMaxTableCodeWidth(cfg)
	var data [][]string
	for i := range result.Rows {
		r := &result.Rows[i]
		data = append(data, []string{
			fmt.Sprintf(intFmt, r.Rank),
			contract.TruncateLabel(r.Code, maxCode),
			fmtFloat(r.DeltaPositive),
			fmtFloat(r.AttributedImpactPp),
			fmtFloat(r.GapSharePct),
			fmtFloat(r.CumulativeImpactPp),
			fmtFloat(r.LostHoursPerPeriod),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Metric %s: gap %s pp over %d compared days (denominator %s h/day)\n",
		result.Metric, fmtFloat(result.GapPp), result.ComparedDays, fmtFloat(result.DenominatorHpd)); err != nil {
		return err
	}
	return nil
}
