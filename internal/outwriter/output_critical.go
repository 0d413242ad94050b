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

// criticalFieldnames is the worst-days CSV header carried over from the
// legacy "top dias" report.
var criticalFieldnames = []string{
	"ranking",
	"metric",
	"perforadora",
	"fecha_operativa",
	"valor_ratio",
	"valor_pct",
	"horas_efectivo",
	"horas_operativas",
	"horas_totales",
	"horas_reserva",
	"horas_mant_programada",
	"horas_mant_no_programada",
	"horas_otras",
}

// PrintCriticalResults outputs the worst-days ranking, dispatching based on
// the output format configured.
func PrintCriticalResults(days []schema.CriticalDay, cfg *contract.Config) error {
	fmtFloat, fmtRatio, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCriticalJSONResults(days, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCriticalCSVResults(days, cfg, fmtRatio); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the critical-days ranking")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCriticalTable(days, cfg, fmtFloat, intFmt, w)
		}, "Wrote table")
	}
	return nil
}

// writeCriticalJSONResults handles opening the file and calling the JSON writer.
func writeCriticalJSONResults(days []schema.CriticalDay, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type JSONCriticalResult struct {
			Label string `json:"label"`
			schema.CriticalDay
		}

		output := make([]JSONCriticalResult, len(days))
		for i, d := range days {
			output[i] = JSONCriticalResult{
				Label:       contract.GetPlainLabel(d.Ratio),
				CriticalDay: d,
			}
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeCriticalCSVResults handles opening the file and calling the CSV writer.
func writeCriticalCSVResults(days []schema.CriticalDay, cfg *contract.Config, fmtRatio func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, criticalFieldnames, func(csvWriter *csv.Writer) error {
			for i := range days {
				d := &days[i]
				rec := []string{
					strconv.Itoa(d.Rank),
					string(d.Metric),
					d.Daily.Rig,
					d.Daily.Day.Format(dateFormat),
					fmtRatio(d.Ratio),
					fmtRatio(d.Ratio * 100.0),
					fmtRatio(d.Daily.EffectiveHours),
					fmtRatio(d.Daily.OperativeHours),
					fmtRatio(d.Daily.TotalHours),
					fmtRatio(d.Daily.ReserveHours),
					fmtRatio(d.Daily.SchedMaintHours),
					fmtRatio(d.Daily.UnschedHours),
					fmtRatio(d.Daily.OtherHours),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeCriticalTable generates and writes the human-readable table.
func writeCriticalTable(days []schema.CriticalDay, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Rig", "Fecha", "Valor", "Total", "Operativas", "Efectivo", "Label"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i := range days {
		d := &days[i]
		data = append(data, []string{
			fmt.Sprintf(intFmt, d.Rank),
			d.Daily.Rig,
			d.Daily.Day.Format(dateFormat),
			contract.FormatRatio(d.Ratio, cfg.Precision),
			fmtFloat(d.Daily.TotalHours),
			fmtFloat(d.Daily.OperativeHours),
			fmtFloat(d.Daily.EffectiveHours),
			contract.GetColorLabel(d.Ratio),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	metric := ""
	if len(days) > 0 {
		metric = string(days[0].Metric)
	}
	if _, err := fmt.Fprintf(writer, "Showing %d worst days by %s\n", len(days), metric); err != nil {
		return err
	}
	return nil
}
