package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"rigkpi/internal/contract"
	"rigkpi/internal/parquet"
	"rigkpi/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// dailyFieldnames is the rig-day CSV header carried over from the legacy
// daily report. Shift-level output inserts "turno" after "perforadora".
var dailyFieldnames = []string{
	"fecha_operativa",
	"anio",
	"mes",
	"perforadora",
	"horas_totales",
	"horas_efectivo",
	"horas_reserva",
	"horas_mant_programada",
	"horas_mant_no_programada",
	"horas_otras",
	"horas_operativas",
	"horas_disponibles",
	"disponibilidad_ratio",
	"disponibilidad_pct",
	"disponibilidad_formula_usuario",
	"uebd_ratio",
	"uebd_pct",
	"uebd_formula_usuario",
}

// PrintDailyResults outputs daily metrics, dispatching based on the output format configured.
func PrintDailyResults(rows []schema.DailyMetrics, cfg *contract.Config, stats schema.RowStats, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, fmtRatio, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDailyJSONResults(rows, cfg, stats); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDailyCSVResults(rows, cfg, fmtRatio); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeDailyParquetResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDailyTable(rows, cfg, fmtFloat, stats, duration, w)
		}, "Wrote table")
	}
	return nil
}

// hasShiftRows reports whether the slice carries shift-level records.
func hasShiftRows(rows []schema.DailyMetrics) bool {
	for i := range rows {
		if rows[i].Shift != "" {
			return true
		}
	}
	return false
}

// writeDailyJSONResults handles opening the file and calling the JSON writer.
func writeDailyJSONResults(rows []schema.DailyMetrics, cfg *contract.Config, stats schema.RowStats) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type JSONDailyResult struct {
			Label string `json:"label"`
			schema.DailyMetrics
		}
		type JSONDailyReport struct {
			Rows  []JSONDailyResult `json:"filas"`
			Stats schema.RowStats   `json:"calidad_datos"`
		}

		output := JSONDailyReport{Rows: make([]JSONDailyResult, len(rows)), Stats: stats}
		for i, row := range rows {
			output.Rows[i] = JSONDailyResult{
				Label:        contract.GetPlainLabel(row.AvailabilityRatio),
				DailyMetrics: row,
			}
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeDailyCSVResults handles opening the file and calling the CSV writer.
func writeDailyCSVResults(rows []schema.DailyMetrics, cfg *contract.Config, fmtRatio func(float64) string) error {
	withShift := hasShiftRows(rows)
	header := dailyFieldnames
	if withShift {
		header = append(header[:4:4], append([]string{"turno"}, header[4:]...)...)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i := range rows {
				if err := csvWriter.Write(dailyCSVRecord(&rows[i], withShift, fmtRatio)); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// dailyCSVRecord renders one rig-day record in the legacy column order.
func dailyCSVRecord(row *schema.DailyMetrics, withShift bool, fmtRatio func(float64) string) []string {
	rec := []string{
		row.Day.Format(dateFormat),
		strconv.Itoa(row.Day.Year()),
		strconv.Itoa(int(row.Day.Month())),
		row.Rig,
	}
	if withShift {
		rec = append(rec, row.Shift)
	}
	rec = append(rec,
		fmtRatio(row.TotalHours),
		fmtRatio(row.EffectiveHours),
		fmtRatio(row.ReserveHours),
		fmtRatio(row.SchedMaintHours),
		fmtRatio(row.UnschedHours),
		fmtRatio(row.OtherHours),
		fmtRatio(row.OperativeHours),
		fmtRatio(row.OperativeHours), // horas_disponibles is the legacy alias
		fmtRatio(row.AvailabilityRatio),
		fmtRatio(row.AvailabilityRatio*100.0),
		fmtRatio(schema.UserFormula(row.AvailabilityRatio)),
		fmtRatio(row.UEBDRatio),
		fmtRatio(row.UEBDRatio*100.0),
		fmtRatio(schema.UserFormula(row.UEBDRatio)),
	)
	return rec
}

// writeDailyParquetResults delegates to the parquet exporter. Parquet has no
// stdout form, so a file path is mandatory.
func writeDailyParquetResults(rows []schema.DailyMetrics, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if err := parquet.WriteDailyMetricsParquet(parquet.ConvertDailyMetrics(0, rows), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeDailyTable generates and writes the human-readable table.
func writeDailyTable(rows []schema.DailyMetrics, cfg *contract.Config, fmtFloat func(float64) string, stats schema.RowStats, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Fecha", "Rig"}
	withShift := hasShiftRows(rows)
	if withShift {
		headers = append(headers, "Turno")
	}
	headers = append(headers, "Total", "Efectivo", "Operativas", "Disp", "UEBD", "Label")
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	totalHours := 0.0
	for i := range rows {
		r := &rows[i]
		totalHours += r.TotalHours
		row := []string{
			r.Day.Format(dateFormat), // Operational date
			r.Rig,                    // Rig
		}
		if withShift {
			row = append(row, r.Shift)
		}
		row = append(row,
			fmtFloat(r.TotalHours),
			fmtFloat(r.EffectiveHours),
			fmtFloat(r.OperativeHours),
			contract.FormatRatio(r.AvailabilityRatio, cfg.Precision),
			contract.FormatRatio(r.UEBDRatio, cfg.Precision),
			contract.GetColorLabel(r.AvailabilityRatio),
		)
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d rig-day rows (total hours: %s)\n", len(rows), fmtFloat(totalHours)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Rows read: %d, without operational day: %d, duration fallbacks: %d, filtered by rig: %d, unparseable cells: %d\n",
		stats.RowsRead, stats.UnresolvableDays, stats.DurationFallback, stats.FilteredByRig, stats.UnparseableCells); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Aggregation completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
