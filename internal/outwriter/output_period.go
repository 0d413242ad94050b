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

// periodBaseFieldnames is the period-rollup CSV header carried over from the
// legacy monthly report. Annual output drops "mes"; shift output inserts
// "turno" after "perforadora".
var periodBaseFieldnames = []string{
	"anio",
	"mes",
	"perforadora",
	"dias_con_datos",
	"horas_totales",
	"horas_efectivo",
	"horas_reserva",
	"horas_mant_programada",
	"horas_mant_no_programada",
	"horas_otras",
	"horas_operativas",
	"horas_disponibles",
	"promedio_diario_efectivo_h",
	"promedio_diario_reserva_h",
	"promedio_diario_mant_programada_h",
	"promedio_diario_mant_no_programada_h",
	"disponibilidad_ratio",
	"disponibilidad_pct",
	"disponibilidad_formula_usuario",
	"uebd_ratio",
	"uebd_pct",
	"uebd_formula_usuario",
}

// PrintPeriodResults outputs period rollups, dispatching based on the output format configured.
func PrintPeriodResults(rows []schema.PeriodMetrics, cfg *contract.Config) error {
	fmtFloat, fmtRatio, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writePeriodJSONResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writePeriodCSVResults(rows, cfg, fmtRatio); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writePeriodParquetResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePeriodTable(rows, cfg, fmtFloat, intFmt, w)
		}, "Wrote table")
	}
	return nil
}

// periodShape inspects the slice for the annual and shift output variants.
func periodShape(rows []schema.PeriodMetrics) (annual, withShift bool) {
	annual = len(rows) > 0
	for i := range rows {
		if rows[i].Month != 0 {
			annual = false
		}
		if rows[i].Shift != "" {
			withShift = true
		}
	}
	return annual, withShift
}

// writePeriodJSONResults handles opening the file and calling the JSON writer.
func writePeriodJSONResults(rows []schema.PeriodMetrics, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type JSONPeriodResult struct {
			MonthName string `json:"mes_nombre,omitempty"`
			Label     string `json:"label"`
			schema.PeriodMetrics
		}

		output := make([]JSONPeriodResult, len(rows))
		for i, row := range rows {
			out := JSONPeriodResult{
				Label:         contract.GetPlainLabel(row.AvailabilityRatio),
				PeriodMetrics: row,
			}
			if row.Month != 0 {
				out.MonthName = schema.MonthName(row.Month)
			}
			output[i] = out
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writePeriodCSVResults handles opening the file and calling the CSV writer.
func writePeriodCSVResults(rows []schema.PeriodMetrics, cfg *contract.Config, fmtRatio func(float64) string) error {
	annual, withShift := periodShape(rows)
	header := make([]string, 0, len(periodBaseFieldnames)+1)
	for _, field := range periodBaseFieldnames {
		if annual && field == "mes" {
			continue
		}
		header = append(header, field)
		if withShift && field == "perforadora" {
			header = append(header, "turno")
		}
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i := range rows {
				if err := csvWriter.Write(periodCSVRecord(&rows[i], annual, withShift, fmtRatio)); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// periodCSVRecord renders one rollup record in the legacy column order.
func periodCSVRecord(row *schema.PeriodMetrics, annual, withShift bool, fmtRatio func(float64) string) []string {
	rec := []string{strconv.Itoa(row.Year)}
	if !annual {
		rec = append(rec, schema.MonthName(row.Month))
	}
	rec = append(rec, row.Rig)
	if withShift {
		rec = append(rec, row.Shift)
	}
	rec = append(rec,
		strconv.Itoa(row.DaysWithData),
		fmtRatio(row.TotalHours),
		fmtRatio(row.EffectiveHours),
		fmtRatio(row.ReserveHours),
		fmtRatio(row.SchedMaintHours),
		fmtRatio(row.UnschedHours),
		fmtRatio(row.OtherHours),
		fmtRatio(row.OperativeHours),
		fmtRatio(row.OperativeHours), // horas_disponibles is the legacy alias
		fmtRatio(row.AvgEffectivePerDay),
		fmtRatio(row.AvgReservePerDay),
		fmtRatio(row.AvgSchedMaintPerDay),
		fmtRatio(row.AvgUnschedPerDay),
		fmtRatio(row.AvailabilityRatio),
		fmtRatio(row.AvailabilityRatio*100.0),
		fmtRatio(schema.UserFormula(row.AvailabilityRatio)),
		fmtRatio(row.UEBDRatio),
		fmtRatio(row.UEBDRatio*100.0),
		fmtRatio(schema.UserFormula(row.UEBDRatio)),
	)
	return rec
}

// writePeriodParquetResults delegates to the parquet exporter.
func writePeriodParquetResults(rows []schema.PeriodMetrics, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if err := parquet.WritePeriodMetricsParquet(parquet.ConvertPeriodMetrics(rows), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writePeriodTable generates and writes the human-readable table.
func writePeriodTable(rows []schema.PeriodMetrics, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	annual, withShift := periodShape(rows)
	headers := []string{"Anio"}
	if !annual {
		headers = append(headers, "Mes")
	}
	headers = append(headers, "Rig")
	if withShift {
		headers = append(headers, "Turno")
	}
	headers = append(headers, "Dias", "Total", "Operativas", "Disp", "UEBD", "Label")
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i := range rows {
		r := &rows[i]
		row := []string{strconv.Itoa(r.Year)}
		if !annual {
			row = append(row, schema.MonthName(r.Month))
		}
		row = append(row, r.Rig)
		if withShift {
			row = append(row, r.Shift)
		}
		row = append(row,
			fmt.Sprintf(intFmt, r.DaysWithData),
			fmtFloat(r.TotalHours),
			fmtFloat(r.OperativeHours),
			contract.FormatRatio(r.AvailabilityRatio, cfg.Precision),
			contract.FormatRatio(r.UEBDRatio, cfg.Precision),
			contract.GetColorLabel(r.AvailabilityRatio),
		)
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d period rows\n", len(rows)); err != nil {
		return err
	}
	return nil
}
