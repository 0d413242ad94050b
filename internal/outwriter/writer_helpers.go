package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"rigkpi/internal/contract"
)

// dateFormat is the operational-date layout used in all report output.
const dateFormat = "2006-01-02"

// ratioPrecision is the decimal precision for ratio-valued CSV cells. The
// legacy reports write six decimals regardless of the display precision.
const ratioPrecision = 6

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
// fmtFloat renders hour quantities at the configured precision; fmtRatio
// renders raw ratio values at the fixed legacy precision.
func createFormatters(precision int) (fmtFloat, fmtRatio func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	fmtRatio = func(v float64) string {
		return strconv.FormatFloat(v, 'f', ratioPrecision, 64)
	}
	return fmtFloat, fmtRatio, intFmt
}

// fmtOptRatio renders a nullable ratio cell; nil becomes an empty cell the
// way the legacy CSV reports leave missing targets blank.
func fmtOptRatio(v *float64, fmtRatio func(float64) string) string {
	if v == nil {
		return ""
	}
	return fmtRatio(*v)
}

// fmtOptPct renders a nullable ratio as percentage points.
func fmtOptPct(v *float64, fmtRatio func(float64) string) string {
	if v == nil {
		return ""
	}
	return fmtRatio(*v * 100.0)
}
