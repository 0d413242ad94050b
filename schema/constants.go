package schema

// Custom string types for type safety.
type (
	// Bucket represents the mutually exclusive state category an event's
	// duration is assigned to.
	Bucket string

	// Metric represents the KPI a table or ranking refers to.
	Metric string

	// Granularity represents the period grouping for rollups.
	Granularity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the results store.
	DatabaseBackend string
)

// All buckets supported. Classification precedence is first match wins:
// Efectivo, Reserva, Mantencion+Programada, Mantencion otherwise, Otras.
const (
	BucketEffective      Bucket = "efectivo"
	BucketReserve        Bucket = "reserva"
	BucketScheduledMaint Bucket = "mant_programada"
	BucketUnscheduled    Bucket = "mant_no_programada"
	BucketOther          Bucket = "otras"
)

// All metrics supported.
const (
	MetricAvailability Metric = "disponibilidad"
	MetricUEBD         Metric = "uebd"
)

// All period granularities supported.
const (
	GranularityMonthly Granularity = "mensual"
	GranularityAnnual  Granularity = "anual"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// Sentinel labels carried over from the legacy reports so downstream
// consumers keep matching on them.
const (
	NoCodeLabel   = "SIN_CODIGO" // events with no resolvable delay code
	NoRigLabel    = "SIN_RIG"    // events with an empty rig identifier
	NoShiftLabel  = "SIN_TURNO"  // events with an empty shift name
	FleetLabel    = "FLOTA"      // fleet-wide grouping key
	FleetTotalRow = "TOTAL"      // trailing total row in the executive summary
)

// ValidMetrics lists all valid metrics.
var ValidMetrics = map[Metric]struct{}{
	MetricAvailability: {},
	MetricUEBD:         {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// MonthNames maps month numbers to the Spanish names used in report output.
var MonthNames = map[int]string{
	1:  "Enero",
	2:  "Febrero",
	3:  "Marzo",
	4:  "Abril",
	5:  "Mayo",
	6:  "Junio",
	7:  "Julio",
	8:  "Agosto",
	9:  "Septiembre",
	10: "Octubre",
	11: "Noviembre",
	12: "Diciembre",
}

// IsMaintenance reports whether the bucket counts against Availability.
func (b Bucket) IsMaintenance() bool {
	return b == BucketScheduledMaint || b == BucketUnscheduled
}

// IsDelay reports whether the bucket belongs to the delay population used
// for UEBD attribution (operative but not effective).
func (b Bucket) IsDelay() bool {
	return b == BucketReserve || b == BucketOther
}
