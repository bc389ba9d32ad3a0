package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldSource         = "source"
	FieldSheet          = "sheet"
	FieldFileID         = "file_id"
	FieldPeriod         = "period"
	FieldDimension      = "dimension"
	FieldRecords        = "records"
	FieldRowsIn         = "rows_in"
	FieldRowsOut        = "rows_out"
	FieldDatasetVersion = "dataset_version"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentRefresh  = "refresh"
	ComponentPipeline = "pipeline"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentDrive    = "drive"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpFetch    = "fetch"
	OpParse    = "parse"
	OpClean    = "clean"
	OpMerge    = "merge"
	OpRefresh  = "refresh"
	OpSnapshot = "snapshot"
	OpPublish  = "publish"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder for structured log fields.
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithSource adds the source sheet identity fields
func (f LogFields) WithSource(source, sheet, fileID string) LogFields {
	f[FieldSource] = source
	f[FieldSheet] = sheet
	f[FieldFileID] = fileID
	return f
}

// WithDataset adds the dataset version and record count
func (f LogFields) WithDataset(version string, records int) LogFields {
	f[FieldDatasetVersion] = version
	f[FieldRecords] = records
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
