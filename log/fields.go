package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldKey       = "key"
	FieldBackup    = "backup"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldID        = "id"
	FieldCategory  = "category"
	FieldKind      = "kind"
	FieldAmount    = "amount"
	FieldModel     = "model"
	FieldCount     = "count"
)

// Component names.
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentBook    = "book"
	ComponentAdvisor = "advisor"
	ComponentAPI     = "api"
	ComponentCLI     = "cli"
)

// Operation names.
const (
	OpLoad    = "load"
	OpSave    = "save"
	OpCreate  = "create"
	OpDelete  = "delete"
	OpUpdate  = "update"
	OpAdvice  = "advice"
	OpParse   = "parse"
	OpMigrate = "migrate"
	OpStartup = "startup"
)
