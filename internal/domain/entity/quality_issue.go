package entity

import "fmt"

// Severity de un problema de calidad. El orden de las constantes es el ranking
// usado para ordenar el reporte (error primero).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// Severities en orden de ranking.
var Severities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// MarshalText serializa la severidad con su nombre.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText acepta los nombres producidos por MarshalText.
func (s *Severity) UnmarshalText(b []byte) error {
	for _, v := range Severities {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("severidad desconocida: %q", b)
}

// IssueType es la enumeración cerrada de detectores de calidad.
type IssueType int

const (
	IssueEmptyFile IssueType = iota
	IssueMissingRequiredColumn
	IssueColumnNameMismatch
	IssueDuplicateKey
	IssueNegativeQuantity
	IssueQuantityCoerced
	IssueSKUFormatNormalized
	IssueWhitespaceTrimmed
	IssueDateFormatInconsistent
	IssueDateRegression
	IssueNameDrift
)

// IssueTypes lista todos los tipos en orden de declaración.
var IssueTypes = []IssueType{
	IssueEmptyFile,
	IssueMissingRequiredColumn,
	IssueColumnNameMismatch,
	IssueDuplicateKey,
	IssueNegativeQuantity,
	IssueQuantityCoerced,
	IssueSKUFormatNormalized,
	IssueWhitespaceTrimmed,
	IssueDateFormatInconsistent,
	IssueDateRegression,
	IssueNameDrift,
}

func (t IssueType) String() string {
	switch t {
	case IssueEmptyFile:
		return "empty_file"
	case IssueMissingRequiredColumn:
		return "missing_required_column"
	case IssueColumnNameMismatch:
		return "column_name_mismatch"
	case IssueDuplicateKey:
		return "duplicate_key"
	case IssueNegativeQuantity:
		return "negative_quantity"
	case IssueQuantityCoerced:
		return "quantity_coerced"
	case IssueSKUFormatNormalized:
		return "sku_format_normalized"
	case IssueWhitespaceTrimmed:
		return "whitespace_trimmed"
	case IssueDateFormatInconsistent:
		return "date_format_inconsistent"
	case IssueDateRegression:
		return "date_regression"
	case IssueNameDrift:
		return "name_drift"
	}
	return fmt.Sprintf("issue_type(%d)", int(t))
}

// MarshalText serializa el tipo con su nombre snake_case.
func (t IssueType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText acepta los nombres producidos por MarshalText.
func (t *IssueType) UnmarshalText(b []byte) error {
	for _, v := range IssueTypes {
		if v.String() == string(b) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("tipo de problema desconocido: %q", b)
}

// Severity es fija por tipo de problema.
func (t IssueType) Severity() Severity {
	switch t {
	case IssueEmptyFile, IssueMissingRequiredColumn, IssueDuplicateKey, IssueNegativeQuantity:
		return SeverityError
	case IssueColumnNameMismatch:
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// SourceFile identifica el snapshot de origen de un problema.
type SourceFile string

const (
	SourceSnapshot1 SourceFile = "snapshot_1"
	SourceSnapshot2 SourceFile = "snapshot_2"
	SourceBoth      SourceFile = "both"
)

// DataQualityIssue es un defecto detectado en los datos de entrada.
// Los campos opcionales se serializan como null cuando no aplican.
type DataQualityIssue struct {
	Type            IssueType  `json:"issue_type"`
	Severity        Severity   `json:"severity"`
	SourceFile      SourceFile `json:"source_file"`
	RowNumber       *int       `json:"row_number"`
	Field           *string    `json:"field"`
	OriginalValue   *string    `json:"original_value"`
	NormalizedValue *string    `json:"normalized_value"`
	Description     string     `json:"description"`
}

// NewIssue construye un problema con la severidad que corresponde a su tipo.
func NewIssue(t IssueType, source SourceFile, description string) DataQualityIssue {
	return DataQualityIssue{
		Type:        t,
		Severity:    t.Severity(),
		SourceFile:  source,
		Description: description,
	}
}

// AtRow fija el número de fila (1-indexed, sin encabezado).
func (i DataQualityIssue) AtRow(row int) DataQualityIssue {
	i.RowNumber = &row
	return i
}

// OnField fija el campo afectado.
func (i DataQualityIssue) OnField(field string) DataQualityIssue {
	i.Field = &field
	return i
}

// WithOriginal fija el valor original.
func (i DataQualityIssue) WithOriginal(v string) DataQualityIssue {
	i.OriginalValue = &v
	return i
}

// WithNormalized fija el valor normalizado.
func (i DataQualityIssue) WithNormalized(v string) DataQualityIssue {
	i.NormalizedValue = &v
	return i
}

// SortRow devuelve el número de fila o 0 si el problema no está atado a una fila.
func (i DataQualityIssue) SortRow() int {
	if i.RowNumber == nil {
		return 0
	}
	return *i.RowNumber
}
