// Package errors provides structured error handling for cardindex.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Catalog input errors
//   - 3XX: Artifact output errors
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryCatalog indicates errors reading the input catalog.
	CategoryCatalog Category = "CATALOG"
	// CategoryArtifact indicates errors writing or publishing artifacts.
	CategoryArtifact Category = "ARTIFACT"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, the build must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but the build can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Catalog errors (200-299). The set catalog is the only fatal input:
	// without it the build has no set list to work from. Per-set failures
	// degrade to empty card lists.
	ErrCodeSetCatalogUnreadable = "ERR_201_SET_CATALOG_UNREADABLE"
	ErrCodeSetCatalogCorrupt    = "ERR_202_SET_CATALOG_CORRUPT"
	ErrCodeCardFileMissing      = "ERR_203_CARD_FILE_MISSING"
	ErrCodeCardFileCorrupt      = "ERR_204_CARD_FILE_CORRUPT"
	ErrCodeDuplicateCard        = "ERR_205_DUPLICATE_CARD"

	// Artifact errors (300-399)
	ErrCodeArtifactWrite   = "ERR_301_ARTIFACT_WRITE"
	ErrCodeArtifactPublish = "ERR_302_ARTIFACT_PUBLISH"
	ErrCodeArtifactRead    = "ERR_303_ARTIFACT_READ"
	ErrCodeBuildLocked     = "ERR_304_BUILD_LOCKED"

	// Validation errors (400-499)
	ErrCodeInvalidCard      = "ERR_401_INVALID_CARD"
	ErrCodeIndexInconsistent = "ERR_402_INDEX_INCONSISTENT"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "201" from "ERR_201_SET_CATALOG_UNREADABLE".
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryCatalog
	case '3':
		return CategoryArtifact
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// The mapping follows the build's error taxonomy: an unreadable set catalog
// or a failed artifact write aborts the run; per-set and per-record problems
// are absorbed as warnings.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeSetCatalogUnreadable, ErrCodeSetCatalogCorrupt,
		ErrCodeArtifactWrite, ErrCodeArtifactPublish:
		return SeverityFatal
	case ErrCodeCardFileMissing, ErrCodeCardFileCorrupt,
		ErrCodeDuplicateCard, ErrCodeInvalidCard:
		return SeverityWarning
	default:
		return SeverityError
	}
}
