package errors

// Error codes for the wiz front end.
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Scope errors
// E0100-E0199: Lexer and parser errors
// E0300-E0399: Import/module errors
// E0900-E0999: Tooling errors (files, configuration)

const (
	// E0009: Duplicate function or namespace in one scope
	ErrorDuplicateDeclaration = "E0009"

	// E0016: Error without a more specific code
	ErrorGeneric = "E0016"

	// Lexer errors

	// E0100: Character that starts no token
	ErrorInvalidCharacter = "E0100"

	// E0101: Numeric literal with no digits or out of range
	ErrorInvalidNumber = "E0101"

	// E0102: String literal missing its closing quote
	ErrorUnterminatedString = "E0102"

	// Parser errors

	// E0110: Token did not match the grammar
	ErrorUnexpectedToken = "E0110"

	// Import/module errors

	// E0300: No search directory holds the imported module
	ErrorImportNotFound = "E0300"

	// Tooling errors

	// E0900: Source file could not be read
	ErrorFileAccess = "E0900"

	// E0901: Invalid project file
	ErrorProjectConfig = "E0901"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorDuplicateDeclaration:
		return "Name is already declared in this scope"
	case ErrorGeneric:
		return "Compilation error"
	case ErrorInvalidCharacter:
		return "Character is not valid in source code"
	case ErrorInvalidNumber:
		return "Numeric literal is malformed"
	case ErrorUnterminatedString:
		return "String literal is not closed"
	case ErrorUnexpectedToken:
		return "Token does not fit the grammar here"
	case ErrorImportNotFound:
		return "Imported module was not found in any search directory"
	case ErrorFileAccess:
		return "Source file could not be read"
	case ErrorProjectConfig:
		return "Project file is invalid"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Scope"
	case code >= "E0100" && code < "E0110":
		return "Lexer"
	case code >= "E0110" && code < "E0200":
		return "Parser"
	case code >= "E0300" && code < "E0400":
		return "Import/Module"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
