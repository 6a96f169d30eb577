package orchestrator

import "github.com/go-playground/validator/v10"

// paramValidate is the shared validator instance for every tool's
// parameter struct, mirroring a package-level chatValidate instance
// used for validating chat request structs.
var paramValidate = validator.New()
