package main

import (
	"errors"
	"os"

	"github.com/ykonishi/scriptweaver"
	"github.com/ykonishi/scriptweaver/internal/config"
	"github.com/ykonishi/scriptweaver/internal/textread"
)

// Exit codes for shell scripting. Validation failures get a dedicated
// code so wrappers can distinguish "bad document" from "broken tool".
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitIO         = 3
	ExitValidation = 4
)

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, scriptweaver.ErrCriticalValidation):
		return ExitValidation
	case errors.Is(err, scriptweaver.ErrValidationDisabled),
		errors.Is(err, scriptweaver.ErrEmptyContent),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrEmptyConfigName):
		return ExitUsage
	case errors.Is(err, textread.ErrUnsupportedFormat),
		errors.Is(err, textread.ErrSizeLimit),
		errors.Is(err, textread.ErrEncodingDetection),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIO
	default:
		return ExitGeneral
	}
}
