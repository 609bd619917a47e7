package lang

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
)

// Lang is a language code selecting a row of the phrase tables.
type Lang string

const (
	English Lang = "en"
	Spanish Lang = "es"

	Default Lang = English
)

var supported = []Lang{English, Spanish}

// Supported returns the supported language codes in table order.
func Supported() []Lang {
	return append([]Lang(nil), supported...)
}

func (l Lang) String() string {
	return string(l)
}

func (l Lang) IsSupported() bool {
	for _, s := range supported {
		if l == s {
			return true
		}
	}
	return false
}

// OrDefault returns Default for an empty code and the code itself otherwise.
// It does not validate.
func (l Lang) OrDefault() Lang {
	if l == "" {
		return Default
	}
	return l
}

func (l Lang) Validate() error {
	if !l.IsSupported() {
		return goerr.Wrap(errs.ErrInvalidLanguage, "unsupported language",
			goerr.V("lang", string(l)),
			goerr.V("supported", supported),
			goerr.T(errs.TagValidation))
	}
	return nil
}
