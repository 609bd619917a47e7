package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// Client errors (4xx)
	TagValidation     = goerr.NewTag("validation")      // 400
	TagInvalidRequest = goerr.NewTag("invalid_request") // 400

	// Server errors (5xx)
	TagInternal    = goerr.NewTag("internal")    // 500
	TagExternal    = goerr.NewTag("external")    // 502
	TagUnavailable = goerr.NewTag("unavailable") // 503
)
