package mailer

import "errors"

// ErrParseTemplates встроенные шаблоны не разобрались
var ErrParseTemplates = errors.New("mailer.service: failed to parse templates")
