package dom

import "errors"

var ErrParse = errors.New("dom: failed to parse document")
