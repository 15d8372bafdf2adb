package errors

import (
	stderrors "errors"
	"fmt"
)

/*
* Error codes convey which part of a lookup went wrong. Only configuration and
* linking errors are ever returned to a caller of the caching resolver; the
* remaining codes describe failures of the underlying resolvers and are logged
* and absorbed before they reach the caller.
 */

const (

	// Cache bounds or backend selection are invalid. Fatal.
	InvalidConfiguration ErrCode = 1

	// The caching resolver was used before a resolver was linked to it.
	NotLinked ErrCode = 2

	// The underlying resolver failed (network, protocol, backend).
	ResolutionFailed ErrCode = 3

	// The name could not be normalised.
	InvalidName ErrCode = 4

	// The underlying resolver does not know the name.
	NameNotFound ErrCode = 5
)

var codeText = map[ErrCode]string{
	InvalidConfiguration: "invalid configuration",
	NotLinked:            "resolver not linked",
	ResolutionFailed:     "resolution failed",
	InvalidName:          "invalid name",
	NameNotFound:         "name not found",
}

// ResolverError implements the Error interface.
type ResolverError struct {
	Name         string  `json:"name,omitempty"`
	Function     string  `json:"-"`
	ErrorCode    ErrCode `json:"errorCode"`
	ErrorMessage string  `json:"errorDetail"`
	Err          error   `json:"-"`
}

type ErrCode uint8

func (c ErrCode) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return fmt.Sprintf("error code %d", uint8(c))
}

func (e ResolverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.ErrorMessage, e.Err)
	}
	return e.ErrorMessage
}

func (e ResolverError) Unwrap() error {
	return e.Err
}

// New returns a coded error for the given name. Name may be empty when the
// error is not about a particular lookup.
func New(name string, function string, errCode ErrCode, errMessage string) error {
	return &ResolverError{
		Name:         name,
		Function:     function,
		ErrorCode:    errCode,
		ErrorMessage: errMessage,
	}
}

// Wrap is New with an underlying cause, retrievable with errors.Unwrap.
func Wrap(name string, function string, errCode ErrCode, err error) error {
	return &ResolverError{
		Name:         name,
		Function:     function,
		ErrorCode:    errCode,
		ErrorMessage: errCode.String(),
		Err:          err,
	}
}

// HasCode reports whether any ResolverError in err's chain carries code.
func HasCode(err error, code ErrCode) bool {
	var re *ResolverError
	for err != nil {
		if !stderrors.As(err, &re) {
			return false
		}
		if re.ErrorCode == code {
			return true
		}
		err = re.Err
	}
	return false
}
