package docstore

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var transientCodes = map[codes.Code]bool{
	codes.Aborted:           true,
	codes.DeadlineExceeded:  true,
	codes.Internal:          true,
	codes.ResourceExhausted: true,
	codes.Unavailable:       true,
}

// IsTransient reports whether err is worth retrying, i.e. it carries a gRPC code that signals a temporary
// condition on the server side. An aggregate of errors is transient only if all of its errors are.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		if len(merr.Errors) == 0 {
			return false
		}
		for _, e := range merr.Errors {
			if !IsTransient(e) {
				return false
			}
		}
		return true
	}
	return transientCodes[status.Code(err)]
}
