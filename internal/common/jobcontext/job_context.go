package jobcontext

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Context is a Go context that also carries the logger of the job it belongs to, so that every
// phase of a run logs with the same fields without threading a logger through every call.
type Context struct {
	context.Context
	Log *logrus.Entry
}

// Background creates an empty context logging through the standard logrus logger.
// It is analogous to context.Background()
func Background() *Context {
	return &Context{
		Context: context.Background(),
		Log:     logrus.NewEntry(logrus.StandardLogger()),
	}
}

// New returns a job context that encapsulates both a go context and a logger
func New(ctx context.Context, log *logrus.Entry) *Context {
	return &Context{
		Context: ctx,
		Log:     log,
	}
}

// WithCancel returns a copy of parent with a new Done channel. It is analogous to context.WithCancel()
func WithCancel(parent *Context) (*Context, context.CancelFunc) {
	c, cancel := context.WithCancel(parent.Context)
	return &Context{
		Context: c,
		Log:     parent.Log,
	}, cancel
}

// WithTimeout returns a copy of parent that is done after timeout. A non-positive timeout means no timeout,
// in which case the returned context is only cancelled through the returned CancelFunc.
func WithTimeout(parent *Context, timeout time.Duration) (*Context, context.CancelFunc) {
	if timeout <= 0 {
		return WithCancel(parent)
	}
	c, cancel := context.WithTimeout(parent.Context, timeout)
	return &Context{
		Context: c,
		Log:     parent.Log,
	}, cancel
}

// WithLogField returns a copy of parent with the supplied key-value added to the logger
func WithLogField(parent *Context, key string, val interface{}) *Context {
	return &Context{
		Context: parent.Context,
		Log:     parent.Log.WithField(key, val),
	}
}

// WithLogFields returns a copy of parent with the supplied key-values added to the logger
func WithLogFields(parent *Context, fields logrus.Fields) *Context {
	return &Context{
		Context: parent.Context,
		Log:     parent.Log.WithFields(fields),
	}
}
