package component

// Logger is a simple logger interface accepting key-value pair parameters.
type Logger interface {
	// Logs an info message.
	Info(msg string, keysAndValues ...interface{})
	// Logs an error.
	Error(err error, msg string, keysAndValues ...interface{})
}

// Options contains the options shared by the components of this package.
type Options struct {
	// Sets the Logger to use to log state transitions and hook failures. If
	// nil, the logging messages are discarded.
	Logger Logger
}

func (o Options) copy() *Options {
	return &o
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return &Options{}
	}
	return o.copy()
}
