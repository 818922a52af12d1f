package webdriver

// config holds the session settings assembled from Options before the
// Session is created.
type config struct {
	transport Transport
	connOpts  []ConnOption
	logf      func(string, ...interface{})
	errf      func(string, ...interface{})
	verbose   bool
}

func defaultConfig() *config {
	return &config{
		logf: defaultLogf,
		errf: defaultErrf,
	}
}

// Option is a session configuration option, passed to New.
type Option func(*config)

// WithTransport is an Option to dispatch commands through the provided
// Transport instead of an HTTP Conn built from the endpoint URL.
func WithTransport(t Transport) Option {
	return func(c *config) { c.transport = t }
}

// WithConnOptions is an Option to configure the HTTP Conn the session
// creates. It has no effect when combined with WithTransport.
func WithConnOptions(opts ...ConnOption) Option {
	return func(c *config) { c.connOpts = append(c.connOpts, opts...) }
}

// WithLogf is an Option to route informational output through f.
func WithLogf(f func(string, ...interface{})) Option {
	return func(c *config) { c.logf = f }
}

// WithErrorf is an Option to route error output through f. The implicit
// best-effort session cleanup reports its failures here and nowhere else.
func WithErrorf(f func(string, ...interface{})) Option {
	return func(c *config) { c.errf = f }
}

// WithDebug is an Option to log every command and response status through
// the session's log func.
func WithDebug() Option {
	return func(c *config) { c.verbose = true }
}
