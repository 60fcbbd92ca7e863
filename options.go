package columndb

type options struct {
	logger          *Logger
	verifyChecksums bool
}

func defaultOptions() options {
	return options{
		logger:          NoopLogger(),
		verifyChecksums: true,
	}
}

// Option configures Database construction.
type Option func(*options)

// WithLogger configures the logger used for schema and persistence
// operations. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithVerifyChecksums controls whether LoadFrom verifies the header and
// file checksums of version 2 files. Verification is on by default; it
// has no effect on version 1 files, which carry reserved-zero checksums.
func WithVerifyChecksums(verify bool) Option {
	return func(o *options) {
		o.verifyChecksums = verify
	}
}
