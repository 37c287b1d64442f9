package fql

// options holds behaviour switches shared by the builder, validator and
// query entry points.
type options struct {
	strictEnums     bool
	negateNotEquals bool
}

// Option configures a pipeline call.
type Option func(*options)

// WithStrictEnums rejects enum values that are not listed in the column's
// EnumValues. Columns without EnumValues accept any string.
func WithStrictEnums() Option {
	return func(o *options) {
		o.strictEnums = true
	}
}

// WithNegatedNotEquals makes "!=", "NOT EQUALS" and "NOT EQUAL" build a
// negated equals condition instead of a bare one.
func WithNegatedNotEquals() Option {
	return func(o *options) {
		o.negateNotEquals = true
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
