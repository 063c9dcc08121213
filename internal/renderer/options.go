package renderer

import "strconv"

// Options are the recognized renderer pass-through options. Each field maps
// to exactly one renderer flag:
//
//	Samples  -> --samples <n>   (omitted when zero)
//	Verbose  -> --verbose       (omitted when false)
//	LogLevel -> --log-level <s> (omitted when empty, forwarded verbatim)
//
// There is deliberately no open-ended key/value passthrough; anything the
// renderer should receive gets a named field here.
type Options struct {
	Samples  int
	Verbose  bool
	LogLevel string
}

// Args returns the option flags in a fixed order.
func (o Options) Args() []string {
	var args []string
	if o.Samples > 0 {
		args = append(args, "--samples", strconv.Itoa(o.Samples))
	}
	if o.Verbose {
		args = append(args, "--verbose")
	}
	if o.LogLevel != "" {
		args = append(args, "--log-level", o.LogLevel)
	}
	return args
}
