package backend

// InputKind discriminates the two kinds of data a source emits.
type InputKind uint8

const (
	KindSample InputKind = iota
	KindHeadings
)

// Sample is one raw observation from a data source. Raw keeps the
// source's textual form untouched: the graph core decides whether it
// parses, and a cell that doesn't becomes a gap rather than an error.
type Sample struct {
	TimestampSec float64
	Series       int
	Raw          string
}

// InputData is one message from a data source: either the series
// headings (sent once, before any samples) or a single sample.
type InputData struct {
	Kind InputKind
	Sample
	Headings      []string
	HeadingSeries []int
}

// Mode describes where a session's data comes from.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeLive
	ModeReplaying
)
