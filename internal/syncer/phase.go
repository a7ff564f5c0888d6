package syncer

// Phase is a step of a sync run. A run moves through Idle, Clearing, Querying and Writing to Done,
// or ends in Failed from whichever phase it was in when an error occurred.
type Phase int

const (
	Idle Phase = iota
	Clearing
	Querying
	Writing
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Clearing:
		return "clearing"
	case Querying:
		return "querying"
	case Writing:
		return "writing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
