package sheets

type Status uint8

const (
	Stale Status = iota
	// evaluation in progress; reaching a Computing entry again means a cycle
	Computing
	Clean
	Errored
)

func (s Status) String() string {
	switch s {
	case Stale:
		return "stale"
	case Computing:
		return "computing"
	case Clean:
		return "clean"
	case Errored:
		return "errored"
	}
	return "invalid"
}
