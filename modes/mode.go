package modes

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	// development mode turns on the sheet invariant checks
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	}
	return "unknown"
}

func (m Mode) CheckInvariants() bool {
	return m == ModeDevelopment
}
