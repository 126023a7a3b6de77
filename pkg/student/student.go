package student

// Student is the subject whose schedule and suggestions are being computed.
type Student struct {
	Id          string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	// Timezone is an IANA name used when formatting suggestion output.
	Timezone string
	// ActivityMinutes is the default desired activity duration for
	// suggestion requests that do not specify one.
	ActivityMinutes int
}
