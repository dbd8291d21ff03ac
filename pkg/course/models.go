package course

import "time"

// ClassType distinguishes lectures from lab sessions.
type ClassType string

const (
	Theory ClassType = "THEORY"
	Lab    ClassType = "LAB"
)

// Label returns the name the course service uses for this class type.
func (t ClassType) Label() string {
	if t == Lab {
		return "Travaux pratiques"
	}
	return "Cours"
}

// Parity says how often a period recurs within the term's day numbering.
type Parity string

const (
	Weekly   Parity = "WEEKLY"
	OddDays  Parity = "ODD_DAYS"
	EvenDays Parity = "EVEN_DAYS"
)

// Period is a merged contiguous meeting block spanning one or more raw
// one-hour slots.
type Period struct {
	Room   string
	Day    string // French weekday name as given by the service, e.g. "Lundi"
	Parity Parity

	// StartsAt and EndsAt carry a time of day only (zero date). EndsAt is
	// StartsAt plus one hour per merged slot.
	StartsAt time.Time
	EndsAt   time.Time
}

// rawBlock is one hour-long scheduled slot before contiguity merging.
type rawBlock struct {
	room         string
	day          string
	parity       string
	periodNumber int64  // decoded from the service's base-16 slot index
	startTime    string // e.g. "08H30"
}

// CourseGroup describes one (course, class type, group number) unit as
// returned by the course service. It is built once by the loader and never
// mutated afterwards.
//
// The detail fields are pointers so that a field absent from the source
// document (nil) stays distinguishable from one present but empty.
type CourseGroup struct {
	Sigil string
	Type  ClassType
	Group int

	Title               *string
	Level               *string
	Credits             float64
	WeeklyTheoryHours   float64
	WeeklyLabHours      float64
	WeeklyHomeworkHours float64
	Department          *string
	InCharge            *string
	Description         *string
	Note                *string
	Prerequisites       *string
	Corequisites        *string
	DocumentationURL    *string
	WebsiteURL          *string

	Teachers []string // display names, "First Last"
	Periods  []Period
}
