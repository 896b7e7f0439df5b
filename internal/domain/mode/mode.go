package mode

// Mode is the content visibility policy applied to classified records.
// It is pure configuration; there are no transitions between modes.
type Mode string

// Filter mode constants.
const (
	// Safe admits only unflagged records.
	Safe Mode = "safe"
	// Moderate blocks explicit and violent records, admits mild.
	Moderate Mode = "moderate"
	// Unrestricted admits everything.
	Unrestricted Mode = "unrestricted"
	// NSFWOnly admits only flagged records.
	NSFWOnly Mode = "nsfw-only"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Safe || m == Moderate || m == Unrestricted || m == NSFWOnly
}
