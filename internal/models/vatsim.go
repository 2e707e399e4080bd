package models

// VatsimHours are the member's offline totals in fractional hours.
type VatsimHours struct {
	Pilot      float64
	Controller float64
	// Raw is nil when no request was made, the decoded body on success,
	// or a small diagnostic map on failure.
	Raw interface{}
	// Failed is set when a request was made but yielded no usable totals.
	Failed bool
}
