package dataset

import "fmt"

// Dim identifies a dimension axis. It is a small closed enumeration,
// per spec §3 ("Small closed enumeration of dimension identifiers").
type Dim uint8

// The closed set of dimension labels. Invalid is the zero value and is
// never a valid entry in a Dimensions value.
const (
	Invalid Dim = iota
	X
	Y
	Z
	Tof
	MonitorTof
	Q
	Spectrum
	Detector
	Event
	Row
	Component
	Time
)

var dimNames = [...]string{
	Invalid:    "Invalid",
	X:          "X",
	Y:          "Y",
	Z:          "Z",
	Tof:        "Tof",
	MonitorTof: "MonitorTof",
	Q:          "Q",
	Spectrum:   "Spectrum",
	Detector:   "Detector",
	Event:      "Event",
	Row:        "Row",
	Component:  "Component",
	Time:       "Time",
}

// String returns the Dim's canonical name, or Dim(<n>) for an
// out-of-range value.
func (d Dim) String() string {
	if int(d) < len(dimNames) {
		return dimNames[d]
	}
	return fmt.Sprintf("Dim(%d)", uint8(d))
}
