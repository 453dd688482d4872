package monitor

import (
	"strconv"
	"strings"
)

// Evaluate returns the turbines whose staged temperature meets or exceeds
// threshold, ascending. A turbine with no staged temperature never breaches.
// Pure: same staging always yields the same set.
func Evaluate(staging *StagingArea, turbineCount int, threshold float64) []int {
	var breaching []int
	for id := 1; id <= turbineCount; id++ {
		temp, ok := staging.Temperature(id)
		if !ok {
			continue
		}
		if temp >= threshold {
			breaching = append(breaching, id)
		}
	}
	return breaching
}

type Path int

const (
	NormalPath Path = iota
	AlertPath
)

func (p Path) String() string {
	if p == AlertPath {
		return "alert"
	}
	return "normal"
}

// Decision is the cycle's branch outcome. Exactly one path holds.
type Decision struct {
	Path      Path
	Breaching []int
}

// Payload renders the breaching turbine ids for the alert message.
func (d Decision) Payload() string {
	ids := make([]string, 0, len(d.Breaching))
	for _, id := range d.Breaching {
		ids = append(ids, strconv.Itoa(id))
	}
	return strings.Join(ids, ", ")
}

func Decide(breaching []int) Decision {
	if len(breaching) == 0 {
		return Decision{Path: NormalPath}
	}
	return Decision{Path: AlertPath, Breaching: breaching}
}
