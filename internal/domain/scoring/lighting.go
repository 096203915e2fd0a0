package scoring

// Condition names the lighting regime a photographer cares about.
type Condition string

const (
	Night      Condition = "Night"
	BlueHour   Condition = "Blue Hour"
	GoldenHour Condition = "Golden Hour"
	Daytime    Condition = "Daytime"
)

// ConditionFor maps the sun's elevation in degrees to a lighting regime.
// The golden hour band deliberately extends below the horizon: light stays
// warm for a short while after the sun has set.
func ConditionFor(elevation float64) Condition {
	switch {
	case elevation < -6:
		return Night
	case elevation < -4:
		return BlueHour
	case elevation < 6:
		return GoldenHour
	default:
		return Daytime
	}
}

func (c Condition) String() string {
	return string(c)
}
