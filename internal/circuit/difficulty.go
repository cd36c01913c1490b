package circuit

// Difficulty labels are case-sensitive. Anything unrecognised plays as
// Researcher.
type Difficulty string

const (
	Observer   Difficulty = "observer"
	Researcher Difficulty = "researcher"
	Theorist   Difficulty = "theorist"
)

func ParseDifficulty(label string) Difficulty {
	switch d := Difficulty(label); d {
	case Observer, Researcher, Theorist:
		return d
	default:
		return Researcher
	}
}

func Difficulties() []Difficulty {
	return []Difficulty{Observer, Researcher, Theorist}
}

func (d Difficulty) Valid() bool {
	switch d {
	case Observer, Researcher, Theorist:
		return true
	}
	return false
}
