package solver

// Action is a player decision.
type Action uint8

const (
	Stand Action = iota
	Hit
	Double
	Split
)

// actionCount sizes per-action arrays.
const actionCount = 4

// Actions lists every action in evaluation order. Ties keep the earlier one.
var Actions = [actionCount]Action{Stand, Double, Split, Hit}

func (a Action) String() string {
	switch a {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Code returns the one-letter chart code.
func (a Action) Code() byte {
	switch a {
	case Stand:
		return 'S'
	case Hit:
		return 'H'
	case Double:
		return 'D'
	case Split:
		return 'P'
	}
	panic(invariantf("action in range", "action=%d", a))
}

// ParseCode maps a chart code back to its action.
func ParseCode(code byte) (Action, bool) {
	switch code {
	case 'S':
		return Stand, true
	case 'H':
		return Hit, true
	case 'D':
		return Double, true
	case 'P':
		return Split, true
	}
	return 0, false
}

// Result is the best action for a state and its expected value in units of
// the original bet.
type Result struct {
	EV     float64 `json:"ev"`
	Action Action  `json:"action"`
}

// Option is one action's value; Legal is false when the rules or the state
// do not offer it.
type Option struct {
	EV    float64
	Legal bool
}

// Evaluation holds every action's value for a state.
type Evaluation struct {
	State   PlayerState
	Options [actionCount]Option
	Best    Result
}

// Option returns the value of a.
func (e Evaluation) Option(a Action) Option {
	if int(a) >= actionCount {
		panic(invariantf("action in range", "action=%d", a))
	}
	return e.Options[a]
}
