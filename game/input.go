package game

import "fmt"

// Input is what a player did during one tick. The set is closed.
type Input uint8

const (
	InputNone Input = iota
	InputJump
	InputDuck
	InputUnduck
)

func (in Input) String() string {
	switch in {
	case InputNone:
		return "None"
	case InputJump:
		return "Jump"
	case InputDuck:
		return "Duck"
	case InputUnduck:
		return "Unduck"
	default:
		return fmt.Sprintf("Input(%d)", uint8(in))
	}
}

// ParseInput maps the wire name of an input back to its value.
func ParseInput(s string) (Input, error) {
	switch s {
	case "None":
		return InputNone, nil
	case "Jump":
		return InputJump, nil
	case "Duck":
		return InputDuck, nil
	case "Unduck":
		return InputUnduck, nil
	}
	return InputNone, fmt.Errorf("unknown input %q", s)
}

func (in Input) MarshalText() ([]byte, error) {
	if in > InputUnduck {
		return nil, fmt.Errorf("invalid input %d", uint8(in))
	}
	return []byte(in.String()), nil
}

func (in *Input) UnmarshalText(b []byte) error {
	v, err := ParseInput(string(b))
	if err != nil {
		return err
	}
	*in = v
	return nil
}
