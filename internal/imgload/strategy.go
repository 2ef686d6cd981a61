package imgload

import "strings"

// Strategy is the terminal fallback drawn once every attempt has failed.
type Strategy string

const (
	StrategyIcon        Strategy = "icon"
	StrategyInitial     Strategy = "initial"
	StrategyPlaceholder Strategy = "placeholder"
)

// ParseStrategy maps a name to a strategy. Unknown and empty names mean icon.
func ParseStrategy(s string) Strategy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "initial", "initial-letter":
		return StrategyInitial
	case "placeholder", "placeholder-box":
		return StrategyPlaceholder
	}
	return StrategyIcon
}

// Phase is the state of one image instance.
type Phase int

const (
	Loading Phase = iota
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "loading"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
