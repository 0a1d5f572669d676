package host

import (
	_ "embed"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed deck.yaml
var defaultDeckYAML []byte

var ErrEmptyDeck = errors.New("deck has no scenarios")

// Deck is the host's script: the prompts it draws rounds from and the
// fixed lines that frame the show.
type Deck struct {
	Opening   string   `yaml:"opening"`
	WrapUp    string   `yaml:"wrap_up"`
	Scenarios []string `yaml:"scenarios"`
	Feedback  []string `yaml:"feedback"`
}

// DefaultDeck returns the embedded deck.
func DefaultDeck() Deck {
	var d Deck
	// The embedded file is checked at test time; a parse failure here
	// would mean a broken build, so the error is ignored.
	_ = yaml.Unmarshal(defaultDeckYAML, &d)
	return d
}

// LoadDeck reads a deck from a YAML file, filling unset fields from the
// embedded default.
func LoadDeck(path string) (Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, err
	}
	d := DefaultDeck()
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Deck{}, err
	}
	if len(d.Scenarios) == 0 {
		return Deck{}, ErrEmptyDeck
	}
	return d, nil
}
