package guest

import (
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/secmon-lab/greetr/pkg/domain/model/lang"
	"gopkg.in/yaml.v3"
)

// Guest is one person to be greeted by the roster command. Empty names and
// language fall back to the greeter defaults.
type Guest struct {
	FirstName string    `yaml:"first_name" json:"first_name"`
	LastName  string    `yaml:"last_name" json:"last_name"`
	Lang      lang.Lang `yaml:"lang,omitempty" json:"lang,omitempty"`
	Formal    bool      `yaml:"formal,omitempty" json:"formal,omitempty"`
	Login     bool      `yaml:"login,omitempty" json:"login,omitempty"`
}

type Roster struct {
	Guests []Guest `yaml:"guests"`
}

// Load decodes a roster document. Languages are not validated here; the
// greeter validates each guest when it is greeted.
func Load(r io.Reader) (*Roster, error) {
	var roster Roster
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&roster); err != nil {
		if err == io.EOF {
			return &roster, nil
		}
		return nil, goerr.Wrap(err, "failed to parse roster", goerr.T(errs.TagInvalidRequest))
	}
	return &roster, nil
}
