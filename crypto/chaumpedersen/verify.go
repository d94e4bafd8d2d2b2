package chaumpedersen

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-electionguard/crypto/group"
)

// ErrInvalidProof is wrapped by every verification failure.
var ErrInvalidProof = errors.New("Chaum-Pedersen proof invalid")

// checks collects the named failures of a verification.
type checks struct {
	kind   string
	result *multierror.Error
}

func newChecks(kind string) *checks {
	return &checks{kind: kind}
}

func (c *checks) require(ok bool, format string, args ...interface{}) bool {
	if !ok {
		c.result = multierror.Append(c.result, fmt.Errorf("%w: %s: %s", ErrInvalidProof, c.kind, fmt.Sprintf(format, args...)))
	}
	return ok
}

// residues checks every named element is a valid residue. The names and values
// alternate.
func (c *checks) residues(namesAndValues ...interface{}) bool {
	ok := true
	for i := 0; i+1 < len(namesAndValues); i += 2 {
		e, _ := namesAndValues[i+1].(*group.ElementModP)
		ok = c.require(e.IsValidResidue(), "%s is not a valid residue", namesAndValues[i]) && ok
	}
	return ok
}

// inBounds checks every named element is in [0, Q)
func (c *checks) inBounds(namesAndValues ...interface{}) bool {
	ok := true
	for i := 0; i+1 < len(namesAndValues); i += 2 {
		e, _ := namesAndValues[i+1].(*group.ElementModQ)
		ok = c.require(e.IsInBounds(), "%s is out of bounds", namesAndValues[i]) && ok
	}
	return ok
}

func (c *checks) err() error {
	return c.result.ErrorOrNil()
}

// logInvalid reports a failed verification: the failures at info level and the
// proof values at debug level.
func logInvalid(kind string, err error, values func(e *zerolog.Event) *zerolog.Event) {
	log.Info().Str("proof", kind).Err(err).Msg("proof is invalid")
	if values == nil {
		return
	}
	if e := log.Debug(); e.Enabled() {
		values(e.Str("proof", kind)).Msg("invalid proof values")
	}
}

// hexOrNil is for logging values that may be missing.
func hexOrNil(e interface{ Hex() string }) string {
	switch v := e.(type) {
	case *group.ElementModP:
		if v == nil {
			return "<nil>"
		}
	case *group.ElementModQ:
		if v == nil {
			return "<nil>"
		}
	}
	return e.Hex()
}
