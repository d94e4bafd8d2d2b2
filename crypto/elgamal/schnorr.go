package elgamal

import (
	"errors"

	"github.com/hashicorp/go-multierror"

	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/hash"
	"github.com/thechriswalker/go-electionguard/crypto/nonces"
)

// SchnorrProof proves knowledge of the secret key behind a public key, based on
// https://tools.ietf.org/html/rfc8235
//
// commitment h = G^u, challenge c = H(K, h), response v = u + c*s
type SchnorrProof struct {
	PublicKey  *group.ElementModP `json:"public_key"`
	Commitment *group.ElementModP `json:"commitment"`
	Challenge  *group.ElementModQ `json:"challenge"`
	Response   *group.ElementModQ `json:"response"`
}

// ProveKnowledge creates the proof, with the commitment exponent derived from the
// seed so the same seed gives the same proof.
func (kp *KeyPair) ProveKnowledge(seed *group.ElementModQ) *SchnorrProof {
	u := nonces.New(seed, "schnorr-proof").Get(0)
	h := group.GPowP(u)
	c := hash.HashElems(kp.public, h)
	return &SchnorrProof{
		PublicKey:  kp.public,
		Commitment: h,
		Challenge:  c,
		Response:   group.APlusBCModQ(u, c, kp.secret),
	}
}

// Verify checks the proof. Every failed check is reported in the returned error.
func (p *SchnorrProof) Verify() error {
	var result *multierror.Error
	if !p.PublicKey.IsValidResidue() {
		result = multierror.Append(result, errors.New("public key is not a valid residue"))
	}
	if !p.Commitment.IsValidResidue() {
		result = multierror.Append(result, errors.New("commitment is not a valid residue"))
	}
	if !p.Challenge.IsInBounds() || !p.Response.IsInBounds() {
		result = multierror.Append(result, errors.New("challenge or response out of bounds"))
		// the checks below would panic on nil values
		return result.ErrorOrNil()
	}
	if !p.Challenge.Equal(hash.HashElems(p.PublicKey, p.Commitment)) {
		result = multierror.Append(result, errors.New("challenge does not match commitment"))
	}
	// G^v == h * K^c
	if p.PublicKey != nil && p.Commitment != nil {
		lhs := group.GPowP(p.Response)
		rhs := group.MulModP(p.Commitment, group.PowModP(p.PublicKey, p.Challenge))
		if !lhs.Equal(rhs) {
			result = multierror.Append(result, errors.New("G^response != commitment * K^challenge"))
		}
	}
	return result.ErrorOrNil()
}
