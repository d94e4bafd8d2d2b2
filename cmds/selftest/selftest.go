package selftest

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-electionguard/cmds/common"
	"github.com/thechriswalker/go-electionguard/crypto/chaumpedersen"
	"github.com/thechriswalker/go-electionguard/crypto/elgamal"
	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/crypto/precompute"
)

// Register the selftest command
func Register(rootCmd *cobra.Command) {
	var selections int
	var usePrecompute bool

	var selftestCmd = &cobra.Command{
		Use:   "selftest",
		Short: "Encrypt, prove, verify and decrypt a simulated contest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, done, err := common.OpenTable()
			if err != nil {
				return err
			}
			var buf *precompute.Buffer
			if usePrecompute {
				buf = precompute.NewBuffer()
			}
			start := time.Now()
			if err := Run(selections, table, buf); err != nil {
				return err
			}
			log.Info().Dur("elapsed", time.Since(start)).Msg("selftest passed")
			return done()
		},
	}
	selftestCmd.Flags().IntVar(&selections, "selections", 10, "Number of selections in the simulated contest")
	selftestCmd.Flags().BoolVar(&usePrecompute, "precompute", false, "Encrypt and prove with precomputed values")

	rootCmd.AddCommand(selftestCmd)
}

// Run encrypts a contest of alternating 0 and 1 selections under a fresh key,
// proves and verifies every selection and the total, decrypts the total by
// single key and by threshold, and round trips a hashed ElGamal payload.
// If buf is not nil it is initialized for the key and used for the encryptions.
func Run(selections int, table elgamal.DiscreteLog, buf *precompute.Buffer) error {
	kp := elgamal.GenerateKeyPair()
	k := kp.Public()
	q := group.RandQ()
	seed := group.RandQ()

	if buf != nil {
		buf.Initialize(k, selections)
		if err := buf.Start(); err != nil {
			return err
		}
		defer buf.Clear()
	}

	cts := make([]*elgamal.Ciphertext, selections)
	total := group.ZeroModQ()
	expected := uint64(0)
	precomputed := 0
	for i := range cts {
		m := uint64(i % 2)
		expected += m
		var proof *chaumpedersen.DisjunctiveProof
		var r *group.ElementModQ
		var err error
		var unit *precompute.TwoTriplesAndAQuadruple
		ok := false
		if buf != nil {
			unit, ok = buf.GetTwoTriplesAndAQuadruple()
		}
		if ok {
			precomputed++
			r = unit.Triple1().Exp()
			cts[i] = elgamal.EncryptWithTriple(m, unit.Triple1())
			proof, err = chaumpedersen.NewDisjunctiveProofPrecomputed(cts[i], unit, q, m)
		} else {
			r = group.RandQRange(1)
			if cts[i], err = elgamal.Encrypt(m, r, k); err != nil {
				return err
			}
			proof, err = chaumpedersen.NewDisjunctiveProofSeeded(cts[i], r, k, q, seed, m)
		}
		if err != nil {
			return err
		}
		if !proof.IsValid(cts[i], k, q) {
			return fmt.Errorf("selection %d: disjunctive proof did not verify", i)
		}
		total = group.AddModQ(total, r)
	}
	log.Debug().Int("selections", selections).Int("precomputed", precomputed).Msg("selections encrypted and proven")

	sum, err := elgamal.Add(cts...)
	if err != nil {
		return err
	}
	constant := chaumpedersen.NewConstantProof(sum, total, k, seed, q, expected, buf)
	if !constant.IsValid(sum, k, q) {
		return fmt.Errorf("constant proof did not verify")
	}

	got, err := sum.Decrypt(kp.Secret(), table)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("decrypted total %d, expected %d", got, expected)
	}
	partial := sum.PartialDecrypt(kp.Secret())
	if !chaumpedersen.NewProof(sum, kp.Secret(), partial, seed, q).IsValid(sum, k, partial, q) {
		return fmt.Errorf("decryption proof did not verify")
	}

	if err := thresholdRoundTrip(expected, table); err != nil {
		return err
	}

	payload := []byte(fmt.Sprintf("write-in for contest with %d selections", selections))
	hct, err := elgamal.HashedEncrypt(payload, group.RandQRange(1), k, seed, elgamal.HashedOptions{MaxLength: 62, AllowTruncation: true, Precomputed: buf})
	if err != nil {
		return err
	}
	plain, err := hct.Decrypt(kp.Secret(), seed, true)
	if err != nil {
		return err
	}
	if !bytes.Equal(plain, payload) {
		return fmt.Errorf("hashed elgamal round trip mismatch")
	}
	return nil
}

// thresholdRoundTrip encrypts the total under a 2 of 3 shared key and decrypts
// it from two partial decryptions.
func thresholdRoundTrip(expected uint64, table elgamal.DiscreteLog) error {
	poly := elgamal.NewPolynomial(group.RandQ(), 1)
	jointKey := poly.Commitments()[0].WithFixedBase(true)
	ct, err := elgamal.Encrypt(expected, group.RandQRange(1), jointKey)
	if err != nil {
		return err
	}
	partials := map[uint64]*group.ElementModP{
		1: ct.PartialDecrypt(poly.Evaluate(1)),
		3: ct.PartialDecrypt(poly.Evaluate(3)),
	}
	shared, err := elgamal.CombinePartialDecryptions(partials)
	if err != nil {
		return err
	}
	got, err := ct.DecryptWithSharedSecret(shared, table)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("threshold decrypted %d, expected %d", got, expected)
	}
	return nil
}
