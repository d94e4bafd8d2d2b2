package chaumpedersen

import (
	"time"
)

const (
	testTimeout = time.Minute
	testTick    = 10 * time.Millisecond
)

func sameDisjunctive(a, b *DisjunctiveProof) bool {
	return a.ProofZeroPad.Equal(b.ProofZeroPad) &&
		a.ProofZeroData.Equal(b.ProofZeroData) &&
		a.ProofOnePad.Equal(b.ProofOnePad) &&
		a.ProofOneData.Equal(b.ProofOneData) &&
		a.ProofZeroChallenge.Equal(b.ProofZeroChallenge) &&
		a.ProofOneChallenge.Equal(b.ProofOneChallenge) &&
		a.Challenge.Equal(b.Challenge) &&
		a.ProofZeroResponse.Equal(b.ProofZeroResponse) &&
		a.ProofOneResponse.Equal(b.ProofOneResponse)
}

func sameConstant(a, b *ConstantProof) bool {
	return a.Pad.Equal(b.Pad) &&
		a.Data.Equal(b.Data) &&
		a.Challenge.Equal(b.Challenge) &&
		a.Response.Equal(b.Response) &&
		a.Constant == b.Constant
}
