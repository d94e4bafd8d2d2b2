package common

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cheggaaa/pb/v3"
	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-electionguard/crypto/dlog"
	"github.com/thechriswalker/go-electionguard/crypto/elgamal"
	"github.com/thechriswalker/go-electionguard/crypto/group"
	"github.com/thechriswalker/go-electionguard/internal/config"
)

var cfg = config.Default()

// SetConfig is called once by the root command before any subcommand runs.
func SetConfig(c *config.Config) { cfg = c }

// Config is the loaded configuration.
func Config() *config.Config { return cfg }

// OpenTable builds a discrete log cache, loading the snapshot from the
// configured database if there is one. The returned function saves the table
// back and closes the database.
func OpenTable() (*dlog.Cache, func() error, error) {
	table := dlog.New(cfg.DLog.MaxExponent)
	if cfg.DLog.Database == "" {
		return table, func() error { return nil }, nil
	}
	store, err := dlog.NewSQLiteStore(cfg.DLog.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Load(table); err != nil {
		store.Close()
		return nil, nil, err
	}
	log.Debug().Uint64("frontier", table.Frontier()).Str("db", cfg.DLog.Database).Msg("discrete log table loaded")
	return table, func() error {
		defer store.Close()
		return store.Save(table)
	}, nil
}

// KeyFile is the on disk form of a key pair and its proof of knowledge.
type KeyFile struct {
	Secret     string `toml:"secret,omitempty"`
	Public     string `toml:"public"`
	Commitment string `toml:"commitment"`
	Challenge  string `toml:"challenge"`
	Response   string `toml:"response"`
}

// NewKeyFile proves knowledge of the key and packs it for saving.
func NewKeyFile(kp *elgamal.KeyPair, seed *group.ElementModQ) *KeyFile {
	proof := kp.ProveKnowledge(seed)
	return &KeyFile{
		Secret:     kp.Secret().Hex(),
		Public:     kp.Public().Hex(),
		Commitment: proof.Commitment.Hex(),
		Challenge:  proof.Challenge.Hex(),
		Response:   proof.Response.Hex(),
	}
}

func (kf *KeyFile) Save(path string) error {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer fd.Close()
	return toml.NewEncoder(fd).Encode(kf)
}

// LoadKeyFile reads a key file and checks the proof of knowledge.
func LoadKeyFile(path string) (*KeyFile, error) {
	kf := &KeyFile{}
	if _, err := toml.DecodeFile(path, kf); err != nil {
		return nil, err
	}
	proof, err := kf.Proof()
	if err != nil {
		return nil, fmt.Errorf("key file %s: %w", path, err)
	}
	if err := proof.Verify(); err != nil {
		return nil, fmt.Errorf("key file %s: %w", path, err)
	}
	return kf, nil
}

func (kf *KeyFile) PublicKey() (*group.ElementModP, error) {
	pk, err := group.ElementModPFromHex(kf.Public)
	if err != nil {
		return nil, err
	}
	return pk.WithFixedBase(true), nil
}

// KeyPair needs the secret to be present in the file.
func (kf *KeyFile) KeyPair() (*elgamal.KeyPair, error) {
	if kf.Secret == "" {
		return nil, fmt.Errorf("key file has no secret")
	}
	secret, err := group.ElementModQFromHex(kf.Secret)
	if err != nil {
		return nil, err
	}
	pk, err := kf.PublicKey()
	if err != nil {
		return nil, err
	}
	return elgamal.KeyPairFromPair(secret, pk)
}

func (kf *KeyFile) Proof() (*elgamal.SchnorrProof, error) {
	var err error
	p := &elgamal.SchnorrProof{}
	if p.PublicKey, err = kf.PublicKey(); err != nil {
		return nil, err
	}
	if p.Commitment, err = group.ElementModPFromHex(kf.Commitment); err != nil {
		return nil, err
	}
	if p.Challenge, err = group.ElementModQFromHex(kf.Challenge); err != nil {
		return nil, err
	}
	if p.Response, err = group.ElementModQFromHex(kf.Response); err != nil {
		return nil, err
	}
	return p, nil
}

type maybeProgress struct {
	bar *pb.ProgressBar
}

// MaybeProgress shows a progress bar for long jobs only.
func MaybeProgress(n int) *maybeProgress {
	mp := &maybeProgress{}
	if n > 1000 {
		mp.bar = pb.ProgressBarTemplate(`{{string . "prefix"}}{{counters . }} {{bar . }} {{percent . }} {{speed . }} {{etime . }}`).New(n)
		mp.bar.SetRefreshRate(time.Second)
	}
	return mp
}

func (mp *maybeProgress) Start() {
	if mp.bar != nil {
		mp.bar.Start()
	}
}

func (mp *maybeProgress) SetCurrent(n int64) {
	if mp.bar != nil {
		mp.bar.SetCurrent(n)
	}
}

func (mp *maybeProgress) Finish() {
	if mp.bar != nil {
		mp.bar.Finish()
	}
}
