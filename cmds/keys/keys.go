package keys

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-electionguard/cmds/common"
	"github.com/thechriswalker/go-electionguard/crypto/elgamal"
	"github.com/thechriswalker/go-electionguard/crypto/group"
)

// Register the key commands
func Register(rootCmd *cobra.Command) {
	var keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "ElGamal key pairs",
	}
	rootCmd.AddCommand(keysCmd)

	var out string
	var seedHex string
	var purpose string

	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Create a key pair with a proof of knowledge of the secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kp *elgamal.KeyPair
			seed := group.RandQ()
			if seedHex != "" {
				var err error
				if seed, err = group.ElementModQFromHex(seedHex); err != nil {
					return fmt.Errorf("--seed: %w", err)
				}
				kp = elgamal.DeriveKeyPair(seed, purpose)
			} else {
				kp = elgamal.GenerateKeyPair()
			}
			if err := common.NewKeyFile(kp, seed).Save(out); err != nil {
				return err
			}
			log.Info().Str("file", out).Str("public", kp.Public().Hex()[:16]).Msg("key pair written")
			return nil
		},
	}
	generateCmd.Flags().StringVar(&out, "out", "key.toml", "File to write the key pair to")
	generateCmd.Flags().StringVar(&seedHex, "seed", "", "Derive the key from this hex seed instead of generating it")
	generateCmd.Flags().StringVar(&purpose, "purpose", "enc", "Purpose label for derived keys")

	var showCmd = &cobra.Command{
		Use:   "show [file]",
		Short: "Check a key file and print its public half",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kf, err := common.LoadKeyFile(args[0])
			if err != nil {
				return err
			}
			if kf.Secret != "" {
				if _, err := kf.KeyPair(); err != nil {
					return err
				}
			}
			log.Info().Str("file", args[0]).Msg("proof of knowledge valid")
			fmt.Fprintf(cmd.OutOrStdout(), "public = %q\n", kf.Public)
			return nil
		},
	}

	keysCmd.AddCommand(generateCmd, showCmd)
}
