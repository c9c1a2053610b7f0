package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/comp128"
	"cryptomobile/internal/keccak"
	"cryptomobile/internal/suite"
	"cryptomobile/internal/util"
)

type frameFlags struct {
	key       string
	count     string
	fresh     string
	bearer    uint32
	direction uint32
	nbits     int
	data      string
}

func (f *frameFlags) register(cmd *cobra.Command, withFresh bool) {
	fl := cmd.Flags()
	fl.StringVarP(&f.key, "key", "k", "", "128-bit key in hex")
	fl.StringVarP(&f.count, "count", "c", "0", "32-bit COUNT, decimal or 0x hex")
	fl.Uint32VarP(&f.bearer, "bearer", "b", 0, "5-bit BEARER")
	fl.Uint32VarP(&f.direction, "direction", "d", 0, "DIRECTION bit")
	fl.IntVarP(&f.nbits, "bits", "n", -1, "message length in bits (default: every bit of --data)")
	fl.StringVar(&f.data, "data", "", "message in hex, or plain text")
	if withFresh {
		fl.StringVar(&f.fresh, "fresh", "0", "32-bit FRESH for UIA1 and UIA2")
	}
	_ = cmd.MarkFlagRequired("key")
}

func parseWord(name, s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return uint32(v), nil
}

func (f *frameFlags) decode() (suite.Params, bits.Message, error) {
	key, err := util.DecodeHex(f.key)
	if err != nil {
		return suite.Params{}, bits.Message{}, fmt.Errorf("--key: %w", err)
	}
	p := suite.Params{Key: key, Bearer: f.bearer, Direction: f.direction}
	if p.Count, err = parseWord("count", f.count); err != nil {
		return suite.Params{}, bits.Message{}, err
	}
	if p.Fresh, err = parseWord("fresh", f.fresh); err != nil {
		return suite.Params{}, bits.Message{}, err
	}

	dataHex, err := util.ToHex(f.data)
	if err != nil {
		return suite.Params{}, bits.Message{}, err
	}
	data, err := hex.DecodeString(dataHex)
	if err != nil {
		return suite.Params{}, bits.Message{}, fmt.Errorf("--data: %w", err)
	}
	msg := bits.FromBytes(data)
	if f.nbits >= 0 {
		msg.Bits = f.nbits
	}
	return p, msg, nil
}

func (a *app) cipherCmd() *cobra.Command {
	var f frameFlags
	cmd := &cobra.Command{
		Use:   "cipher <algorithm>",
		Short: "Encrypt or decrypt one frame",
		Long: `Apply a confidentiality algorithm to one frame and print the result in hex.
The algorithms are their own inverse, so the same command decrypts.`,
		Example:   "  cmctl cipher EEA3 --key 173d14ba5003731d7a60049470f00a29 --count 0x66035492 --bearer 15 --data 6cf65340735552ab0c9752fa6f9025fe0bd675d9005875b2",
		Args:      cobra.ExactArgs(1),
		ValidArgs: suite.Ciphers(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, msg, err := f.decode()
			if err != nil {
				return err
			}
			a.log.Debugw("cipher", "algorithm", args[0], "bits", msg.Bits)
			out, err := a.engine().Cipher(args[0], p, msg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

func (a *app) macCmd() *cobra.Command {
	var f frameFlags
	cmd := &cobra.Command{
		Use:       "mac <algorithm>",
		Short:     "Compute the 32-bit MAC of one message",
		Example:   "  cmctl mac EIA3 --key 00000000000000000000000000000000 --bits 1 --data 00",
		Args:      cobra.ExactArgs(1),
		ValidArgs: suite.MACs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, msg, err := f.decode()
			if err != nil {
				return err
			}
			a.log.Debugw("mac", "algorithm", args[0], "bits", msg.Bits)
			mac, err := a.engine().MAC(args[0], p, msg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(mac[:]))
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func (a *app) comp128Cmd() *cobra.Command {
	var ki, rnd string
	cmd := &cobra.Command{
		Use:       "comp128 <v1|v2|v3>",
		Short:     "Run a COMP128 variant and print SRES and Kc",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"v1", "v2", "v3"},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := comp128.ParseVariant(args[0])
			if err != nil {
				return err
			}
			k, err := util.DecodeHex(ki)
			if err != nil {
				return fmt.Errorf("--ki: %w", err)
			}
			r, err := util.DecodeHex(rnd)
			if err != nil {
				return fmt.Errorf("--rand: %w", err)
			}
			sres, kc, err := a.engine().Auth(k, r, v)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SRES = %x\nKc = %x\n", sres, kc)
			return nil
		},
	}
	cmd.Flags().StringVar(&ki, "ki", "", "128-bit subscriber key in hex")
	cmd.Flags().StringVar(&rnd, "rand", "", "128-bit challenge in hex")
	_ = cmd.MarkFlagRequired("ki")
	_ = cmd.MarkFlagRequired("rand")
	return cmd
}

func (a *app) keccakCmd() *cobra.Command {
	var state string
	var rounds int
	cmd := &cobra.Command{
		Use:   "keccak",
		Short: "Apply Keccak-p[1600] to a 200-byte state",
		Long: `Apply the 24-round Keccak-p[1600] permutation to a 200-byte state given in
hex. An empty --state means the all-zero state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := make([]byte, keccak.StateSize)
			if state != "" {
				var err error
				if st, err = util.DecodeHex(state); err != nil {
					return fmt.Errorf("--state: %w", err)
				}
			}
			if rounds < 1 {
				return fmt.Errorf("--iterations must be at least 1")
			}
			eng := a.engine()
			for i := 0; i < rounds; i++ {
				var err error
				if st, err = eng.Permute(st); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(st))
			return nil
		},
	}
	cmd.Flags().StringVarP(&state, "state", "s", "", "200-byte state in hex")
	cmd.Flags().IntVarP(&rounds, "iterations", "i", 1, "number of times to apply the permutation")
	return cmd
}
