// Package cli implements cmctl, the operator command line for the
// cryptomobile engine.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/logger"
	"cryptomobile/internal/suite"
)

var Version = "dev"

const (
	keyMaxBits   = "max_message_bits"
	keyJWTSecret = "jwt_secret"
	keyJWTTTL    = "jwt_expires_in"
)

// app carries what the subcommands share. A fresh one is built per root
// command so tests can run several trees side by side.
type app struct {
	cfgFile string
	verbose bool
	v       *viper.Viper
	log     *zap.SugaredLogger
}

// NewRootCmd builds the full cmctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop().Sugar()}
	root := &cobra.Command{
		Use:   "cmctl",
		Short: "3GPP and GSM confidentiality, integrity and authentication primitives",
		Long: `cmctl runs the KASUMI, SNOW 3G, ZUC, AES, COMP128 and Keccak-p[1600]
primitives on hex input and produces or checks test vector files.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.cmctl.yaml)")
	pf.BoolVar(&a.verbose, "verbose", false, "debug logging on stderr")
	pf.Int("max-bits", bits.DefaultMaxBits, "largest message accepted, in bits")
	cobra.CheckErr(a.v.BindPFlag(keyMaxBits, pf.Lookup("max-bits")))

	root.AddCommand(
		a.cipherCmd(),
		a.macCmd(),
		a.comp128Cmd(),
		a.keccakCmd(),
		a.vectorsCmd(),
		a.tokenCmd(),
	)
	return root
}

// Execute is called by main.main.
func Execute() {
	cobra.CheckErr(NewRootCmd().Execute())
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig() error {
	a.log = logger.Console(a.verbose)
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".cmctl")
	}
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
		return nil
	}
	a.log.Debugw("using config file", "path", a.v.ConfigFileUsed())
	return nil
}

func (a *app) engine() suite.Engine {
	return suite.Engine{Limit: bits.Limit{MaxBits: a.v.GetInt(keyMaxBits)}}
}
