package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinytoy-sec/MpamParser/pkg/config"
	"github.com/tinytoy-sec/MpamParser/pkg/log"
	"github.com/tinytoy-sec/MpamParser/pkg/mpamhelper"
	"github.com/tinytoy-sec/MpamParser/pkg/visitors"
)

// newRootCmd builds the command tree. Flags override values from the
// environment and the .env file.
func newRootCmd() *cobra.Command {
	var (
		envFile string
		cfg     config.Config
	)

	root := &cobra.Command{
		Use:   "mpamhelper <file> [command [args]]...",
		Short: "Inspect ACPI MPAM tables.",
		Long: "mpamhelper parses an ACPI MPAM table, raw or xz/lzma compressed or " +
			"extracted to a directory, and runs the given commands over it.\n\n" +
			"Commands:\n" + visitors.ListCLI(),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(envFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("verify-checksum") {
				cfg.VerifyChecksum = loaded.VerifyChecksum
			}
			if !flags.Changed("partial") {
				cfg.Partial = loaded.Partial
			}
			if !flags.Changed("xz-path") {
				cfg.XZPath = loaded.XZPath
			}
			if !flags.Changed("quiet") {
				cfg.Quiet = loaded.Quiet
			}
			if cfg.Quiet {
				log.DefaultLogger = log.Quiet(log.DefaultLogger)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return mpamhelper.Run(cfg, args...)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "file with MPAM_* settings")
	pf.BoolVar(&cfg.VerifyChecksum, "verify-checksum", false, "reject tables with a bad checksum")
	pf.BoolVar(&cfg.Partial, "partial", false, "keep the nodes before a malformed node")
	pf.StringVar(&cfg.XZPath, "xz-path", "xz", "system xz command used for encoding")
	pf.BoolVar(&cfg.Quiet, "quiet", false, "only log warnings and errors")

	root.AddCommand(newSynthCmd(&cfg))
	return root
}

func newSynthCmd(cfg *config.Config) *cobra.Command {
	var compress bool
	cmd := &cobra.Command{
		Use:   "synth <output>",
		Short: "Write a sample MPAM table with two cache and three memory MSCs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := mpamhelper.WriteSynth(*cfg, args[0], compress); err != nil {
				return fmt.Errorf("synth: %w", err)
			}
			log.Infof("wrote %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&compress, "xz", false, "compress the table with xz")
	return cmd
}
