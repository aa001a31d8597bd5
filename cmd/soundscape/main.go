package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"soundscape/internal/ambience"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		seed     uint64
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "soundscape",
		Short: "Play an ambient soundscape until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ambience.ConfigFromEnv()
			if seed != 0 {
				cfg.Seed = seed
			}

			out, err := ambience.NewOutput()
			if err != nil {
				return fmt.Errorf("audio init: %w", err)
			}

			session := ambience.NewSession(cfg, ambience.DefaultSources(out))
			session.Init()
			session.Start()
			defer session.Close()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

			if duration > 0 {
				select {
				case <-sig:
				case <-time.After(duration):
				}
			} else {
				<-sig
			}

			session.Stop()
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = derive from clock)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 = run until interrupted)")
	return cmd
}
