package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/config"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/gridlearn/gridlearn/experiment"
	"github.com/gridlearn/gridlearn/export"
	"github.com/gridlearn/gridlearn/utils/progressbar"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()
	if err := newRootCommand().Execute(); err != nil {
		klog.Flush()
		os.Exit(1)
	}
}

// inputs are the flags shared by every command
type inputs struct {
	grid       string
	configFile string
	envFile    string
	algorithm  string
}

func (in *inputs) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.grid, "grid", "", "Path of the grid file")
	cmd.Flags().StringVar(&in.configFile, "config", "",
		"Path of a YAML configuration file")
	cmd.Flags().StringVar(&in.envFile, "env", "",
		"Path of a .env file with GRIDLEARN_* variables")
	cmd.Flags().StringVar(&in.algorithm, "algorithm", "",
		"Algorithm to train when no configuration file is given "+
			"(qlearning or sarsa)")
	cmd.MarkFlagRequired("grid")
}

// load reads the grid and the configuration and validates them by
// building a session
func (in *inputs) load(opts ...experiment.Option) (*experiment.Session,
	error) {
	var (
		cfg    experiment.Config
		bounds experiment.Bounds
		err    error
	)
	if in.configFile != "" {
		cfg, bounds, err = config.Load(in.configFile)
		if err != nil {
			return nil, err
		}
	} else {
		alg := agent.Type(in.algorithm)
		if alg == "" {
			alg = agent.QLearning
		}
		cfg = experiment.DefaultConfig(alg)
	}
	if err := config.ApplyEnv(&cfg, in.envFile); err != nil {
		return nil, err
	}

	grid, err := gridworld.LoadFile(in.grid)
	if err != nil {
		return nil, err
	}
	return experiment.NewSession(cfg, bounds, grid, opts...)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "gridlearn",
		Short:        "Tabular Q-Learning and SARSA on text gridworlds",
		SilenceUsage: true,
	}

	fs := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(fs)
	root.PersistentFlags().AddGoFlagSet(fs)

	root.AddCommand(newTrainCommand(), newValidateCommand())
	return root
}

func newTrainCommand() *cobra.Command {
	var (
		in         inputs
		out        string
		progress   bool
		printTable bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an agent on a grid and export its value table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("train: %w", err)
			}

			trace := export.NewTraceFile(filepath.Join(out, "trace.txt"))
			defer func() {
				if err := trace.Close(); err != nil {
					klog.ErrorS(err, "Could not close trace file")
				}
			}()

			opts := []experiment.Option{
				experiment.WithTableSink(export.NewTableFiles(out)),
				experiment.WithTraceSink(trace),
				experiment.WithCheckpointDir(filepath.Join(out, "checkpoints")),
			}
			if printTable {
				table := export.NewTableWriter(cmd.OutOrStdout())
				opts = append(opts, experiment.WithTableSink(table))
			}
			var bar *progressbar.Observer
			if progress {
				bar = progressbar.NewObserver(cmd.OutOrStdout(), 40)
				opts = append(opts, experiment.WithObserver(bar))
			}

			s, err := in.load(opts...)
			if err != nil {
				return err
			}

			cells := filepath.Join(out, "cells.json")
			if err := export.WriteDescriptorsFile(cells, s.Grid()); err != nil {
				klog.ErrorS(err, "Could not export cell descriptors",
					"path", cells)
			}

			if s.Config().CheckpointEvery > 0 {
				dir := filepath.Join(out, "checkpoints")
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("train: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			report, runErr := s.Run(ctx)
			if bar != nil {
				bar.Close()
			}
			printReport(cmd.OutOrStdout(), report)
			if runErr != nil && ctx.Err() == context.Canceled {
				klog.InfoS("Training cancelled", "run", s.ID())
				return nil
			}
			return runErr
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&out, "out", ".", "Directory receiving exports")
	cmd.Flags().BoolVar(&progress, "progress", true, "Display a progress bar")
	cmd.Flags().BoolVar(&printTable, "print-table", false,
		"Print the value table exports to standard output")
	return cmd
}

func newValidateCommand() *cobra.Command {
	var in inputs

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a grid and a configuration without training",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := in.load()
			if err != nil {
				return err
			}
			rows, cols := s.Grid().Dims()
			c := s.Config()
			fmt.Fprintf(cmd.OutOrStdout(), "grid %dx%d, start %v, goal %v, "+
				"max steps %d\n", rows, cols, s.Grid().Start(), s.Grid().Goal(),
				s.MaxSteps())
			fmt.Fprintf(cmd.OutOrStdout(), "%v for %d episodes: lr=%v γ=%v "+
				"ε=%v (%v %v, floor %v)\n", c.Algorithm, c.Episodes,
				c.LearningRate, c.DiscountFactor, c.InitialExplorationRate,
				c.ExplorationDecay.Mode, c.ExplorationDecay.Rate,
				c.ExplorationFloor)
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func printReport(w io.Writer, r experiment.Report) {
	fmt.Fprintf(w, "Run %v (%v)\n", r.RunID, r.Algorithm)
	fmt.Fprintf(w, "Episodes: %d, successes: %d, step limit: %d, "+
		"cycles: %d\n", r.Episodes, r.Count(experiment.Succeeded),
		r.Count(experiment.TruncatedByStepLimit),
		r.Count(experiment.TruncatedByCycle))
	fmt.Fprintf(w, "Mean episode length: %.2f, mean return: %.2f, "+
		"final ε: %.4f, elapsed: %v\n", r.MeanEpisodeLength, r.MeanReturn,
		r.Epsilon, r.Elapsed)
	for _, s := range r.Successes {
		fmt.Fprintf(w, "  episode %d: %d steps\n", s.Episode, s.Steps)
	}

	if r.Replay == nil {
		return
	}
	if r.Replay.ReachedGoal {
		fmt.Fprintf(w, "Greedy policy reaches the goal in %d steps:",
			r.Replay.Steps)
	} else {
		fmt.Fprintf(w, "Greedy policy does not reach the goal within %d "+
			"steps:", r.Replay.Steps)
	}
	for _, a := range r.Replay.Actions {
		fmt.Fprintf(w, " %v", a)
	}
	fmt.Fprintln(w)
}
