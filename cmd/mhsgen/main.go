// Command mhsgen loads a hypergraph, runs one of the SHD-family
// engines over it, and writes the resulting minimal hitting sets back
// out.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/diagx/mhsgen"
	"github.com/diagx/mhsgen/engine"
	"github.com/diagx/mhsgen/hypergraph"
	"github.com/diagx/mhsgen/internal/logging"
	"github.com/diagx/mhsgen/internal/metrics"
	"github.com/diagx/mhsgen/internal/signalctx"
)

// usageError signals invalid invocation: bad flag values, wrong
// positional argument count. Reported to the caller as exit code 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// unimplementedAlgorithmError is raised for --algorithm values outside
// the SHD family (berge, bm, fka): accepted by the flag parser to keep
// the full set of algorithm names recognized, rejected here rather
// than at parse time.
type unimplementedAlgorithmError struct{ algorithm string }

func (e *unimplementedAlgorithmError) Error() string {
	return fmt.Sprintf("--algorithm %s is not implemented by this core (SHD family only: mmcs, pmmcs, rs, prs)", e.algorithm)
}

type options struct {
	algorithm   string
	numThreads  int
	cutoffSize  int
	verbosity   int
	metricsAddr string

	// log overrides the logger built from verbosity. Left nil in
	// production; tests set it to a hook-backed logger so they can
	// assert on what the driver logs.
	log logrus.FieldLogger
}

// countingAlgorithm is what the driver needs beyond engine.Algorithm:
// access to the run's advisory counters for the summary log line and
// the Prometheus export.
type countingAlgorithm interface {
	engine.Algorithm
	Counters() *engine.Counters
}

func newRootCmd() *cobra.Command {
	return newCmd(&options{})
}

func newCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mhsgen <input> <output>",
		Short: "Enumerate minimal hitting sets of a hypergraph",
		Long: "mhsgen reads a hypergraph from <input>, computes its minimal hitting sets\n" +
			"with the MMCS or RS search engine, and writes the result to <output>.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return &usageError{"expects exactly two positional arguments: <input> <output>"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.algorithm, "algorithm", "pmmcs", "search engine: mmcs, pmmcs, rs, prs (berge, bm, fka are recognized but not implemented)")
	flags.IntVar(&o.numThreads, "num-threads", 1, "worker pool size for opportunistic task forking")
	flags.IntVar(&o.cutoffSize, "cutoff-size", 0, "reject candidate hitting sets larger than this many vertices (0 means unlimited)")
	flags.IntVar(&o.verbosity, "verbosity", 0, "log verbosity: 0 (warn), 1 (debug), 2 (trace)")
	flags.StringVar(&o.metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) for the duration of the run")

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		defaultHelp(c, args)
		os.Exit(1)
	})

	return cmd
}

func run(cmd *cobra.Command, o *options, inputPath, outputPath string) error {
	algo := strings.ToLower(o.algorithm)
	switch algo {
	case "mmcs", "pmmcs", "rs", "prs":
	case "berge", "bm", "fka":
		return &unimplementedAlgorithmError{algo}
	default:
		return &usageError{fmt.Sprintf("unknown --algorithm %q", o.algorithm)}
	}
	if o.numThreads < 1 {
		return &usageError{"--num-threads must be at least 1"}
	}
	if o.cutoffSize < 0 {
		return &usageError{"--cutoff-size must not be negative"}
	}

	log := o.log
	if log == nil {
		l, err := logging.New(o.verbosity)
		if err != nil {
			return &usageError{err.Error()}
		}
		log = l
	}

	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg)
	if o.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: o.metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
		defer srv.Close()
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	h, err := hypergraph.Load(in)
	if err != nil {
		return fmt.Errorf("loading hypergraph: %w", err)
	}
	log.Infof("loaded hypergraph: %d vertices, %d edges", h.NumVerts(), h.NumEdges())

	var eng countingAlgorithm
	switch algo {
	case "mmcs", "pmmcs":
		eng = mhsgen.NewMMCS(o.numThreads, o.cutoffSize, log)
	case "rs", "prs":
		eng = mhsgen.NewRS(o.numThreads, o.cutoffSize, log)
	}

	log.Infof("running %s with %d threads, cutoff-size %d", algo, o.numThreads, o.cutoffSize)
	// signalctx.Context() is passed for the conventional call shape and
	// so a second SIGINT/SIGTERM still hard-exits the process; the
	// search itself never checks it and always runs to completion (see
	// engine.Algorithm).
	result, err := eng.Transversal(signalctx.Context(), h)
	if err != nil {
		return fmt.Errorf("computing transversal: %w", err)
	}

	iterations, violators, updateLoops, criticalFails := eng.Counters().Snapshot()
	log.WithFields(logrus.Fields{
		"iterations":     iterations,
		"violators":      violators,
		"update_loops":   updateLoops,
		"critical_fails": criticalFails,
		"hitting_sets":   result.NumEdges(),
	}).Infof("%s complete", algo)
	metrics.RecordRun(algo, iterations, violators, updateLoops, criticalFails, result.NumEdges())

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	if err := hypergraph.Write(out, result); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

func main() {
	if len(os.Args) == 1 {
		cmd := newRootCmd()
		cmd.Help()
		os.Exit(1)
	}

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mhsgen:", err)
		os.Exit(2)
	}
}
