package main

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	segments "github.com/luhtfiimanal/go-cache-segments"
)

// fileConfig is the optional TOML file given with --config. Flags that are
// set explicitly win over it.
type fileConfig struct {
	Log      string `toml:"log"`
	Sync     *bool  `toml:"sync"`
	LogLevel string `toml:"log_level"`
}

type settings struct {
	logPath  string
	sync     bool
	logLevel string
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	s.logPath, _ = cmd.Flags().GetString("log")
	s.sync, _ = cmd.Flags().GetBool("sync")
	s.logLevel, _ = cmd.Flags().GetString("log-level")

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(cfgPath, &fc); err != nil {
			return s, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		if fc.Log != "" && !cmd.Flags().Changed("log") {
			s.logPath = fc.Log
		}
		if fc.Sync != nil && !cmd.Flags().Changed("sync") {
			s.sync = *fc.Sync
		}
		if fc.LogLevel != "" && !cmd.Flags().Changed("log-level") {
			s.logLevel = fc.LogLevel
		}
	}
	if s.logPath == "" {
		return s, fmt.Errorf("a history log path is required (--log or config)")
	}
	return s, nil
}

// parseBound accepts RFC3339 or a bare date; empty means unbounded.
func parseBound(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, v); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC3339 or YYYY-MM-DD", v)
	}
	return ts, nil
}

func rangeFlags(cmd *cobra.Command) (segments.Range[int64], error) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	from, err := parseBound(fromStr)
	if err != nil {
		return segments.Range[int64]{}, err
	}
	to, err := parseBound(toStr)
	if err != nil {
		return segments.Range[int64]{}, err
	}
	return segments.TimeRange(from, to)
}

func formatRange(r segments.Range[int64]) string {
	from, to := segments.RangeTimes(r)
	f, t := "-", "-"
	if !from.IsZero() {
		f = from.Format(time.RFC3339)
	}
	if !to.IsZero() {
		t = to.Format(time.RFC3339)
	}
	return f + "\t" + t
}

func printRanges(out io.Writer, rs []segments.Range[int64]) {
	for _, r := range rs {
		fmt.Fprintln(out, formatRange(r))
	}
}

type runner struct {
	out    io.Writer
	logger *logrus.Logger
}

func (r *runner) openLog(cmd *cobra.Command, writer bool) (*segments.HistoryLog[int64], error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	if s.logLevel != "" {
		lvl, err := logrus.ParseLevel(s.logLevel)
		if err != nil {
			return nil, err
		}
		r.logger.SetLevel(lvl)
	}

	opts := segments.DefaultLogOptions()
	opts.SyncOnAppend = s.sync
	opts.Lock = writer
	opts.Logger = r.logger
	return segments.OpenHistoryLogWithOptions[int64](s.logPath, segments.Int64Codec{}, opts)
}

func (r *runner) record(cmd *cobra.Command, _ []string) error {
	seg, err := rangeFlags(cmd)
	if err != nil {
		return err
	}
	hl, err := r.openLog(cmd, true)
	if err != nil {
		return err
	}
	defer hl.Close()

	m, err := hl.Load()
	if err != nil {
		return err
	}
	tr := segments.NewTracker(m, segments.TrackerOptions[int64]{Store: hl, Logger: r.logger})
	next, err := tr.Record(seg)
	if err != nil {
		return err
	}
	r.logger.WithField("segment", formatRange(seg)).Info("segment recorded")
	printRanges(r.out, next.Segments)
	return nil
}

func (r *runner) missing(cmd *cobra.Command, _ []string) error {
	req, err := rangeFlags(cmd)
	if err != nil {
		return err
	}
	hl, err := r.openLog(cmd, false)
	if err != nil {
		return err
	}
	defer hl.Close()

	m, err := hl.Load()
	if err != nil {
		return err
	}
	gaps, err := segments.GetMissingSegments(&m, req)
	if err != nil {
		return err
	}
	printRanges(r.out, gaps)
	return nil
}

func (r *runner) show(cmd *cobra.Command, _ []string) error {
	hl, err := r.openLog(cmd, false)
	if err != nil {
		return err
	}
	defer hl.Close()

	m, err := hl.Load()
	if err != nil {
		return err
	}
	printRanges(r.out, m.Segments)
	fmt.Fprintf(r.out, "%d segments, %d history entries\n", len(m.Segments), len(m.SegmentHistory))
	return nil
}

func newRootCommand(out io.Writer, logger *logrus.Logger) *cobra.Command {
	r := &runner{out: out, logger: logger}

	rootCmd := &cobra.Command{
		Use:          "segcache",
		Short:        "Inspect and update a segment history log",
		Long:         "segcache records fetched time ranges in a history log and reports which parts of a request are still missing.",
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().String("log", "", "History log path")
	rootCmd.PersistentFlags().String("config", "", "TOML config file (log, sync, log_level)")
	rootCmd.PersistentFlags().Bool("sync", true, "Fsync the log after every record")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record a fetched range (empty bound = unbounded)",
		RunE:  r.record,
	}
	recordCmd.Flags().String("from", "", "Inclusive start, RFC3339 or YYYY-MM-DD")
	recordCmd.Flags().String("to", "", "Exclusive end, RFC3339 or YYYY-MM-DD")
	rootCmd.AddCommand(recordCmd)

	missingCmd := &cobra.Command{
		Use:   "missing",
		Short: "Print the parts of a range that are not cached yet",
		RunE:  r.missing,
	}
	missingCmd.Flags().String("from", "", "Inclusive start, RFC3339 or YYYY-MM-DD (required)")
	missingCmd.Flags().String("to", "", "Exclusive end, RFC3339 or YYYY-MM-DD (required)")
	_ = missingCmd.MarkFlagRequired("from")
	_ = missingCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(missingCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the cached segments",
		RunE:  r.show,
	})
	return rootCmd
}
