package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"marcapi/internal/config"
	"marcapi/internal/logging"
	"marcapi/internal/marc"
)

type rootOptions struct {
	logLevel string
	cfg      *config.AppConfig
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: config.Load()}

	cmd := &cobra.Command{
		Use:          "marcconv",
		Short:        "Convert Pergamum catalogue records to MARC",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	cmd.AddCommand(newConvertCmd(opts), newFetchCmd(opts))
	return cmd
}

// logger writes JSON logs to the command's stderr so stdout stays free for record output.
func (o *rootOptions) logger(cmd *cobra.Command) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), o.cfg.Location()).
		WithOptions(zap.IncreaseLevel(lvl)).
		Named("marcconv"), nil
}

func parseFormat(s string) (marc.Encoder, error) {
	enc, err := marc.EncoderFor(marc.Format(s))
	if err != nil {
		return nil, fmt.Errorf("%w %q (want mrc, xml or mrk)", err, s)
	}
	return enc, nil
}

// writeOutput writes body to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, body []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(body)
		return err
	}
	return os.WriteFile(path, body, 0o644)
}
