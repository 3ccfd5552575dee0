package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marcapi/internal/service"
)

type convertOptions struct {
	format string
	in     string
	out    string
}

func newConvertCmd(root *rootOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a saved Dados_marc payload",
		Example: `  marcconv convert --format xml --in record.xml --out record.marcxml
  curl -s ... | marcconv convert --format mrc > record.mrc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := root.logger(cmd)
			if err != nil {
				return err
			}
			enc, err := parseFormat(opts.format)
			if err != nil {
				return err
			}

			payload, err := readInput(cmd.InOrStdin(), opts.in)
			if err != nil {
				return err
			}
			body, err := service.Render(string(payload), enc)
			if err != nil {
				log.Error("convert_failed", zap.String("error_code", service.ErrorCode(err)), zap.Error(err))
				return err
			}
			log.Debug("converted", zap.String("format", opts.format), zap.Int("bytes", len(body)))
			return writeOutput(cmd.OutOrStdout(), opts.out, body)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "mrc", "output format: mrc, xml or mrk")
	cmd.Flags().StringVarP(&opts.in, "in", "i", "-", "payload file, - for stdin")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return b, nil
}
