package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"marcapi/internal/marc"
	"marcapi/internal/pergamum"
	"marcapi/internal/repository"
	"marcapi/internal/service"
)

type fetchOptions struct {
	baseURL     string
	ids         []int64
	format      string
	out         string
	dir         string
	concurrency int
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	opts := &fetchOptions{}
	pcfg := root.cfg.Pergamum

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch records from a Pergamum web service and convert them",
		Example: `  marcconv fetch --url https://lib.example.edu --id 42 --format mrk
  marcconv fetch --url https://lib.example.edu --id 1,2,3 --format mrc --dir out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := root.logger(cmd)
			if err != nil {
				return err
			}
			if len(opts.ids) == 0 {
				return errors.New("at least one --id is required")
			}
			if len(opts.ids) > 1 && opts.dir == "" {
				return errors.New("--dir is required when fetching more than one id")
			}
			if _, err := parseFormat(opts.format); err != nil {
				return err
			}

			clients := pergamum.NewRegistry(pergamum.SOAPFactory(pergamum.Options{
				Namespace: pcfg.SOAPNamespace,
				Timeout:   pcfg.Timeout,
			}), pcfg.AllowedHosts)
			svc := service.NewConversionService(clients, repository.NopConversionRepository{}, nil, log)

			convert := func(id int64) (*service.ConversionResult, error) {
				res, err := svc.Convert(cmd.Context(), service.ConversionRequest{
					BaseURL: opts.baseURL,
					ID:      id,
					Format:  marc.Format(opts.format),
				})
				if err != nil {
					return nil, fmt.Errorf("record %d: %w", id, err)
				}
				return res, nil
			}

			if opts.dir == "" {
				res, err := convert(opts.ids[0])
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), opts.out, res.Body)
			}

			if err := os.MkdirAll(opts.dir, 0o755); err != nil {
				return err
			}
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(opts.concurrency, 1))
			for _, id := range opts.ids {
				g.Go(func() error {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					res, err := convert(id)
					if err != nil {
						return err
					}
					path := filepath.Join(opts.dir, res.Filename)
					if err := os.WriteFile(path, res.Body, 0o644); err != nil {
						return err
					}
					log.Info("record_written", zap.Int64("record_id", id), zap.String("path", path))
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&opts.baseURL, "url", "u", "", "Pergamum installation base URL")
	cmd.Flags().Int64SliceVar(&opts.ids, "id", nil, "catalogue entry id, repeatable or comma separated")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "mrc", "output format: mrc, xml or mrk")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "-", "output file for a single id, - for stdout")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory receiving {id}.{ext} files")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "parallel requests when fetching several ids")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
