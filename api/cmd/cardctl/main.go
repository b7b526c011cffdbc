package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cardscan/api/internal/config"
	"cardscan/api/internal/logging"
	"cardscan/api/internal/ocr"
	"cardscan/api/internal/ocr/types"
	"cardscan/api/internal/util"
	"cardscan/api/internal/vcard"
)

type rootOptions struct {
	provider string
	region   string
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "cardctl",
		Short:         "Scan business card images and build vCards from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.provider, "provider", "", "LLM provider: gpt or gemini (overrides LLM_PROVIDER)")
	cmd.PersistentFlags().StringVar(&opts.region, "region", "", "default phone region (overrides PHONE_DEFAULT_REGION)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")

	cmd.AddCommand(newExtractCommand(opts))
	cmd.AddCommand(newVCFCommand(opts))
	return cmd
}

func newExtractCommand(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Run the card pipeline on an image and print the contact as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			img, err := util.EncodeImage(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if opts.provider != "" {
				_ = os.Setenv("LLM_PROVIDER", opts.provider)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			engines, err := ocr.NewEngines(c.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = engines.Close() }()
			engine, err := engines.GetEngine(cfg.LLMProvider)
			if err != nil {
				return err
			}

			rec, err := ocr.NewScanner(engine, logger).Scan(c.Context(), img)
			if err != nil {
				return err
			}
			logger.Debug("extracted", zap.String("name", rec.Name))

			if err := printJSON(c.OutOrStdout(), rec); err != nil {
				return err
			}
			if out == "" {
				return nil
			}
			if rec.Name == "" {
				_, err := fmt.Fprintln(c.ErrOrStderr(), "no name on the card, vCard not written")
				return err
			}
			return writeVCF(c.ErrOrStderr(), out, rec, regionOr(opts.region, cfg.DefaultRegion))
		},
	}
	cmd.Flags().StringVarP(&out, "vcf", "o", "", "after printing the JSON, also write a vCard to this path or directory")
	return cmd
}

func newVCFCommand(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "vcf <contact.json>",
		Short: "Render a contact JSON file as a vCard 3.0",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var rec types.ContactRecord
			if err := json.NewDecoder(f).Decode(&rec); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			if err := rec.Validate(); err != nil {
				return err
			}
			region := regionOr(opts.region, os.Getenv("PHONE_DEFAULT_REGION"))
			if out == "" {
				_, err := io.WriteString(c.OutOrStdout(), vcard.Serialize(rec, region))
				return err
			}
			return writeVCF(c.OutOrStdout(), out, rec, region)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout); a directory gets <name>.vcf")
	return cmd
}

func writeVCF(status io.Writer, path string, rec types.ContactRecord, region string) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = path + string(os.PathSeparator) + vcard.Filename(rec.Name)
	}
	if err := os.WriteFile(path, []byte(vcard.Serialize(rec, region)), 0o644); err != nil {
		return err
	}
	_, err := fmt.Fprintf(status, "wrote %s\n", path)
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func regionOr(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
