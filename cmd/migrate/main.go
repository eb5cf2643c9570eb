// Command migrate copies the stored collections from one storage backend to
// another, e.g. from the default diskv directory into SQLite or S3.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/db"
	"github.com/debemdeboas/the-gallery/internal/logger"
	"github.com/debemdeboas/the-gallery/internal/repository"
)

type status string

const (
	statusCopied  status = "copied"
	statusMissing status = "missing"
	statusInvalid status = "invalid"
	statusDryRun  status = "dry-run"
)

type result struct {
	Key    string
	Bytes  int
	Status status
}

type options struct {
	configPath string
	from, to   config.StorageConfig
	keys       []string
	dryRun     bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	defaults := config.Default().Storage
	opts.from, opts.to = defaults, defaults

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy stored collections between storage backends",
		Example: "  migrate --from-type diskv --from-path ~/.babagallery --to-type sqlite --to-path ./gallery.db\n" +
			"  migrate --to-type s3 --to-bucket portfolio --key babaGalleryImages",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "config.yaml", "configuration file with the collection keys and S3 settings")
	f.StringVar(&opts.from.Type, "from-type", defaults.Type, "source backend: memory, diskv, sqlite or s3")
	f.StringVar(&opts.from.Path, "from-path", defaults.Path, "source diskv directory or sqlite file")
	f.StringVar(&opts.from.Bucket, "from-bucket", "", "source S3 bucket")
	f.StringVar(&opts.to.Type, "to-type", config.StorageSQLite, "destination backend: memory, diskv, sqlite or s3")
	f.StringVar(&opts.to.Path, "to-path", "./gallery.db", "destination diskv directory or sqlite file")
	f.StringVar(&opts.to.Bucket, "to-bucket", "", "destination S3 bucket")
	f.StringSliceVar(&opts.keys, "key", nil, "storage key to copy (repeatable, defaults to every collection key)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "read and validate without writing")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options) error {
	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log := logger.New(level, "console")
	config.SetLogger(log)
	db.SetLogger(log)
	repository.SetLogger(log)

	if err := config.LoadConfig(opts.configPath); err != nil {
		return err
	}
	cfg := config.AppConfig

	keys := opts.keys
	if len(keys) == 0 {
		keys = []string{cfg.Collections.ImagesKey, cfg.Collections.ProjectsKey, cfg.Collections.PostsKey}
	}

	from, err := repository.New(ctx, withS3Settings(opts.from, cfg.Storage))
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer from.Close()

	to, err := repository.New(ctx, withS3Settings(opts.to, cfg.Storage))
	if err != nil {
		return fmt.Errorf("failed to open destination: %w", err)
	}
	defer to.Close()

	results, err := migrate(ctx, from, to, keys, opts.dryRun, log)
	fmt.Fprintln(out, summary(opts, results))
	return err
}

// withS3Settings fills the S3 endpoint, region and prefix of sc from the
// configured storage section.
func withS3Settings(sc, configured config.StorageConfig) config.StorageConfig {
	sc.Endpoint = configured.Endpoint
	sc.Region = configured.Region
	sc.Prefix = configured.Prefix
	return sc
}

// migrate copies every key from one store to the other. Values that are not
// JSON arrays are reported and left behind.
func migrate(ctx context.Context, from, to repository.Repository, keys []string, dryRun bool, log zerolog.Logger) ([]result, error) {
	results := make([]result, 0, len(keys))
	for _, key := range keys {
		value, err := from.GetItem(ctx, key)
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn().Str("key", key).Msg("Key not found in source")
			results = append(results, result{Key: key, Status: statusMissing})
			continue
		}
		if err != nil {
			return results, fmt.Errorf("failed to read %s: %w", key, err)
		}

		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Value is not a collection")
			results = append(results, result{Key: key, Bytes: len(value), Status: statusInvalid})
			continue
		}

		if dryRun {
			results = append(results, result{Key: key, Bytes: len(value), Status: statusDryRun})
			continue
		}

		if err := to.SetItem(ctx, key, value); err != nil {
			return results, fmt.Errorf("failed to write %s: %w", key, err)
		}
		log.Debug().Str("key", key).Int("items", len(items)).Msg("Copied collection")
		results = append(results, result{Key: key, Bytes: len(value), Status: statusCopied})
	}
	return results, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func summary(opts *options, results []result) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		statusStyle := warnStyle
		if r.Status == statusCopied {
			statusStyle = okStyle
		}
		rows[i] = []string{r.Key, strconv.Itoa(r.Bytes), statusStyle.Render(string(r.Status))}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("KEY", "BYTES", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	title := titleStyle.Render(fmt.Sprintf("%s -> %s", opts.from.Type, opts.to.Type))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}
