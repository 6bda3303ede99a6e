package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/storage"
)

func warmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Prefetch catalog records into the payload cache",
		Long: `warm fetches every Pokémon in the id range together with its species
record so later page loads are served from the configured cache.

With a sqlite or postgres cache the payloads of each batch are saved in a
single transaction.`,
		Example: `  pokedex warm --from 1 --to 151
  pokedex warm --cache redis --concurrency 16
  pokedex warm --purge --batch 100`,
		RunE: runWarm,
	}
	cmd.Flags().Int("from", catalog.MinID, "first id to fetch")
	cmd.Flags().Int("to", 151, "last id to fetch")
	cmd.Flags().Int("concurrency", 8, "parallel requests")
	cmd.Flags().Int("batch", 50, "ids per transaction (sqlite/postgres only)")
	cmd.Flags().Bool("purge", false, "delete expired rows before warming (sqlite/postgres only)")
	return cmd
}

func runWarm(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch")
	purge, _ := cmd.Flags().GetBool("purge")

	if err := catalog.ValidateID(from); err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	if err := catalog.ValidateID(to); err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	if to < from {
		return fmt.Errorf("--to (%d) is before --from (%d)", to, from)
	}
	if concurrency < 1 {
		concurrency = 1
	}
	total := to - from + 1
	if batchSize < 1 || batchSize > total {
		batchSize = total
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	store, isStore := a.cache.(*storage.Store)
	if purge {
		if !isStore {
			return fmt.Errorf("--purge needs a sqlite or postgres cache, not %q", cfg.Cache.Backend)
		}
		n, err := store.Purge(ctx)
		if err != nil {
			return fmt.Errorf("failed to purge cache: %w", err)
		}
		logger.Info("Purged expired entries", zap.Int64("count", n))
	}

	// SQL stores get a client whose writes are queued and flushed per batch
	client := a.client
	var batch *storage.Batch
	if isStore {
		batch = store.Batch()
		if client, err = newClient(cfg, batch, logger); err != nil {
			return err
		}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Warming cache...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(cmd.ErrOrStderr())
		}),
	)

	var fetched, failed atomic.Int64
	var saved int
	for start := from; start <= to; start += batchSize {
		end := min(start+batchSize-1, to)
		if err := warmRange(ctx, client, start, end, concurrency, bar, &fetched, &failed); err != nil {
			return fmt.Errorf("warm interrupted: %w", err)
		}

		if batch != nil {
			n, err := batch.Flush(ctx)
			if err != nil {
				return fmt.Errorf("failed to save ids %d..%d: %w", start, end, err)
			}
			saved += n
			logger.Debug("Saved batch", zap.Int("from", start), zap.Int("to", end), zap.Int("payloads", n))
		}
	}

	fields := []zap.Field{
		zap.Int64("fetched", fetched.Load()),
		zap.Int64("failed", failed.Load()),
		zap.String("cache", cfg.Cache.Backend),
	}
	if isStore {
		fields = append(fields, zap.Int("saved", saved))
		if st, err := store.Stats(ctx); err == nil {
			fields = append(fields, zap.Int("entries", st.Entries), zap.Int("expired", st.Expired))
		}
	}
	logger.Info("Cache warm complete", fields...)
	return nil
}

// warmRange fetches ids from..to with at most limit requests in flight.
// A missing record is logged and skipped; only cancellation stops the run.
func warmRange(ctx context.Context, client *catalog.Client, from, to, limit int, bar *progressbar.ProgressBar, fetched, failed *atomic.Int64) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for id := from; id <= to; id++ {
		g.Go(func() error {
			defer bar.Add(1)

			if err := warmOne(gctx, client, id); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				logger.Warn("Failed to warm record", zap.Int("id", id), zap.Error(err))
				return nil
			}
			fetched.Add(1)
			return nil
		})
	}
	return g.Wait()
}

func warmOne(ctx context.Context, client *catalog.Client, id int) error {
	p, err := client.FetchByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = client.FetchSpecies(ctx, p.Species.URL)
	return err
}
