// Package batch runs a document processing function over many inputs with a
// bounded number of workers. Failures are collected per document so one bad
// input never aborts its siblings.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Progress is called after each document finishes, successfully or not.
// done counts completed documents, total is the batch size.
type Progress func(done, total int, item string, err error)

// Run applies fn to every item using at most workers goroutines. All items
// are attempted; the returned error joins the per-item failures, each wrapped
// with its item name. Context cancellation stops scheduling of further items.
func Run(ctx context.Context, workers int, items []string, fn func(ctx context.Context, item string) error, progress Progress) error {
	if workers <= 0 {
		workers = 1
	}

	var (
		mu   sync.Mutex
		done int
		errs []error
	)
	record := func(item string, err error) {
		mu.Lock()
		defer mu.Unlock()
		done++
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", item, err))
		}
		if progress != nil {
			progress(done, len(items), item, err)
		}
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			record(item, fn(ctx, item))
			return nil
		})
	}
	g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		errs = append(errs, ctxErr)
	}
	return errors.Join(errs...)
}
