// internal/sheets/pipeline.go
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/powersport/inventory-backend/internal/models"
)

var (
	// ErrNotConfigured is returned when no spreadsheet source is set.
	ErrNotConfigured = errors.New("spreadsheet source is not configured")
	// ErrSyncInProgress is returned when a sync is already running; the
	// pipeline serializes syncs instead of racing them.
	ErrSyncInProgress = errors.New("a sync is already in progress")
)

// SourceError reports a failed fetch of the spreadsheet export. The prior
// dataset is never touched when it occurs.
type SourceError struct {
	URL string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("spreadsheet source unavailable: %s: %v", e.URL, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Pipeline orchestrates one catalog import: rewrite the configured source
// into its CSV export URL, fetch, parse, coerce each row. It returns the
// full ordered product slice and has no side effects on shared state; the
// caller performs the atomic swap.
type Pipeline struct {
	fetcher Fetcher
	columns ColumnMap
	log     *logrus.Entry

	syncing atomic.Bool
}

func NewPipeline(fetcher Fetcher) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		columns: DefaultColumns,
		log:     logrus.WithField("component", "sheets"),
	}
}

// Sync fetches and reconciles the configured spreadsheet into products.
// Row-level malformation is absorbed by coercion defaults; only the
// configuration and fetch boundaries can fail.
func (p *Pipeline) Sync(ctx context.Context, source string) ([]models.Product, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrNotConfigured
	}
	if !p.syncing.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer p.syncing.Store(false)

	url := ExportURL(source)
	body, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &SourceError{URL: url, Err: err}
	}

	rows := Parse(body)
	importBase := time.Now().UnixMilli()
	products := make([]models.Product, 0, len(rows))
	for i, row := range rows {
		products = append(products, p.columns.Coerce(row, i, importBase))
	}

	p.log.WithFields(logrus.Fields{
		"url":      url,
		"products": len(products),
	}).Info("catalog imported")

	return products, nil
}
