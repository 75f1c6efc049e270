package starharvester

import (
	"context"
	"fmt"
	"time"

	xmlschemas "github.com/gegedenice/star-harvest/XMLSchemas"
	"github.com/gegedenice/star-harvest/utils"
	log "github.com/sirupsen/logrus"
)

// RowWriter receives the accepted rows in harvest order.
type RowWriter interface {
	WriteRow(ctx context.Context, row *Row) error
}

// PageArchive keeps a copy of every raw page. token is the resumption token
// the page was requested with (empty for the first page).
type PageArchive interface {
	ArchivePage(ctx context.Context, page int, token string, body []byte) error
}

// Options configures a Harvester.
type Options struct {
	MetadataPrefix  string
	Set             string
	MaxPages        int // 0 means no limit
	MaxContributors int
	Delay           time.Duration

	// Archive is optional.
	Archive PageArchive
	// Logger defaults to the standard logrus logger.
	Logger *log.Entry
}

// Stats are the counters of one harvest run.
type Stats struct {
	Pages int
	Seen  int
	Kept  int
}

type Harvester struct {
	fetcher    Fetcher
	rows       RowWriter
	archive    PageArchive
	parameters *Parameters

	maxPages        int
	maxContributors int
	delay           time.Duration
	sleep           func(time.Duration)
	logger          *log.Entry
}

func InitializeHarvester(fetcher Fetcher, rows RowWriter, opts Options) *Harvester {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Harvester{
		fetcher:         fetcher,
		rows:            rows,
		archive:         opts.Archive,
		parameters:      InitializeParameters(opts.MetadataPrefix, opts.Set),
		maxPages:        opts.MaxPages,
		maxContributors: opts.MaxContributors,
		delay:           opts.Delay,
		sleep:           time.Sleep,
		logger:          logger,
	}
}

// Run harvests ListRecords pages until the endpoint stops returning a
// resumption token or MaxPages pages have been fetched. Accepted rows are
// written as soon as their page is parsed, so rows written before an error
// stay in the sink. Any fetch, parse or write error ends the run.
func (harvester *Harvester) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	params := harvester.parameters
	startTime := time.Now()

	harvester.logger.WithFields(log.Fields{
		"metadataPrefix": params.MetadataPrefix,
		"set":            params.Set,
		"maxPages":       harvester.maxPages,
	}).Info("Harvesting metadata")

	for {
		body, err := harvester.fetcher.Fetch(ctx, params.Values())
		if err != nil {
			return stats, err
		}
		stats.Pages++
		harvester.archivePage(ctx, stats.Pages, params.ResumptionToken, body)

		page, err := ParsePage(body)
		if err != nil {
			return stats, fmt.Errorf("page %d: %w", stats.Pages, err)
		}

		kept := 0
		for i := range page.Records {
			row, ok := Extract(&page.Records[i], harvester.maxContributors)
			stats.Seen++
			if !ok {
				continue
			}
			if err := harvester.rows.WriteRow(ctx, &row); err != nil {
				return stats, fmt.Errorf("writing record %s: %w", row.OaiID, err)
			}
			stats.Kept++
			kept++
		}

		harvester.logger.WithFields(log.Fields{
			"page":            stats.Pages,
			"records":         len(page.Records),
			"kept":            kept,
			"seen_total":      stats.Seen,
			"kept_total":      stats.Kept,
			"resumptionToken": page.Resumption.String(),
		}).Info("Page harvested")

		if harvester.maxPages > 0 && stats.Pages >= harvester.maxPages {
			harvester.logger.WithField("maxPages", harvester.maxPages).Info("Page limit reached")
			break
		}
		if page.Token == utils.EmptyString {
			harvester.logger.Debug("No resumption token found")
			break
		}

		harvester.sleep(harvester.delay)
		params = params.Resume(page.Token)
	}

	harvester.logger.WithFields(log.Fields{
		"pages":   stats.Pages,
		"seen":    stats.Seen,
		"kept":    stats.Kept,
		"elapsed": time.Since(startTime).String(),
	}).Info("Metadata harvesting complete")

	return stats, nil
}

func (harvester *Harvester) archivePage(ctx context.Context, page int, token string, body []byte) {
	if harvester.archive == nil {
		return
	}
	if err := harvester.archive.ArchivePage(ctx, page, token, body); err != nil {
		harvester.logger.WithFields(log.Fields{
			"page":  page,
			"error": err,
		}).Warn("Could not archive page")
	}
}

// ListSets returns every set advertised by the endpoint, following
// resumption tokens.
func (harvester *Harvester) ListSets(ctx context.Context) ([]xmlschemas.Set, error) {
	var sets []xmlschemas.Set
	params := &Parameters{Verb: utils.VerbFor["LIST_SETS"]}

	for {
		body, err := harvester.fetcher.Fetch(ctx, params.Values())
		if err != nil {
			return sets, err
		}

		page, token, err := parseSets(body)
		if err != nil {
			return sets, err
		}
		sets = append(sets, page...)

		if token == utils.EmptyString {
			return sets, nil
		}
		harvester.sleep(harvester.delay)
		params = params.Resume(token)
	}
}
