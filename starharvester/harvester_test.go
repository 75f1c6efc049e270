package starharvester

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestHarvester(fetcher Fetcher, rows RowWriter, opts Options) (*Harvester, *[]time.Duration) {
	harvester := InitializeHarvester(fetcher, rows, opts)
	var slept []time.Duration
	harvester.sleep = func(d time.Duration) { slept = append(slept, d) }
	return harvester, &slept
}

func TestRun_FollowsResumptionTokens(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]byte{
		listRecordsPage("tok-1", openAccessRecordXML("id:1", "One"), closedRecordXML("id:2")),
		listRecordsPage("tok-2", deletedRecordXML("id:3"), openAccessRecordXML("id:4", "Four")),
		listRecordsPage("", openAccessRecordXML("id:5", "Five")),
	}}
	rows := &memoryRows{}
	harvester, slept := newTestHarvester(fetcher, rows, Options{
		MetadataPrefix:  "oai_dc",
		Set:             "diffusable",
		MaxContributors: 3,
		Delay:           200 * time.Millisecond,
	})

	stats, err := harvester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Stats{Pages: 3, Seen: 5, Kept: 3}, stats)

	var ids []string
	for _, r := range rows.rows {
		ids = append(ids, r.OaiID)
	}
	require.Equal(t, []string{"id:1", "id:4", "id:5"}, ids)

	require.Len(t, fetcher.queries, 3)
	require.Equal(t, "oai_dc", fetcher.queries[0].Get("metadataPrefix"))
	require.Equal(t, "diffusable", fetcher.queries[0].Get("set"))
	require.Empty(t, fetcher.queries[0].Get("resumptionToken"))
	for i, token := range []string{"tok-1", "tok-2"} {
		q := fetcher.queries[i+1]
		require.Equal(t, "ListRecords", q.Get("verb"))
		require.Equal(t, token, q.Get("resumptionToken"))
		require.Empty(t, q.Get("metadataPrefix"))
		require.Empty(t, q.Get("set"))
	}

	require.Equal(t, []time.Duration{200 * time.Millisecond, 200 * time.Millisecond}, *slept)
}

func TestRun_StopsOnEmptyTokenBeforePageLimit(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]byte{
		listRecordsPage("a", openAccessRecordXML("id:1", "One")),
		listRecordsPage("", openAccessRecordXML("id:2", "Two")),
	}}
	harvester, _ := newTestHarvester(fetcher, &memoryRows{}, Options{MaxPages: 10, MaxContributors: 3})

	stats, err := harvester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Pages)
	require.Len(t, fetcher.queries, 2)
}

func TestRun_PageLimit(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]byte{
		listRecordsPage("a", openAccessRecordXML("id:1", "One")),
		listRecordsPage("b", openAccessRecordXML("id:2", "Two")),
		listRecordsPage("c", openAccessRecordXML("id:3", "Three")),
	}}
	rows := &memoryRows{}
	harvester, slept := newTestHarvester(fetcher, rows, Options{MaxPages: 2, MaxContributors: 3, Delay: time.Second})

	stats, err := harvester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Stats{Pages: 2, Seen: 2, Kept: 2}, stats)
	require.Len(t, fetcher.queries, 2)
	require.Len(t, *slept, 1, "no pause after the last page")
}

func TestRun_DeletedAndClosedCountedAsSeen(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]byte{
		listRecordsPage("", deletedRecordXML("id:1", "diffusable"), closedRecordXML("id:2"), deletedRecordXML("id:3")),
	}}
	rows := &memoryRows{}
	harvester, _ := newTestHarvester(fetcher, rows, Options{MaxContributors: 3})

	stats, err := harvester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Stats{Pages: 1, Seen: 3, Kept: 0}, stats)
	require.Empty(t, rows.rows)
}

func TestRun_NoRecordsMatch(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]byte{oaiErrorPage("noRecordsMatch", "empty set")}}
	harvester, _ := newTestHarvester(fetcher, &memoryRows{}, Options{Set: "ddc:999", MaxContributors: 3})

	stats, err := harvester.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Stats{Pages: 1}, stats)
}

func TestRun_TransportErrorAbortsKeepingWrittenRows(t *testing.T) {
	boom := &TransportError{URL: "https://example.org/oai", StatusCode: 500}
	fetcher := &fakeFetcher{
		pages: [][]byte{listRecordsPage("a", openAccessRecordXML("id:1", "One"))},
		errs:  []error{nil, boom},
	}
	rows := &memoryRows{}
	harvester, _ := newTestHarvester(fetcher, rows, Options{MaxContributors: 3})

	stats, err := harvester.Run(context.Background())
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Equal(t, Stats{Pages: 1, Seen: 1, Kept: 1}, stats)
	require.Len(t, rows.rows, 1)
	require.Len(t, fetcher.queries, 2)
}

func TestRun_ParseErrorAborts(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]byte{
		listRecordsPage("a", openAccessRecordXML("id:1", "One")),
		[]byte("<OAI-PMH><ListRecords><record>"),
	}}
	rows := &memoryRows{}
	harvester, _ := newTestHarvester(fetcher, rows, Options{MaxContributors: 3})

	_, err := harvester.Run(context.Background())
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, err.Error(), "page 2")
	require.Len(t, rows.rows, 1)
}

func TestRun_WriteErrorAborts(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]byte{
		listRecordsPage("", openAccessRecordXML("id:1", "One"), openAccessRecordXML("id:2", "Two")),
	}}
	diskFull := errors.New("disk full")
	rows := &memoryRows{failAt: 1, failErr: diskFull}
	harvester, _ := newTestHarvester(fetcher, rows, Options{MaxContributors: 3})

	stats, err := harvester.Run(context.Background())
	require.ErrorIs(t, err, diskFull)
	require.Contains(t, err.Error(), "id:2")
	require.Equal(t, 1, stats.Kept)
}

func TestRun_Idempotent(t *testing.T) {
	pages := [][]byte{
		listRecordsPage("a", openAccessRecordXML("id:1", "One"), closedRecordXML("id:2")),
		listRecordsPage("", openAccessRecordXML("id:3", "Three")),
	}

	run := func() []Row {
		rows := &memoryRows{}
		harvester, _ := newTestHarvester(&fakeFetcher{pages: pages}, rows, Options{MaxContributors: 3})
		_, err := harvester.Run(context.Background())
		require.NoError(t, err)
		return rows.rows
	}

	require.Equal(t, run(), run())
}

func TestRun_ArchivesEveryPage(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]byte{
		listRecordsPage("tok-1"),
		listRecordsPage(""),
	}}
	archive := &memoryArchive{err: errors.New("redis down")}
	harvester, _ := newTestHarvester(fetcher, &memoryRows{}, Options{MaxContributors: 3, Archive: archive})

	_, err := harvester.Run(context.Background())
	require.NoError(t, err, "archive failures are not fatal")
	require.Equal(t, []int{1, 2}, archive.pages)
	require.Equal(t, []string{"", "tok-1"}, archive.tokens)
}

func TestListSets_FollowsTokens(t *testing.T) {
	fetcher := &fakeFetcher{pages: [][]byte{
		[]byte(envelopeHead + `<ListSets><set><setSpec>diffusable</setSpec><setName>Diffusable</setName></set><resumptionToken>s2</resumptionToken></ListSets></OAI-PMH>`),
		[]byte(envelopeHead + `<ListSets><set><setSpec>CNAM</setSpec><setName>Cnam</setName></set><resumptionToken/></ListSets></OAI-PMH>`),
	}}
	harvester, _ := newTestHarvester(fetcher, &memoryRows{}, Options{})

	sets, err := harvester.ListSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 2)
	require.Equal(t, "CNAM", sets[1].SetSpec)
	require.Equal(t, "ListSets", fetcher.queries[0].Get("verb"))
	require.Equal(t, "s2", fetcher.queries[1].Get("resumptionToken"))
}
