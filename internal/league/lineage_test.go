package league

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSeasons_ChainSortedAscending(t *testing.T) {
	f := newFakeClient()
	f.addLeague("S3", 2023, "S2", 15, 3)
	f.addLeague("S2", 2022, "S1", 15, 3)
	f.addLeague("S1", 2021, "", 15, 3)
	s := newTestService(f, nil)

	seasons, err := s.ResolveSeasons(context.Background(), "S3", nil)
	require.NoError(t, err)
	require.Len(t, seasons, 3)
	assert.Equal(t, []int{2021, 2022, 2023}, []int{seasons[0].Year, seasons[1].Year, seasons[2].Year})
	assert.Equal(t, "S1", seasons[0].LeagueID)
	assert.Equal(t, "S3", seasons[2].LeagueID)
}

func TestResolveSeasons_PlayoffEndDerivedFromRoundCount(t *testing.T) {
	f := newFakeClient()
	f.addLeague("S1", 2023, "", 15, 3)
	s := newTestService(f, nil)

	seasons, err := s.ResolveSeasons(context.Background(), "S1", nil)
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Equal(t, 15, seasons[0].PlayoffStartWeek)
	assert.Equal(t, 17, seasons[0].PlayoffEndWeek)
}

func TestResolveSeasons_CycleVisitsEachIDOnce(t *testing.T) {
	f := newFakeClient()
	f.addLeague("S3", 2023, "S2", 0, 0)
	f.addLeague("S2", 2022, "S3", 0, 0) // predecessor loops back to the start
	s := newTestService(f, nil)

	seasons, err := s.ResolveSeasons(context.Background(), "S3", nil)
	require.NoError(t, err)
	assert.Len(t, seasons, 2)
	assert.Equal(t, 1, f.callCount("league:S3"))
	assert.Equal(t, 1, f.callCount("league:S2"))
}

func TestResolveSeasons_MidChainFailureKeepsPrefix(t *testing.T) {
	f := newFakeClient()
	f.addLeague("S3", 2023, "S2", 0, 0)
	f.addLeague("S2", 2022, "S1", 0, 0)
	f.fail["league:S1"] = true
	s := newTestService(f, nil)

	seasons, err := s.ResolveSeasons(context.Background(), "S3", nil)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, 2022, seasons[0].Year)
	assert.Equal(t, 2023, seasons[1].Year)
}

func TestResolveSeasons_StartFailureIsFatal(t *testing.T) {
	f := newFakeClient()
	f.fail["league:S3"] = true
	s := newTestService(f, nil)

	_, err := s.ResolveSeasons(context.Background(), "S3", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3")
}

func TestResolveSeasons_EmptyStartIDRejected(t *testing.T) {
	s := newTestService(newFakeClient(), nil)
	_, err := s.ResolveSeasons(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestResolveSeasons_InvalidYearRangeRejected(t *testing.T) {
	f := newFakeClient()
	f.addLeague("S1", 2023, "", 0, 0)
	s := newTestService(f, nil)

	_, err := s.ResolveSeasons(context.Background(), "S1", &YearRange{Start: 2023, End: 2021})
	require.Error(t, err)
	// Rejected before any fetch.
	assert.Equal(t, 0, f.callCount("league:S1"))
}

func TestResolveSeasons_YearRangeFiltersAndStopsWalkEarly(t *testing.T) {
	f := newFakeClient()
	f.addLeague("S4", 2024, "S3", 0, 0)
	f.addLeague("S3", 2023, "S2", 0, 0)
	f.addLeague("S2", 2022, "S1", 0, 0)
	f.addLeague("S1", 2021, "", 0, 0)
	s := newTestService(f, nil)

	seasons, err := s.ResolveSeasons(context.Background(), "S4", &YearRange{Start: 2022, End: 2023})
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, 2022, seasons[0].Year)
	assert.Equal(t, 2023, seasons[1].Year)
	// Years strictly decrease along the chain, so once 2022's predecessor is
	// reached nothing below the floor is fetched. S2 itself stops the walk.
	assert.Equal(t, 0, f.callCount("league:S1"))
}

func TestResolveSeasonsWithIndex_UnionsCandidates(t *testing.T) {
	f := newFakeClient()
	// Broken chain: S3 links to nothing, but the index knows S1.
	f.addLeague("S3", 2023, "", 0, 0)
	f.addLeague("S1", 2021, "", 0, 0)
	f.index["S3"] = []string{"S3", "S1"}
	s := newTestService(f, nil)

	seasons, err := s.ResolveSeasonsWithIndex(context.Background(), "S3", nil)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, "S1", seasons[0].LeagueID)
	assert.Equal(t, "S3", seasons[1].LeagueID)
	// Chain discovery and index candidate are reconciled by id: S3 is fetched
	// once, not re-fetched for the candidate list.
	assert.Equal(t, 1, f.callCount("league:S3"))
}

func TestResolveSeasonsWithIndex_FallsBackWhenIndexUnavailable(t *testing.T) {
	f := newFakeClient()
	f.addLeague("S2", 2022, "S1", 0, 0)
	f.addLeague("S1", 2021, "", 0, 0)
	s := newTestService(f, nil)

	seasons, err := s.ResolveSeasonsWithIndex(context.Background(), "S2", nil)
	require.NoError(t, err)
	assert.Len(t, seasons, 2)
}
