package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/statlake/pitchload/internal/domain/risk"
	"github.com/statlake/pitchload/internal/domain/rolling"
	"github.com/statlake/pitchload/internal/domain/stats"
	"github.com/statlake/pitchload/internal/platform/logging"
)

func weeklyFeatures(t *testing.T, playerID int64, minutes int64, dates ...string) []stats.PlayerMatchFeature {
	t.Helper()
	out := make([]stats.PlayerMatchFeature, 0, len(dates))
	for i, date := range dates {
		parsed, err := time.Parse("2006-01-02", date)
		require.NoError(t, err)
		out = append(out, stats.PlayerMatchFeature{
			CompetitionID: 11,
			SeasonID:      90,
			MatchID:       int64(100 + i),
			MatchDate:     parsed,
			Team:          "Home",
			PlayerID:      playerID,
			Minutes:       minutes,
			XG:            0.2,
			Shots:         2,
			ProgressiveX:  10,
		})
	}
	return out
}

func TestWorkloadServiceWindowsAndACWR(t *testing.T) {
	// Five matches eight days apart at 90 minutes each, so each acute
	// window holds exactly one match. By the fifth match the chronic
	// window holds four and the ratio is exactly 1.0.
	features := weeklyFeatures(t, 7, 90,
		"2004-02-01", "2004-02-09", "2004-02-17", "2004-02-25", "2004-03-04")

	repo := &fakeWorkloadRepo{}
	svc := NewWorkloadService(repo, logging.NewNop(), rolling.SchemePlayerSeason, risk.VariantCoupled, 2)

	result, err := svc.Run(context.Background(), features)
	require.NoError(t, err)

	require.Equal(t, 5, result.LoadRows)
	require.Equal(t, 5, result.FormRows)
	require.Equal(t, 5, result.ACWRRows)
	require.Equal(t, 5, result.DatasetRows)

	last := repo.loads[4]
	require.InDelta(t, 90, last.MinutesLast7d, 1e-9)
	require.InDelta(t, 180, last.MinutesLast14d, 1e-9)
	require.InDelta(t, 360, last.MinutesLast28d, 1e-9)
	require.InDelta(t, 450, last.MinutesLast5, 1e-9)

	// First match: chronic 90 < 180, ratio undefined and never high risk.
	require.Nil(t, repo.acwr[0].ACWR)
	require.False(t, repo.dataset[0].HighRisk)

	require.NotNil(t, repo.acwr[4].ACWR)
	require.InDelta(t, 1.0, *repo.acwr[4].ACWR, 1e-9)

	// Trend needs four rows before the earlier frame has data.
	require.Nil(t, repo.forms[2].TrendXG3v3)
	require.NotNil(t, repo.forms[3].TrendXG3v3)
	require.InDelta(t, 0.4, *repo.forms[3].TrendXG3v3, 1e-9)

	require.InDelta(t, 1.0, result.MinACWR, 1e-9)
	require.InDelta(t, 2.0, result.MaxACWR, 1e-9)
}

func TestWorkloadServicePredictiveDropsFinalMatch(t *testing.T) {
	features := weeklyFeatures(t, 7, 90,
		"2004-02-01", "2004-02-08", "2004-02-15")

	repo := &fakeWorkloadRepo{}
	svc := NewWorkloadService(repo, logging.NewNop(), rolling.SchemePlayerSeason, risk.VariantCoupled, 1)

	result, err := svc.Run(context.Background(), features)
	require.NoError(t, err)

	require.Equal(t, 3, result.DatasetRows)
	require.Equal(t, 2, result.PredictiveRows)
	for _, row := range repo.predictive {
		require.NotEqualValues(t, 102, row.MatchID)
	}
}

func TestWorkloadServiceCongestionFlagsHighRisk(t *testing.T) {
	// A month of light weekly load, then three matches in five days: the
	// acute week spikes far above the chronic average.
	features := weeklyFeatures(t, 7, 90,
		"2004-02-01", "2004-02-08", "2004-02-15", "2004-02-22",
		"2004-02-24", "2004-02-26")

	repo := &fakeWorkloadRepo{}
	svc := NewWorkloadService(repo, logging.NewNop(), rolling.SchemePlayerSeason, risk.VariantCoupled, 1)

	result, err := svc.Run(context.Background(), features)
	require.NoError(t, err)

	final := repo.dataset[5]
	require.NotNil(t, final.ACWR)
	require.Greater(t, *final.ACWR, risk.HighRiskThreshold)
	require.True(t, final.HighRisk)
	require.Positive(t, result.HighRiskRows)

	// The match before the final one therefore carries a true next-label.
	var found bool
	for _, row := range repo.predictive {
		if row.MatchID == 104 {
			require.True(t, row.HighRiskNext)
			found = true
		}
	}
	require.True(t, found)
}

func TestWorkloadServicePlayerSchemeBridgesSeasons(t *testing.T) {
	features := weeklyFeatures(t, 7, 90, "2004-02-01", "2004-02-08")
	features[1].SeasonID = 91

	repo := &fakeWorkloadRepo{}
	svc := NewWorkloadService(repo, logging.NewNop(), rolling.SchemePlayer, risk.VariantCoupled, 1)

	_, err := svc.Run(context.Background(), features)
	require.NoError(t, err)
	require.InDelta(t, 180, repo.loads[1].MinutesLast14d, 1e-9)

	// Under the seasonal scheme the same rows never share a window.
	repo = &fakeWorkloadRepo{}
	svc = NewWorkloadService(repo, logging.NewNop(), rolling.SchemePlayerSeason, risk.VariantCoupled, 1)

	_, err = svc.Run(context.Background(), features)
	require.NoError(t, err)
	require.InDelta(t, 90, repo.loads[1].MinutesLast14d, 1e-9)
}

func TestWorkloadServiceRequiresFeatures(t *testing.T) {
	svc := NewWorkloadService(&fakeWorkloadRepo{}, logging.NewNop(), rolling.SchemePlayerSeason, risk.VariantCoupled, 1)

	_, err := svc.Run(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}
