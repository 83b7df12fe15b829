package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Startup925/realestate/models"
)

func TestMockKarzaFaceMatch(t *testing.T) {
	ctx := context.Background()

	match, err := MockKarza{Random: fixedRandom{f: 0.5}}.MatchFace(ctx, "selfie", "ref")
	require.NoError(t, err)
	assert.Equal(t, models.FaceMatch, match.Status)
	assert.InDelta(t, 91.5, match.MatchScore, 0.001)

	miss, err := MockKarza{Random: fixedRandom{f: 0.05}}.MatchFace(ctx, "selfie", "ref")
	require.NoError(t, err)
	assert.Equal(t, models.FaceNoMatch, miss.Status)
	assert.GreaterOrEqual(t, miss.MatchScore, 85.0)
	assert.LessOrEqual(t, miss.MatchScore, 98.0)
}

func TestMockKarzaHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := MockKarza{Latency: 1}.VerifyAadhaar(ctx, "1234")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockDigiLocker(t *testing.T) {
	res, err := MockDigiLocker{}.FetchDocuments(context.Background(), "1234")
	require.NoError(t, err)
	require.Len(t, res.Documents, 3)
	assert.Equal(t, "driving_license", res.Documents[1].Type)
	assert.Equal(t, models.CheckAvailable, res.Documents[2].Status)
}

func TestMockMCARegistry(t *testing.T) {
	registry := MockMCARegistry{Random: fixedRandom{n: 12345}}
	ctx := context.Background()

	found, err := registry.VerifyEmployer(ctx, "Infosys Limited, Pune")
	require.NoError(t, err)
	assert.True(t, found.CompanyFound)
	assert.Equal(t, "active", found.Status)
	require.NotNil(t, found.CIN)
	assert.Regexp(t, regexp.MustCompile(`^U\d{5}MH2010PTC\d{6}$`), *found.CIN)

	missing, err := registry.VerifyEmployer(ctx, "Acme Widgets")
	require.NoError(t, err)
	assert.False(t, missing.CompanyFound)
	assert.Nil(t, missing.CompanyName)
	assert.Equal(t, "not_found", missing.Status)
}

func TestMockGeocoder(t *testing.T) {
	ctx := context.Background()

	geo, err := MockGeocoder{Random: fixedRandom{f: 0.5}}.Geocode(ctx, "Bandra West, MUMBAI")
	require.NoError(t, err)
	assert.Equal(t, 19.0760, geo.Lat)
	assert.Equal(t, 72.8777, geo.Lng)
	assert.False(t, geo.Approximate)

	geo, err = MockGeocoder{Random: fixedRandom{f: 1}}.Geocode(ctx, "Shimla")
	require.NoError(t, err)
	assert.True(t, geo.Approximate)
	assert.InDelta(t, 28.7041+5, geo.Lat, 0.0001)
}

func TestCalculateDistance(t *testing.T) {
	mumbai, delhi := Cities["mumbai"], Cities["delhi"]
	d := CalculateDistance(mumbai.Lat, mumbai.Lng, delhi.Lat, delhi.Lng)
	assert.InDelta(t, 1150, d, 15)
	assert.Zero(t, CalculateDistance(1, 2, 1, 2))
}

func TestMockPlaces(t *testing.T) {
	ctx := context.Background()

	resp, err := MockPlaces{}.Autocomplete(ctx, "maha")
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
	require.Len(t, resp.Predictions, 2)
	assert.Equal(t, "Mumbai", resp.Predictions[0].StructuredFormatting.MainText)
	assert.Equal(t, "Pune", resp.Predictions[1].StructuredFormatting.MainText)

	empty, err := MockPlaces{}.Autocomplete(ctx, "zzz")
	require.NoError(t, err)
	assert.Equal(t, "ZERO_RESULTS", empty.Status)
	assert.Empty(t, empty.Predictions)

	details, err := MockPlaces{}.Details(ctx, "mock_place_chennai")
	require.NoError(t, err)
	assert.Equal(t, "OK", details.Status)
	assert.Equal(t, 13.0827, details.Result.Geometry.Location.Lat)

	missing, err := MockPlaces{}.Details(ctx, "nope")
	require.NoError(t, err)
	assert.Equal(t, "NOT_FOUND", missing.Status)
}
