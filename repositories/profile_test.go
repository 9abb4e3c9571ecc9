package repositories

import (
	"context"
	"log/slog"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/stretchr/testify/require"

	"travelmate/domain/travel"
	"travelmate/errors"
)

func newProfileRepository(t *testing.T) *ProfileRepository {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })
	return NewProfileRepository(openDB(t), writer, slog.Default(), 100)
}

var (
	myeongdong = travel.Location{Lat: 37.5636, Lng: 126.9827, City: "Seoul", State: "Seoul"}
	gangnam    = travel.Location{Lat: 37.4979, Lng: 127.0276, City: "Seoul", State: "Seoul"}
	haeundae   = travel.Location{Lat: 35.1587, Lng: 129.1604, City: "Busan", State: "Busan"}
)

func Test_FindInCity_Keeps_Same_City_And_Excludes_Caller(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := newProfileRepository(t)

	// Given travelers spread over two cities
	req.NoError(repository.Upsert(ctx, travel.Profile{ID: "alice", Name: "Alice", Languages: []string{"en", "fr"}, Location: myeongdong}))
	req.NoError(repository.Upsert(ctx, travel.Profile{ID: "bob", Name: "Bob", Location: gangnam}))
	req.NoError(repository.Upsert(ctx, travel.Profile{ID: "carol", Name: "Carol", Location: haeundae}))

	// When alice looks around Seoul, spelled differently
	profiles, err := repository.FindInCity(ctx, travel.NearbyQuery{CallerID: "alice", City: " seoul", State: "SEOUL"}, nil)

	// Then only bob is found
	req.NoError(err)
	req.Len(profiles, 1)
	req.Equal("bob", profiles[0].ID)
	req.Equal(gangnam, profiles[0].Location)
}

func Test_FindInCity_With_Radius(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := newProfileRepository(t)

	req.NoError(repository.Upsert(ctx, travel.Profile{ID: "alice", Location: myeongdong}))
	req.NoError(repository.Upsert(ctx, travel.Profile{ID: "bob", Location: gangnam}))

	// Myeongdong to Gangnam is about 8km
	query := travel.NearbyQuery{CallerID: "alice", City: "Seoul", State: "Seoul", RadiusKm: 2}
	profiles, err := repository.FindInCity(ctx, query, &myeongdong)
	req.NoError(err)
	req.Empty(profiles)

	query.RadiusKm = 20
	profiles, err = repository.FindInCity(ctx, query, &myeongdong)
	req.NoError(err)
	req.Len(profiles, 1)
}

func Test_FindInCity_Excludes_Before_Capping(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)
	t.Cleanup(func() { _ = writer.Close() })
	repository := NewProfileRepository(openDB(t), writer, slog.Default(), 3)

	// Given alice already knows more Seoul travelers than one search returns
	known := []string{"bob", "dave", "erin", "frank"}
	for _, id := range append([]string{"alice", "carol"}, known...) {
		req.NoError(repository.Upsert(ctx, travel.Profile{ID: id, Location: gangnam}))
	}

	// When she searches without them
	profiles, err := repository.FindInCity(ctx, travel.NearbyQuery{CallerID: "alice", City: "Seoul", State: "Seoul", Exclude: known}, nil)

	// Then the newcomer is still found
	req.NoError(err)
	req.Len(profiles, 1)
	req.Equal("carol", profiles[0].ID)
}

func Test_Upsert_Moves_A_Traveler(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := newProfileRepository(t)

	req.NoError(repository.Upsert(ctx, travel.Profile{ID: "bob", Location: gangnam}))
	req.NoError(repository.Upsert(ctx, travel.Profile{ID: "bob", Location: haeundae}))

	inSeoul, err := repository.FindInCity(ctx, travel.NearbyQuery{CallerID: "alice", City: "Seoul", State: "Seoul"}, nil)
	req.NoError(err)
	req.Empty(inSeoul)

	stored, err := repository.Get(ctx, "bob")
	req.NoError(err)
	req.Equal("Busan", stored.Location.City)
}

func Test_Get_Unknown_Profile(t *testing.T) {
	_, err := newProfileRepository(t).Get(context.Background(), "ghost")
	require.ErrorIs(t, err, errors.ErrNotFound)
}
