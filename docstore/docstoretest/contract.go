// Package docstoretest exercises the behavior every docstore.Store shares.
package docstoretest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/docstore"
)

type CleanupFunc = func()

// A Factory constructs an empty docstore.Store for a single subtest.
type Factory func(t *testing.T) (docstore.Store, CleanupFunc)

// Run exercises the docstore.Store newStore constructs.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	for _, tc := range []struct {
		name string
		fn   func(*testing.T, docstore.Store)
	}{
		{"Find-Insertion-Order", testFindInsertionOrder},
		{"Find-Insertion-Order-Given-IDs", testFindInsertionOrderGivenIDs},
		{"Find-Empty", testFindEmpty},
		{"Find-Unfiltered", testFindUnfiltered},
		{"FindOne-Not-Exist", testFindOneNotExist},
		{"FindOne-Embedded", testFindOneEmbedded},
		{"Delete", testDelete},
		{"Count", testCount},
		{"Collections-Isolated", testCollectionsIsolated},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, cleanup := newStore(t)
			if cleanup != nil {
				t.Cleanup(cleanup)
			}

			tc.fn(t, s)
		})
	}
}

func testFindInsertionOrder(t *testing.T, s docstore.Store) {
	// Arrange
	ctx := context.Background()
	require.Nil(t, s.Insert(ctx, roadtrip.TripsCollection,
		roadtrip.Document{"tripId": "t1", "userId": "u1", "name": "Utah"},
		roadtrip.Document{"tripId": "t2", "userId": "u2", "name": "Oregon"},
	))
	require.Nil(t, s.Insert(ctx, roadtrip.TripsCollection,
		roadtrip.Document{"tripId": "t3", "userId": "u1", "name": "Maine"},
	))

	// Act
	found, err := s.Find(ctx, roadtrip.TripsCollection, roadtrip.ByUserID("u1"))

	// Assert
	require.Nil(t, err)
	require.Len(t, found, 2)
	require.Equal(t, "t1", found[0].GetString(roadtrip.TripIDField))
	require.Equal(t, "Utah", found[0].GetString("name"))
	require.Equal(t, "t3", found[1].GetString(roadtrip.TripIDField))
	require.NotEmpty(t, found[0][roadtrip.IDField])
}

func testFindInsertionOrderGivenIDs(t *testing.T, s docstore.Store) {
	// Arrange
	ctx := context.Background()
	require.Nil(t, s.Insert(ctx, roadtrip.TripsCollection,
		roadtrip.Document{roadtrip.IDField: "z", "tripId": "t1", "userId": "u1"},
	))
	require.Nil(t, s.Insert(ctx, roadtrip.TripsCollection,
		roadtrip.Document{"tripId": "t2", "userId": "u1"},
	))
	require.Nil(t, s.Insert(ctx, roadtrip.TripsCollection,
		roadtrip.Document{roadtrip.IDField: "a", "tripId": "t3", "userId": "u1"},
	))

	// Act
	found, err := s.Find(ctx, roadtrip.TripsCollection, roadtrip.ByUserID("u1"))

	// Assert
	require.Nil(t, err)
	require.Len(t, found, 3)
	require.Equal(t, "t1", found[0].GetString(roadtrip.TripIDField))
	require.Equal(t, "t2", found[1].GetString(roadtrip.TripIDField))
	require.Equal(t, "t3", found[2].GetString(roadtrip.TripIDField))
	require.Equal(t, "a", found[2].GetString(roadtrip.IDField))

	// Act
	first, err := s.FindOne(ctx, roadtrip.TripsCollection, roadtrip.ByUserID("u1"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, "t1", first.GetString(roadtrip.TripIDField))
}

func testFindEmpty(t *testing.T, s docstore.Store) {
	// Act
	found, err := s.Find(context.Background(), roadtrip.TripsCollection, roadtrip.ByUserID("nobody"))

	// Assert
	require.Nil(t, err)
	require.NotNil(t, found)
	require.Empty(t, found)
}

func testFindUnfiltered(t *testing.T, s docstore.Store) {
	// Arrange
	ctx := context.Background()
	require.Nil(t, s.Insert(ctx, roadtrip.TripsCollection,
		roadtrip.Document{"tripId": "t1", "userId": "u1"},
		roadtrip.Document{"tripId": "t2", "userId": "u2"},
	))

	// Act
	found, err := s.Find(ctx, roadtrip.TripsCollection, nil)

	// Assert
	require.Nil(t, err)
	require.Len(t, found, 2)
}

func testFindOneNotExist(t *testing.T, s docstore.Store) {
	// Act
	found, err := s.FindOne(context.Background(), roadtrip.TripsCollection, roadtrip.ByTripID("t1"))

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrNotExist)
	require.Nil(t, found)
}

func testFindOneEmbedded(t *testing.T, s docstore.Store) {
	// Arrange
	ctx := context.Background()
	require.Nil(t, s.Insert(ctx, roadtrip.StopsCollection,
		roadtrip.Document{"tripId": "t1", "stops": []any{
			map[string]any{"stopId": "s1", "name": "Moab"},
			map[string]any{"stopId": "s2", "name": "Escalante"},
		}},
		roadtrip.Document{"tripId": "t2", "stops": []any{
			map[string]any{"stopId": "s2", "name": "Bend"},
		}},
	))

	// Act
	found, err := s.FindOne(ctx, roadtrip.StopsCollection, roadtrip.ByStop("t1", "s2"))

	// Assert
	require.Nil(t, err)
	stop, ok := found.Stop("s2")
	require.True(t, ok)
	require.Equal(t, "Escalante", stop.GetString("name"))

	// Act
	_, err = s.FindOne(ctx, roadtrip.StopsCollection, roadtrip.ByStop("t2", "s1"))

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrNotExist)
}

func testDelete(t *testing.T, s docstore.Store) {
	// Arrange
	ctx := context.Background()
	require.Nil(t, s.Insert(ctx, roadtrip.TripsCollection,
		roadtrip.Document{"tripId": "t1"},
		roadtrip.Document{"tripId": "t2"},
		roadtrip.Document{"tripId": "t1"},
	))

	// Act
	n, err := s.Delete(ctx, roadtrip.TripsCollection, roadtrip.ByTripID("t1"))

	// Assert
	require.Nil(t, err)
	require.EqualValues(t, 2, n)

	_, err = s.FindOne(ctx, roadtrip.TripsCollection, roadtrip.ByTripID("t1"))
	require.ErrorIs(t, err, roadtrip.ErrNotExist)

	// Act
	n, err = s.Delete(ctx, roadtrip.TripsCollection, roadtrip.ByTripID("t1"))

	// Assert
	require.Nil(t, err)
	require.Zero(t, n)
}

func testCount(t *testing.T, s docstore.Store) {
	// Arrange
	ctx := context.Background()

	// Act
	n, err := s.Count(ctx, roadtrip.TripsCollection, nil)

	// Assert
	require.Nil(t, err)
	require.Zero(t, n)

	// Arrange
	require.Nil(t, s.Insert(ctx, roadtrip.TripsCollection,
		roadtrip.Document{"tripId": "t1", "userId": "u1"},
		roadtrip.Document{"tripId": "t2", "userId": "u1"},
		roadtrip.Document{"tripId": "t3", "userId": "u2"},
	))

	// Act
	n, err = s.Count(ctx, roadtrip.TripsCollection, nil)

	// Assert
	require.Nil(t, err)
	require.EqualValues(t, 3, n)

	// Act
	n, err = s.Count(ctx, roadtrip.TripsCollection, roadtrip.ByUserID("u1"))

	// Assert
	require.Nil(t, err)
	require.EqualValues(t, 2, n)
}

func testCollectionsIsolated(t *testing.T, s docstore.Store) {
	// Arrange
	ctx := context.Background()
	require.Nil(t, s.Insert(ctx, roadtrip.TripsCollection, roadtrip.Document{"tripId": "t1"}))

	// Act
	n, err := s.Count(ctx, roadtrip.StopsCollection, roadtrip.ByTripID("t1"))

	// Assert
	require.Nil(t, err)
	require.Zero(t, n)
}
