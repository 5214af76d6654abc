package harvester

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sunflower-bot/lib/scrapers/sunflower"
	"sunflower-bot/lib/telemetry"

	"github.com/stretchr/testify/require"
)

type click struct {
	x, y float64
}

type fakeSession struct {
	opened bool
	closed bool
	clicks []click
}

func (s *fakeSession) OpenGame(ctx context.Context) error {
	s.opened = true
	return nil
}

func (s *fakeSession) Click(ctx context.Context, x, y float64) error {
	s.clicks = append(s.clicks, click{x, y})
	return nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

// Click fails once failAfter clicks have been recorded.
type failingSession struct {
	fakeSession
	failAfter int
}

func (s *failingSession) Click(ctx context.Context, x, y float64) error {
	if len(s.clicks) >= s.failAfter {
		return errors.New("click failed")
	}
	return s.fakeSession.Click(ctx, x, y)
}

func newFarmServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newFarmClient(server *httptest.Server) *sunflower.Client {
	return sunflower.NewClient(sunflower.ClientOptions{BaseUrl: server.URL})
}

func TestRunPurchasesAndHarvests(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/harvester")
	defer cleanup()

	server := newFarmServer(t, `{"trees":[{"x":1,"y":2},{"coordinates":{"x":3,"y":4}}]}`)

	session := &fakeSession{}
	err := Run(context.Background(), Options{
		FarmId:          "42",
		ProfileDir:      t.TempDir(),
		StoreCoordinate: sunflower.Coordinate{X: 100, Y: 200},
		Inventory:       sunflower.Inventory{"axes": 12, "gold": 0},
		Client:          newFarmClient(server),
		NewSession: func(ctx context.Context, profileDir string) (Session, error) {
			return session, nil
		},
	})
	require.NoError(t, err)
	require.True(t, session.opened)
	require.True(t, session.closed)

	// one store click, then three clicks per tree in discovery order
	expected := []click{
		{100, 200},
		{1, 2}, {1, 2}, {1, 2},
		{3, 4}, {3, 4}, {3, 4},
	}
	require.Equal(t, expected, session.clicks)
}

func TestRunHarvestClickOrder(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/harvester")
	defer cleanup()

	server := newFarmServer(t, `{"trees":[{"x":1,"y":1},{"x":2,"y":2},{"x":3,"y":3}]}`)

	session := &fakeSession{}
	err := Run(context.Background(), Options{
		FarmId:          "42",
		StoreCoordinate: sunflower.Coordinate{X: 9, Y: 9},
		Inventory:       sunflower.Inventory{"axes": 12},
		Client:          newFarmClient(server),
		NewSession: func(ctx context.Context, profileDir string) (Session, error) {
			return session, nil
		},
	})
	require.NoError(t, err)

	// 1 store click + 3 trees * 3 clicks, repetition nested inside
	// each coordinate
	require.Len(t, session.clicks, 10)
	require.Equal(t, []click{
		{9, 9},
		{1, 1}, {1, 1}, {1, 1},
		{2, 2}, {2, 2}, {2, 2},
		{3, 3}, {3, 3}, {3, 3},
	}, session.clicks)
}

func TestRunRespectsClicksPerTree(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/harvester")
	defer cleanup()

	server := newFarmServer(t, `{"trees":[{"x":1,"y":2}]}`)

	session := &fakeSession{}
	err := Run(context.Background(), Options{
		FarmId:        "42",
		Inventory:     sunflower.Inventory{"axes": 12},
		ClicksPerTree: 1,
		Client:        newFarmClient(server),
		NewSession: func(ctx context.Context, profileDir string) (Session, error) {
			return session, nil
		},
	})
	require.NoError(t, err)
	require.Equal(t, []click{{0, 0}, {1, 2}}, session.clicks)
}

func TestRunSkipsWhenPolicyDeclines(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/harvester")
	defer cleanup()

	server := newFarmServer(t, `{"trees":[{"x":1,"y":2}]}`)

	factoryCalled := false
	err := Run(context.Background(), Options{
		FarmId:    "42",
		Inventory: sunflower.Inventory{"axes": 2, "gold": 10},
		Client:    newFarmClient(server),
		NewSession: func(ctx context.Context, profileDir string) (Session, error) {
			factoryCalled = true
			return &fakeSession{}, nil
		},
	})
	require.NoError(t, err)
	require.False(t, factoryCalled)
}

func TestRunSkipsWhenNoTrees(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/harvester")
	defer cleanup()

	server := newFarmServer(t, `{}`)

	factoryCalled := false
	err := Run(context.Background(), Options{
		FarmId:    "42",
		Inventory: sunflower.Inventory{"axes": 12},
		Client:    newFarmClient(server),
		NewSession: func(ctx context.Context, profileDir string) (Session, error) {
			factoryCalled = true
			return &fakeSession{}, nil
		},
	})
	require.NoError(t, err)
	require.False(t, factoryCalled)
}

func TestRunPropagatesFetchError(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/harvester")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	factoryCalled := false
	err := Run(context.Background(), Options{
		FarmId:    "42",
		Inventory: sunflower.Inventory{"axes": 12},
		Client:    newFarmClient(server),
		NewSession: func(ctx context.Context, profileDir string) (Session, error) {
			factoryCalled = true
			return &fakeSession{}, nil
		},
	})
	require.Error(t, err)
	require.False(t, factoryCalled)
}

func TestRunClosesSessionOnClickFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:services/harvester")
	defer cleanup()

	server := newFarmServer(t, `{"trees":[{"x":1,"y":2}]}`)

	session := &failingSession{failAfter: 2}
	err := Run(context.Background(), Options{
		FarmId:    "42",
		Inventory: sunflower.Inventory{"axes": 12},
		Client:    newFarmClient(server),
		NewSession: func(ctx context.Context, profileDir string) (Session, error) {
			return session, nil
		},
	})
	require.Error(t, err)
	require.True(t, session.closed)
}
