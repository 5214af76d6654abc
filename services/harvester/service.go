package harvester

import (
	"context"
	"log/slog"

	"sunflower-bot/lib/browser"
	"sunflower-bot/lib/scrapers/sunflower"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/harvester")

// Session is the slice of browser behavior a harvest pass needs,
// satisfied by *browser.Session.
type Session interface {
	OpenGame(ctx context.Context) error
	Click(ctx context.Context, x, y float64) error
	Close() error
}

type SessionFactory func(ctx context.Context, profileDir string) (Session, error)

// DefaultSessionFactory launches a real, non-headless Chrome with a
// persistent profile.
func DefaultSessionFactory(ctx context.Context, profileDir string) (Session, error) {
	return browser.Launch(ctx, browser.Options{ProfileDir: profileDir})
}

const defaultClicksPerTree = 3

type Options struct {
	FarmId     string
	ApiKey     string
	ProfileDir string
	// screen-space position of the axe store
	StoreCoordinate sunflower.Coordinate
	// caller-supplied snapshot, never fetched from the api
	Inventory sunflower.Inventory
	// the zero value is a sentinel for sunflower.DefaultPurchasePolicy,
	// explicit {0, 0} thresholds are not representable
	Policy sunflower.PurchasePolicy
	// defaults to 3 when zero, a pass that runs always clicks each
	// tree at least once
	ClicksPerTree int
	// overrides the default api client, mainly for tests and for
	// callers that want instrumented clients
	Client *sunflower.Client
	// defaults to DefaultSessionFactory
	NewSession SessionFactory
}

// Run executes one purchase-and-harvest pass: fetch the farm state,
// classify resources, evaluate the purchase policy and, when it holds
// and there are trees to chop, drive the browser through one store
// click and ClicksPerTree clicks per tree in discovery order.
//
// The pass exits early without ever launching a browser when the
// policy declines or the farm has no trees. Once a session exists its
// release is deferred, a failed navigation or click still closes it.
func Run(ctx context.Context, opts Options) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	policy := opts.Policy
	if policy == (sunflower.PurchasePolicy{}) {
		policy = sunflower.DefaultPurchasePolicy
	}
	clicksPerTree := opts.ClicksPerTree
	if clicksPerTree == 0 {
		clicksPerTree = defaultClicksPerTree
	}
	client := opts.Client
	if client == nil {
		client = sunflower.NewClient(sunflower.ClientOptions{ApiKey: opts.ApiKey})
	}
	newSession := opts.NewSession
	if newSession == nil {
		newSession = DefaultSessionFactory
	}

	farmData, err := client.FetchFarm(ctx, opts.FarmId)
	if err != nil {
		return err
	}
	groups := sunflower.ParseResourceGroups(farmData)

	if !policy.ShouldPurchaseAxes(opts.Inventory) {
		slog.InfoContext(ctx, "purchase policy declined, skipping run", "farm_id", opts.FarmId)
		return nil
	}

	trees := groups[sunflower.ResourceTrees]
	if trees == nil || len(trees.Coordinates) == 0 {
		slog.InfoContext(ctx, "no trees to chop, skipping run", "farm_id", opts.FarmId)
		return nil
	}

	session, err := newSession(ctx, opts.ProfileDir)
	if err != nil {
		return err
	}
	defer session.Close()

	err = session.OpenGame(ctx)
	if err != nil {
		return err
	}

	err = session.Click(ctx, opts.StoreCoordinate.X, opts.StoreCoordinate.Y)
	if err != nil {
		return err
	}

	for _, coord := range trees.Coordinates {
		for i := 0; i < clicksPerTree; i++ {
			err = session.Click(ctx, coord.X, coord.Y)
			if err != nil {
				return err
			}
		}
	}

	slog.InfoContext(
		ctx, "harvest pass complete",
		"farm_id", opts.FarmId,
		"trees", len(trees.Coordinates),
		"clicks_per_tree", clicksPerTree,
	)
	return nil
}
