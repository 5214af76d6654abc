package browser

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("browser")

const GameUrl = "https://sunflower-land.com/play/"

type Options struct {
	// chrome user data dir, keeps cookies and localStorage isolated
	// per profile and persistent between runs
	ProfileDir string
	// defaults to GameUrl when empty
	GameUrl  string
	Headless bool
	// defaults to 1280x720 when zero
	WindowWidth  int
	WindowHeight int
}

// Session owns one Chrome process and one tab pointed at the game.
type Session struct {
	ctx         context.Context
	gameUrl     string
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// Launch starts Chrome with a persistent profile rooted at
// opts.ProfileDir. The browser process is started eagerly so launch
// failures surface here rather than on the first action.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	_, span := tracer.Start(ctx, "Launch")
	defer span.End()

	width := opts.WindowWidth
	if width == 0 {
		width = 1280
	}
	height := opts.WindowHeight
	if height == 0 {
		height = 720
	}
	gameUrl := opts.GameUrl
	if gameUrl == "" {
		gameUrl = GameUrl
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(opts.ProfileDir),
		chromedp.Flag("headless", opts.Headless),
		chromedp.WindowSize(width, height),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	err := chromedp.Run(tabCtx)
	if err != nil {
		cancelTab()
		cancelAlloc()
		return nil, err
	}

	slog.InfoContext(ctx, "browser launched", "profile_dir", opts.ProfileDir, "headless", opts.Headless)

	return &Session{
		ctx:         tabCtx,
		gameUrl:     gameUrl,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}, nil
}

// OpenGame navigates the tab to the game and returns once
// DOMContentLoaded fires. The game keeps streaming assets long after
// that, waiting for the full load event would stall the run.
func (s *Session) OpenGame(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "OpenGame")
	defer span.End()

	err := chromedp.Run(s.ctx, navigateDOMContentLoaded(s.gameUrl))
	if err != nil {
		return err
	}

	var html string
	err = chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html))
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return err
	}
	if doc.Find("#root").Length() == 0 {
		slog.WarnContext(ctx, "game root missing after navigation", "url", s.gameUrl)
	}

	return nil
}

// Click issues one synthesized mouse click at viewport coordinates.
// Open loop on purpose, there is no signal from the game to tell
// whether the click landed on anything.
func (s *Session) Click(ctx context.Context, x, y float64) error {
	_, span := tracer.Start(ctx, "Click")
	defer span.End()

	return chromedp.Run(s.ctx, chromedp.MouseClickXY(x, y))
}

// Close tears down the tab and the browser process.
func (s *Session) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancelTab()
	s.cancelAlloc()
	return err
}

func navigateDOMContentLoaded(urlstr string) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		fired := make(chan struct{})
		lctx, cancel := context.WithCancel(ctx)
		defer cancel()
		chromedp.ListenTarget(lctx, func(ev any) {
			if _, ok := ev.(*page.EventDomContentEventFired); ok {
				cancel()
				close(fired)
			}
		})

		_, _, _, err := page.Navigate(urlstr).Do(ctx)
		if err != nil {
			return err
		}

		select {
		case <-fired:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
