package sunflower

import (
	"context"
	"fmt"
	"time"

	"sunflower-bot/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/sunflower")

const DefaultBaseUrl = "https://api.sunflower-land.com"

type Client struct {
	http    *resty.Client
	baseUrl string
	apiKey  string
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl when empty
	BaseUrl string
	// presented on every request via the x-api-key header
	ApiKey string
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &Client{
		http:    newHttpClient(baseUrl, opts.ApiKey),
		baseUrl: baseUrl,
		apiKey:  opts.ApiKey,
	}
}

func newHttpClient(baseUrl, apiKey string) *resty.Client {
	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetHeader("x-api-key", apiKey)
	client.SetTimeout(time.Second * 30)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "scrapers/sunflower/http")

	return client
}

// FetchFarm performs a single read of the farm's public state and
// returns the decoded body verbatim. No retry, no caching, any
// transport failure or non-2xx status is returned as-is.
func (c *Client) FetchFarm(ctx context.Context, farmId string) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, "FetchFarm")
	defer span.End()

	var farmData map[string]any
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&farmData).
		Get(fmt.Sprintf("/community/farms/%s", farmId))
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch farm %s: %s", farmId, res.Status())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return farmData, nil
}
