package sunflower

import (
	"sunflower-bot/lib/restyutil"
)

// SetRestyInstrumentOutput rebuilds the underlying http client with
// full request/response dumps routed to `out`. Used by the CLI in
// verbose mode.
func (c *Client) SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	c.http = newHttpClient(c.baseUrl, c.apiKey)
	restyutil.InstrumentClient(c.http, out)
}
