// Package connectivity — active reachability probing.
//
// The Prober is the fallback signal source for environments without a
// platform push API: it polls a generate_204-style endpoint and feeds
// the result into the Monitor. Failed probes are spaced out with
// exponential backoff so a dead link does not burn battery or airtime.
package connectivity

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
)

// DefaultProbeURL is a no-content endpoint whose 204 response is cheap
// and unambiguous: captive portals rewrite it to something else.
const DefaultProbeURL = "http://connectivitycheck.gstatic.com/generate_204"

// Prober polls a probe URL and applies the outcome to a Monitor.
type Prober struct {
	Monitor  *Monitor
	URL      string
	Interval time.Duration // spacing between successful probes
	Client   *http.Client
	Log      zerolog.Logger
}

// NewProber builds a prober with the default endpoint, a 10s interval,
// and a short-timeout HTTP client.
func NewProber(m *Monitor, log zerolog.Logger) *Prober {
	return &Prober{
		Monitor:  m,
		URL:      DefaultProbeURL,
		Interval: 10 * time.Second,
		Client:   &http.Client{Timeout: 5 * time.Second},
		Log:      log.With().Str("component", "connectivity").Logger(),
	}
}

// Run probes until ctx is cancelled. Successful probes repeat on the
// fixed interval; failures back off exponentially (capped at the
// interval's order of magnitude) until the next success resets them.
func (p *Prober) Run(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = p.Interval * 3

	for {
		sleep := p.Interval
		if p.probe(ctx) {
			bo.Reset()
		} else {
			sleep = bo.NextBackOff()
			if sleep == backoff.Stop {
				bo.Reset()
				sleep = bo.NextBackOff()
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(sleep):
		}
	}
}

// probe issues one request and applies the resulting Signal. It reports
// whether the probe found the internet reachable.
func (p *Prober) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		p.Log.Error().Err(err).Msg("probe request build failed")
		return false
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		// Transport-level failure: no link at all.
		p.Monitor.Apply(Signal{Connected: false})
		return false
	}
	resp.Body.Close()

	// A rewritten status (portal splash page) means the link is up but
	// the internet is not actually reachable.
	reachable := resp.StatusCode == http.StatusNoContent
	p.Monitor.Apply(Signal{Connected: true, InternetReachable: &reachable})
	if !reachable {
		p.Log.Warn().Int("status", resp.StatusCode).Msg("probe reached a portal, not the internet")
	}
	return reachable
}
