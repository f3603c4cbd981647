// Package aiub scrapes the AIUB student portal. The portal has no
// public API: login is a form POST whose outcome is only visible in
// the final redirected url, and every data source is an HTML page.
package aiub

import (
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"aiubportal-backend/lib/restyutil"
	"aiubportal-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://portal.aiub.edu"

// ErrSessionExpired reports that a request was redirected back to the
// login surface, meaning the session cookies are no longer accepted.
var ErrSessionExpired = errors.New("portal session expired")

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	mu      sync.Mutex
	cookies map[string]*http.Cookie
}

type ClientOptions struct {
	// BaseUrl defaults to the production portal when empty.
	BaseUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)
	client.SetRetryCount(1)

	telemetry.InstrumentResty(client, "scrapers/aiub/http")
	restyutil.AttachTranscriptOutput(client, proxyOutput{})

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
		cookies: map[string]*http.Cookie{},
	}

	// Set-Cookie headers on intermediate redirect responses never
	// reach the final resty response, so cookies are recorded per
	// round trip at the transport.
	httpClient := client.GetClient()
	httpClient.Transport = cookieRecorder{
		next:   httpClient.Transport,
		record: c.rememberCookies,
	}
	return c, nil
}

type cookieRecorder struct {
	next   http.RoundTripper
	record func([]*http.Cookie)
}

func (r cookieRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	res, err := r.next.RoundTrip(req)
	if err == nil {
		r.record(res.Cookies())
	}
	return res, err
}
