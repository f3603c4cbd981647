package aiub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

// The portal answers HTTP 200 for both good and bad logins; the only
// reliable signal is where the redirect chain lands. Both predicates
// are substring checks on purpose, that is the wire contract.
func isStudentUrl(u string) bool {
	return strings.Contains(u, "/Student")
}

func isEvaluationPendingUrl(u string) bool {
	return strings.Contains(u, "Student/Tpe/Start")
}

// cookieRecord mirrors the layout previously persisted by the mobile
// app, so existing saved sessions keep deserializing.
type cookieRecord struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires"`
	HttpOnly bool      `json:"http_only"`
	Secure   bool      `json:"secure"`
}

// rememberCookies keeps the full Set-Cookie attributes of every cookie
// seen on the wire. The stdlib jar only exposes name/value pairs back,
// which is not enough to persist a session.
func (c *Client) rememberCookies(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cookie := range cookies {
		c.cookies[cookie.Name] = cookie
	}
}

// SerializeSession dumps the session cookies as an opaque blob fit for
// the keychain.
func (c *Client) SerializeSession() ([]byte, error) {
	c.mu.Lock()
	records := make([]cookieRecord, 0, len(c.cookies))
	for _, cookie := range c.cookies {
		records = append(records, cookieRecord{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Domain:   cookie.Domain,
			Path:     cookie.Path,
			Expires:  cookie.Expires,
			HttpOnly: cookie.HttpOnly,
			Secure:   cookie.Secure,
		})
	}
	c.mu.Unlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return json.Marshal(records)
}

// RestoreSession injects a previously serialized cookie blob into the
// jar and validates it with a probe request against the authenticated
// surface. It reports false on any failure: a corrupt blob is the
// same as having no saved session.
func (c *Client) RestoreSession(ctx context.Context, blob []byte) bool {
	var records []cookieRecord
	err := json.Unmarshal(blob, &records)
	if err != nil {
		slog.WarnContext(ctx, "discarding corrupt session blob", "err", err)
		return false
	}
	if len(records) == 0 {
		return false
	}

	cookies := make([]*http.Cookie, len(records))
	for i, r := range records {
		cookies[i] = &http.Cookie{
			Name:     r.Name,
			Value:    r.Value,
			Domain:   r.Domain,
			Path:     r.Path,
			Expires:  r.Expires,
			HttpOnly: r.HttpOnly,
			Secure:   r.Secure,
		}
	}
	c.Http.GetClient().Jar.SetCookies(c.BaseUrl, cookies)
	c.rememberCookies(cookies)

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/Student")
	if err != nil {
		slog.WarnContext(ctx, "session probe failed", "err", err)
		return false
	}

	landed := res.RawResponse.Request.URL.String()
	return isStudentUrl(landed) && !isEvaluationPendingUrl(landed)
}
