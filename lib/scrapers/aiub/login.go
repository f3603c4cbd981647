package aiub

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"

	"aiubportal-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type LoginStatus int

const (
	StatusAuthenticated LoginStatus = iota
	StatusCaptchaRequired
	StatusInvalidCredentials
	StatusEvaluationPending
	StatusTransportError
)

func (s LoginStatus) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusCaptchaRequired:
		return "captcha required"
	case StatusInvalidCredentials:
		return "invalid credentials"
	case StatusEvaluationPending:
		return "evaluation pending"
	case StatusTransportError:
		return "transport error"
	}
	return "unknown"
}

// CaptchaChallenge is a server-issued image plus an opaque id; the
// caller must show the image to the user and come back through
// SubmitCaptcha.
type CaptchaChallenge struct {
	ImageUrl string
	Id       string
}

// LoginOutcome is a discriminated result: exactly one branch of the
// login state machine. Transport problems are an outcome too, login
// never returns a raw error.
type LoginOutcome struct {
	Status  LoginStatus
	Captcha *CaptchaChallenge
	Detail  string
}

// Login posts the credential form to the portal root.
func (c *Client) Login(ctx context.Context, username, password string) LoginOutcome {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	return c.submitLoginForm(ctx, url.Values{
		"UserName": {username},
		"Password": {password},
	})
}

// SubmitCaptcha retries the login with a solved captcha. A second
// challenge comes back as a fresh CaptchaRequired outcome, it is never
// retried automatically.
func (c *Client) SubmitCaptcha(ctx context.Context, username, password, code, captchaId string) LoginOutcome {
	ctx, span := tracer.Start(ctx, "client:SubmitCaptcha")
	defer span.End()

	return c.submitLoginForm(ctx, url.Values{
		"UserName":    {username},
		"Password":    {password},
		"CaptchaCode": {code},
		"CaptchaId":   {captchaId},
	})
}

func (c *Client) submitLoginForm(ctx context.Context, form url.Values) LoginOutcome {
	res, err := c.Http.R().
		SetContext(ctx).
		SetBody(form.Encode()).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("Referer", c.BaseUrl.String()).
		Post("/")
	if err != nil {
		return LoginOutcome{Status: StatusTransportError, Detail: err.Error()}
	}

	landed := res.RawResponse.Request.URL.String()
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("login.final_url", landed))

	// evaluation lock wins over everything else on the page
	if isEvaluationPendingUrl(landed) {
		return LoginOutcome{Status: StatusEvaluationPending}
	}
	if isStudentUrl(landed) {
		return LoginOutcome{Status: StatusAuthenticated}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		slog.WarnContext(ctx, "failed to parse login response", "err", err)
		return LoginOutcome{Status: StatusInvalidCredentials}
	}
	if challenge, ok := c.findCaptcha(doc); ok {
		return LoginOutcome{Status: StatusCaptchaRequired, Captcha: &challenge}
	}
	return LoginOutcome{Status: StatusInvalidCredentials}
}

// findCaptcha reports whether the page carries a visible captcha
// container. A captcha div hidden with display: none does not count.
func (c *Client) findCaptcha(doc *goquery.Document) (CaptchaChallenge, bool) {
	div := doc.Find("div#captcha").First()
	if div.Length() == 0 {
		return CaptchaChallenge{}, false
	}
	if strings.Contains(div.AttrOr("style", ""), "display: none") {
		return CaptchaChallenge{}, false
	}

	src := div.Find("img").First().AttrOr("src", "")
	if src == "" {
		return CaptchaChallenge{}, false
	}
	if strings.HasPrefix(src, "/") {
		src = htmlutil.ResolveRef(c.BaseUrl, src)
	}

	return CaptchaChallenge{
		ImageUrl: src,
		Id:       doc.Find("input[name=CaptchaId]").First().AttrOr("value", ""),
	}, true
}
