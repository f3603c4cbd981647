package aiub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginAuthenticated(t *testing.T) {
	portal := newFakePortal("22-00000-1", "hunter2")
	client := newTestClient(t, portal)

	outcome := client.Login(context.Background(), "22-00000-1", "hunter2")
	require.Equal(t, StatusAuthenticated, outcome.Status)
	require.Nil(t, outcome.Captcha)
}

func TestLoginInvalidCredentials(t *testing.T) {
	portal := newFakePortal("22-00000-1", "hunter2")
	client := newTestClient(t, portal)

	// the failure page carries a hidden captcha div, which must not be
	// mistaken for a captcha challenge
	outcome := client.Login(context.Background(), "22-00000-1", "wrong")
	require.Equal(t, StatusInvalidCredentials, outcome.Status)
	require.Nil(t, outcome.Captcha)
}

func TestLoginCaptchaRequired(t *testing.T) {
	portal := newFakePortal("22-00000-1", "hunter2")
	portal.captchaId = "challenge-42"
	portal.captchaCode = "XK7Q"
	client := newTestClient(t, portal)

	outcome := client.Login(context.Background(), "22-00000-1", "hunter2")
	require.Equal(t, StatusCaptchaRequired, outcome.Status)
	require.NotNil(t, outcome.Captcha)
	require.Equal(t, "challenge-42", outcome.Captcha.Id)
	require.Equal(t, client.BaseUrl.String()+"/Captcha/Image?c=1", outcome.Captcha.ImageUrl)

	// wrong code surfaces a fresh challenge instead of looping
	outcome = client.SubmitCaptcha(context.Background(), "22-00000-1", "hunter2", "NOPE", "challenge-42")
	require.Equal(t, StatusCaptchaRequired, outcome.Status)
	require.NotNil(t, outcome.Captcha)

	outcome = client.SubmitCaptcha(context.Background(), "22-00000-1", "hunter2", "XK7Q", "challenge-42")
	require.Equal(t, StatusAuthenticated, outcome.Status)
}

func TestLoginEvaluationPending(t *testing.T) {
	portal := newFakePortal("22-00000-1", "hunter2")
	portal.evaluationPending = true
	client := newTestClient(t, portal)

	outcome := client.Login(context.Background(), "22-00000-1", "hunter2")
	require.Equal(t, StatusEvaluationPending, outcome.Status)
}

func TestLoginTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	outcome := client.Login(context.Background(), "22-00000-1", "hunter2")
	require.Equal(t, StatusTransportError, outcome.Status)
	require.NotEmpty(t, outcome.Detail)
}
