package portal

import (
	"context"
	"log/slog"

	"aiubportal-backend/lib/scrapers/aiub"
	"aiubportal-backend/lib/telemetry"
	"aiubportal-backend/services/keychain"
)

var tracer = telemetry.Tracer("aiubportal.services.portal")

// Namespace keys portal rows in the keychain, in case the store is
// ever shared with another scraper.
const Namespace = "aiub"

// Service ties the portal client to the keychain: successful logins
// persist credentials and the session blob, later runs resume from
// the blob without touching the login form.
type Service struct {
	client *aiub.Client
	keys   keychain.Service
}

func NewService(client *aiub.Client, keys keychain.Service) Service {
	return Service{
		client: client,
		keys:   keys,
	}
}

// Authenticate runs a credential login. On success the credentials
// and the freshly minted session are persisted in the background;
// persistence failures are logged and never surface to the caller.
func (s Service) Authenticate(ctx context.Context, username, password string) aiub.LoginOutcome {
	ctx, span := tracer.Start(ctx, "Authenticate")
	defer span.End()

	outcome := s.client.Login(ctx, username, password)
	if outcome.Status == aiub.StatusAuthenticated {
		go s.persist(context.WithoutCancel(ctx), username, password)
	}
	return outcome
}

// SubmitCaptcha retries a login that previously came back
// CaptchaRequired.
func (s Service) SubmitCaptcha(ctx context.Context, username, password, code, captchaId string) aiub.LoginOutcome {
	ctx, span := tracer.Start(ctx, "SubmitCaptcha")
	defer span.End()

	outcome := s.client.SubmitCaptcha(ctx, username, password, code, captchaId)
	if outcome.Status == aiub.StatusAuthenticated {
		go s.persist(context.WithoutCancel(ctx), username, password)
	}
	return outcome
}

func (s Service) persist(ctx context.Context, username, password string) {
	err := s.keys.SetCredentials(ctx, Namespace, username, keychain.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to persist credentials", "err", err)
	}

	blob, err := s.client.SerializeSession()
	if err != nil {
		slog.WarnContext(ctx, "failed to serialize session", "err", err)
		return
	}
	err = s.keys.SetSession(ctx, Namespace, username, blob)
	if err != nil {
		slog.WarnContext(ctx, "failed to persist session", "err", err)
	}
}

// RestoreSession loads the saved blob for the given user and probes
// the portal with it. A stale or rejected blob is deleted from the
// keychain so the next run goes straight to the login form.
func (s Service) RestoreSession(ctx context.Context, username string) bool {
	ctx, span := tracer.Start(ctx, "RestoreSession")
	defer span.End()

	blob, ok, err := s.keys.GetSession(ctx, Namespace, username)
	if err != nil {
		slog.WarnContext(ctx, "failed to read saved session", "err", err)
		return false
	}
	if !ok {
		return false
	}

	if !s.client.RestoreSession(ctx, blob) {
		slog.InfoContext(ctx, "saved session rejected by portal", "username", username)
		err := s.keys.DeleteSession(ctx, Namespace, username)
		if err != nil {
			slog.WarnContext(ctx, "failed to delete stale session", "err", err)
		}
		return false
	}
	return true
}

// SavedCredentials returns the last credentials that logged in
// successfully, for re-login once a restored session goes stale.
func (s Service) SavedCredentials(ctx context.Context, username string) (keychain.Credentials, bool) {
	key, ok, err := s.keys.GetCredentials(ctx, Namespace, username)
	if err != nil {
		slog.WarnContext(ctx, "failed to read saved credentials", "err", err)
		return keychain.Credentials{}, false
	}
	return key, ok
}

func (s Service) FetchStudentSnapshot(ctx context.Context) (aiub.StudentSnapshot, error) {
	ctx, span := tracer.Start(ctx, "FetchStudentSnapshot")
	defer span.End()

	return s.client.FetchSnapshot(ctx)
}
