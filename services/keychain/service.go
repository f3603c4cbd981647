package keychain

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"aiubportal-backend/lib/telemetry"
	"aiubportal-backend/services/keychain/db"

	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = telemetry.Tracer("aiubportal.services.keychain")

// Credentials is a username/password pair stored under a (namespace,
// id) key.
type Credentials struct {
	Username string
	Password string
}

// Service is a sqlite-backed store for portal credentials and
// serialized session blobs.
type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

func (s Service) SetCredentials(ctx context.Context, namespace, id string, key Credentials) error {
	ctx, span := tracer.Start(ctx, "SetCredentials")
	defer span.End()

	err := s.qry.CreateCredential(ctx, db.CreateCredentialParams{
		Namespace: namespace,
		ID:        id,
		Username:  key.Username,
		Password:  key.Password,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upsert credential row")
		return err
	}
	return nil
}

// GetCredentials reports ok=false when no credentials have been stored
// under the key.
func (s Service) GetCredentials(ctx context.Context, namespace, id string) (Credentials, bool, error) {
	ctx, span := tracer.Start(ctx, "GetCredentials")
	defer span.End()

	row, err := s.qry.GetCredential(ctx, db.GetCredentialParams{
		Namespace: namespace,
		ID:        id,
	})
	if err == sql.ErrNoRows {
		return Credentials{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read credential row")
		return Credentials{}, false, err
	}
	return Credentials{
		Username: row.Username,
		Password: row.Password,
	}, true, nil
}

func (s Service) SetSession(ctx context.Context, namespace, id string, data []byte) error {
	ctx, span := tracer.Start(ctx, "SetSession")
	defer span.End()

	err := s.qry.CreateSession(ctx, db.CreateSessionParams{
		Namespace: namespace,
		ID:        id,
		Data:      string(data),
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upsert session row")
		return err
	}
	return nil
}

// GetSession reports ok=false when no session blob has been stored
// under the key.
func (s Service) GetSession(ctx context.Context, namespace, id string) ([]byte, bool, error) {
	ctx, span := tracer.Start(ctx, "GetSession")
	defer span.End()

	row, err := s.qry.GetSession(ctx, db.GetSessionParams{
		Namespace: namespace,
		ID:        id,
	})
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read session row")
		return nil, false, err
	}
	return []byte(row.Data), true, nil
}

func (s Service) DeleteSession(ctx context.Context, namespace, id string) error {
	ctx, span := tracer.Start(ctx, "DeleteSession")
	defer span.End()

	err := s.qry.DeleteSession(ctx, db.DeleteSessionParams{
		Namespace: namespace,
		ID:        id,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete session row")
		return err
	}
	return nil
}

// StartSessionSweepDaemon deletes session blobs older than maxAge
// every 30 minutes until ctx is cancelled. Portal sessions go stale
// server-side anyway, this just keeps dead cookies out of the store.
func (s Service) StartSessionSweepDaemon(ctx context.Context, maxAge time.Duration) {
	go func() {
		slog.InfoContext(ctx, "start daemon", "task", "sweep stale sessions every 30 minutes")

		ticker := time.NewTicker(time.Minute * 30)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().Add(-maxAge).Unix()
				err := s.qry.DeleteSessionsBefore(ctx, cutoff)
				if err != nil {
					slog.WarnContext(ctx, "failed to sweep stale sessions", "err", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
