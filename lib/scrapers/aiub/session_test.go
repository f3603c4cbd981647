package aiub

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	portal := newFakePortal("22-00000-1", "hunter2")
	client := newTestClient(t, portal)

	outcome := client.Login(context.Background(), "22-00000-1", "hunter2")
	require.Equal(t, StatusAuthenticated, outcome.Status)

	blob, err := client.SerializeSession()
	if err != nil {
		t.Fatal(err)
	}

	var records []cookieRecord
	err = json.Unmarshal(blob, &records)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, records, 1)
	require.Equal(t, ".AIUBPORTAL", records[0].Name)
	require.Equal(t, "portal-session-1", records[0].Value)
	require.True(t, records[0].HttpOnly)

	// a fresh client restored from the blob passes the probe
	restored, err := NewClient(ClientOptions{BaseUrl: client.BaseUrl.String()})
	if err != nil {
		t.Fatal(err)
	}
	require.True(t, restored.RestoreSession(context.Background(), blob))

	// reserializing reproduces the same cookie set
	blob2, err := restored.SerializeSession()
	if err != nil {
		t.Fatal(err)
	}
	require.JSONEq(t, string(blob), string(blob2))
}

func TestRestoreSessionRejected(t *testing.T) {
	portal := newFakePortal("22-00000-1", "hunter2")
	client := newTestClient(t, portal)

	stale, err := json.Marshal([]cookieRecord{
		{Name: ".AIUBPORTAL", Value: "expired-session", Path: "/"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// the portal redirects the probe back to the login surface
	require.False(t, client.RestoreSession(context.Background(), stale))
}

func TestRestoreSessionCorruptBlob(t *testing.T) {
	portal := newFakePortal("22-00000-1", "hunter2")
	client := newTestClient(t, portal)

	require.False(t, client.RestoreSession(context.Background(), []byte("{not json")))
	require.False(t, client.RestoreSession(context.Background(), []byte("[]")))
	require.False(t, client.RestoreSession(context.Background(), nil))
}
