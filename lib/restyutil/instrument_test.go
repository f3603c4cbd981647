package restyutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mu      sync.Mutex
	entries map[string]string
}

func (o *memoryOutput) Write(id string, contents string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries[id] = contents
}

func (o *memoryOutput) all() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []string
	for _, v := range o.entries {
		out = append(out, v)
	}
	return out
}

func TestAttachTranscriptOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	output := &memoryOutput{entries: map[string]string{}}
	client := resty.New()
	client.SetBaseURL(server.URL)
	AttachTranscriptOutput(client, output)

	// a body-less GET must format without a request body
	_, err := client.R().Get("/page")
	require.NoError(t, err)

	_, err = client.R().
		SetBody("UserName=alice").
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		Post("/login")
	require.NoError(t, err)

	entries := output.all()
	require.Len(t, entries, 2)

	var sawGet, sawPost bool
	for _, transcript := range entries {
		require.Contains(t, transcript, "---- REQUEST ----")
		require.Contains(t, transcript, "---- RESPONSE ----")
		require.Contains(t, transcript, "hello")
		if strings.Contains(transcript, "GET ") {
			sawGet = true
		}
		if strings.Contains(transcript, "POST ") {
			sawPost = true
			require.Contains(t, transcript, "UserName=alice")
		}
	}
	require.True(t, sawGet)
	require.True(t, sawPost)
}

func TestAttachTranscriptOutputNilOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := resty.New()
	client.SetBaseURL(server.URL)
	AttachTranscriptOutput(client, nil)

	_, err := client.R().Get("/")
	require.NoError(t, err)
}
