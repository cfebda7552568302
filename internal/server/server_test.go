package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapbooth/snapbooth/internal/booth"
	"github.com/snapbooth/snapbooth/internal/camera"
	"github.com/snapbooth/snapbooth/internal/server/events"
	"github.com/snapbooth/snapbooth/internal/server/response"
	"github.com/snapbooth/snapbooth/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	return newTestServerWithCountdown(t, 10*time.Millisecond)
}

func newTestServerWithCountdown(t *testing.T, countdown time.Duration) (*Server, *httptest.Server) {
	t.Helper()
	logger := zerolog.Nop()

	store, err := storage.New(t.TempDir(), time.Minute, &logger)
	require.NoError(t, err)

	broadcaster := events.NewBroadcaster(&logger)
	bo := booth.New(
		camera.NewStubCamera(320, 240),
		store,
		broadcaster,
		booth.Config{Countdown: countdown, CaptureTimeout: time.Second, PathPrefix: "/api/v1"},
		&logger,
	)

	cfg := DefaultConfig()
	srv := New(bo, store, broadcaster, cfg, &logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func getJSON(t *testing.T, url string) (int, response.Response) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestServer_Health(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := getJSON(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	require.Nil(t, body.Error)

	data := body.Data.(map[string]any)
	assert.Equal(t, "healthy", data["status"])
}

func TestServer_CaptureFlow(t *testing.T) {
	srv, ts := newTestServer(t)

	// Watch the SSE stream for the capture lifecycle.
	streamCtx, cancelStream := context.WithCancel(context.Background())
	defer cancelStream()

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, ts.URL+"/api/v1/events/stream", nil)
	require.NoError(t, err)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = stream.Body.Close() }()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Broadcaster().SubscriberCount() != 1 {
		require.False(t, time.Now().After(deadline), "SSE subscriber never registered")
		time.Sleep(5 * time.Millisecond)
	}

	// Trigger a capture.
	resp, err := http.Post(ts.URL+"/api/v1/capture", "application/json",
		bytes.NewBufferString(`{"source":"test"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	_ = resp.Body.Close()

	// The stream must deliver countdown-started then photo-captured.
	var countdownSeen bool
	var capturedData string
	scanner := bufio.NewScanner(stream.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "event: countdown-started" {
			countdownSeen = true
		}
		if line == "event: photo-captured" {
			require.True(t, scanner.Scan())
			capturedData = strings.TrimPrefix(scanner.Text(), "data: ")
			break
		}
	}
	require.True(t, countdownSeen, "countdown-started never arrived")
	require.NotEmpty(t, capturedData, "photo-captured never arrived")

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(capturedData), &fields))
	photoID := fields["photoId"].(string)
	code := fields["code"].(string)
	imageURL := fields["imageUrl"].(string)
	assert.Equal(t, "/api/v1/photos/"+photoID+"/image", imageURL)

	// The photo is retrievable by ID, by code, and as image bytes.
	status, body := getJSON(t, ts.URL+"/api/v1/photos/"+photoID)
	assert.Equal(t, http.StatusOK, status)
	require.Nil(t, body.Error)

	status, body = getJSON(t, ts.URL+"/api/v1/codes/"+code)
	assert.Equal(t, http.StatusOK, status)
	require.Nil(t, body.Error)

	img, err := http.Get(ts.URL + imageURL)
	require.NoError(t, err)
	defer func() { _ = img.Body.Close() }()
	assert.Equal(t, http.StatusOK, img.StatusCode)
	assert.Equal(t, "image/jpeg", img.Header.Get("Content-Type"))

	thumb, err := http.Get(ts.URL + "/api/v1/photos/" + photoID + "/thumbnail")
	require.NoError(t, err)
	defer func() { _ = thumb.Body.Close() }()
	assert.Equal(t, http.StatusOK, thumb.StatusCode)

	qr, err := http.Get(ts.URL + "/api/v1/photos/" + photoID + "/qr")
	require.NoError(t, err)
	defer func() { _ = qr.Body.Close() }()
	assert.Equal(t, http.StatusOK, qr.StatusCode)
	assert.Equal(t, "image/png", qr.Header.Get("Content-Type"))
}

// The WebSocket endpoint runs behind the full middleware chain, so this
// exercises the upgrade through the router rather than the bare handler.
func TestServer_WebSocketStream(t *testing.T) {
	srv, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/events/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "WebSocket handshake through the router failed")
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = conn.Close() }()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Broadcaster().SubscriberCount() != 1 {
		require.False(t, time.Now().After(deadline), "WebSocket subscriber never registered")
		time.Sleep(5 * time.Millisecond)
	}

	post, err := http.Post(ts.URL+"/api/v1/capture", "application/json", nil)
	require.NoError(t, err)
	_ = post.Body.Close()
	require.Equal(t, http.StatusAccepted, post.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var countdownSeen bool
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))

		switch fields["eventType"] {
		case "countdown-started":
			countdownSeen = true
		case "photo-captured":
			require.True(t, countdownSeen, "countdown-started never arrived")
			photoID := fields["photoId"].(string)
			assert.Equal(t, "/api/v1/photos/"+photoID+"/image", fields["imageUrl"])
			assert.Len(t, fields["code"], 6)
			return
		case "capture-failed":
			t.Fatalf("capture failed: %v", fields["message"])
		}
	}
}

func TestServer_NotFoundAndValidation(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := getJSON(t, ts.URL+"/api/v1/photos/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)

	status, body = getJSON(t, ts.URL+"/api/v1/photos/6f1f8c3a-2a39-4d1b-9a77-111111111111")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, body.Error)

	status, body = getJSON(t, ts.URL+"/api/v1/codes/000000")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, body.Error)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/capture")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_ConcurrentCaptureConflict(t *testing.T) {
	// Long countdown so the session is still running for the second POST.
	_, ts := newTestServerWithCountdown(t, 2*time.Second)

	first, err := http.Post(ts.URL+"/api/v1/capture", "application/json", nil)
	require.NoError(t, err)
	_ = first.Body.Close()
	require.Equal(t, http.StatusAccepted, first.StatusCode)

	second, err := http.Post(ts.URL+"/api/v1/capture", "application/json", nil)
	require.NoError(t, err)
	_ = second.Body.Close()
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func TestServer_Stats(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := getJSON(t, ts.URL+"/api/v1/stats")
	assert.Equal(t, http.StatusOK, status)
	require.Nil(t, body.Error)

	data := body.Data.(map[string]any)
	assert.Equal(t, float64(0), data["photos"])
	assert.Equal(t, float64(0), data["subscribers"])
}
