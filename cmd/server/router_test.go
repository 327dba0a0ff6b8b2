package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/pixgen-api/internal/config"
	"github.com/phrazzld/pixgen-api/internal/domain"
	"github.com/phrazzld/pixgen-api/internal/service"
	"github.com/phrazzld/pixgen-api/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator returns a canned image result, or an error when failWith
// is set.
type stubGenerator struct {
	failWith error
}

func (s *stubGenerator) GenerateImage(ctx context.Context, prompt string) (*domain.ImageResult, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return domain.NewImageResult(prompt, "data:image/png;base64,aGVsbG8=")
}

// newTestServer wires a real tracker and scheduler behind the router with a
// short queue delay and returns the test server.
func newTestServer(t *testing.T, gen *stubGenerator, initialCredits int) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	scheduler := task.NewScheduler(log)
	t.Cleanup(scheduler.Stop)

	tracker, err := service.NewJobTracker(
		config.CreditsConfig{InitialBalance: initialCredits, BundleSize: 10},
		20*time.Millisecond,
		scheduler,
		gen,
		log,
	)
	require.NoError(t, err)

	app := &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		},
		logger:    log,
		scheduler: scheduler,
		tracker:   tracker,
	}

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, client *http.Client, url string, out interface{}) int {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, client *http.Client, url string, out interface{}) int {
	t.Helper()
	resp, err := client.Post(url, "application/json", nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// pollUntilStatus polls the status endpoint until the job reaches the
// wanted status or the deadline passes.
func pollUntilStatus(t *testing.T, client *http.Client, baseURL, jobID, want string) map[string]interface{} {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var body map[string]interface{}
		code := getJSON(t, client, baseURL+"/api/job-status?jobId="+jobID, &body)
		require.Equal(t, http.StatusOK, code)
		if body["status"] == want {
			return body
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %q", jobID, want)
	return nil
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, &stubGenerator{}, 10)

	resp, err := server.Client().Get(server.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

func TestCreditEndpoints(t *testing.T) {
	server := newTestServer(t, &stubGenerator{}, 10)
	client := server.Client()

	var credits map[string]int
	code := getJSON(t, client, server.URL+"/api/credits", &credits)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 10, credits["credits"])

	// Balance after N purchases = 10 + 10*N.
	for n := 1; n <= 2; n++ {
		code = postJSON(t, client, server.URL+"/api/purchase-credits", &credits)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, 10+10*n, credits["credits"])
	}
}

func TestQueueAndCompleteScenario(t *testing.T) {
	server := newTestServer(t, &stubGenerator{}, 10)
	client := server.Client()

	var queued map[string]interface{}
	code := getJSON(t, client, server.URL+"/api/queue-image-generation?prompt=cat", &queued)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, queued["success"])
	jobID, ok := queued["jobId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, jobID)

	// Immediately after queuing the job is processing.
	var status map[string]interface{}
	code = getJSON(t, client, server.URL+"/api/job-status?jobId="+jobID, &status)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "processing", status["status"])

	// After the delay elapses the job completes with four labelled images
	// and the balance drops by exactly one.
	body := pollUntilStatus(t, client, server.URL, jobID, "completed")
	images, ok := body["images"].([]interface{})
	require.True(t, ok)
	require.Len(t, images, 4)
	first := images[0].(map[string]interface{})
	assert.Equal(t, "cat", first["label"])
	fullsize := first["fullsize"].(map[string]interface{})
	assert.Equal(t, float64(1024), fullsize["width"])
	thumbnail := first["thumbnail"].(map[string]interface{})
	assert.Equal(t, float64(512), thumbnail["width"])
	assert.Equal(t, float64(9), body["credits"])
}

func TestCancelScenario(t *testing.T) {
	server := newTestServer(t, &stubGenerator{}, 10)
	client := server.Client()

	var queued map[string]interface{}
	code := getJSON(t, client, server.URL+"/api/queue-image-generation?prompt=dog", &queued)
	require.Equal(t, http.StatusOK, code)
	jobID := queued["jobId"].(string)

	resp, err := client.Post(server.URL+"/api/job-status/cancel?jobId="+jobID, "application/json", nil)
	require.NoError(t, err)
	cancelBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Job cancelled successfully", string(cancelBody))

	var status map[string]interface{}
	code = getJSON(t, client, server.URL+"/api/job-status?jobId="+jobID, &status)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cancelled", status["status"])

	// Credits are untouched by a cancelled job.
	var credits map[string]int
	getJSON(t, client, server.URL+"/api/credits", &credits)
	assert.Equal(t, 10, credits["credits"])

	// Cancelling again reports not-found.
	resp, err = client.Post(server.URL+"/api/job-status/cancel?jobId="+jobID, "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQueueValidationAndExhaustion(t *testing.T) {
	t.Run("missing_prompt", func(t *testing.T) {
		server := newTestServer(t, &stubGenerator{}, 10)

		var body map[string]interface{}
		code := getJSON(t, server.Client(), server.URL+"/api/queue-image-generation", &body)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Missing prompt", body["error"])
	})

	t.Run("no_credits", func(t *testing.T) {
		server := newTestServer(t, &stubGenerator{}, 0)
		client := server.Client()

		var body map[string]interface{}
		code := getJSON(t, client, server.URL+"/api/queue-image-generation?prompt=cat", &body)
		assert.Equal(t, http.StatusForbidden, code)
		assert.Equal(t, "Insufficient credits", body["error"])

		// No job was created; a fabricated ID is unknown.
		code = getJSON(t, client, server.URL+"/api/job-status?jobId=fabricated123", nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestFailedGenerationSurfacesFailedStatus(t *testing.T) {
	server := newTestServer(t, &stubGenerator{failWith: errors.New("no candidates in response")}, 10)
	client := server.Client()

	var queued map[string]interface{}
	code := getJSON(t, client, server.URL+"/api/queue-image-generation?prompt=doomed", &queued)
	require.Equal(t, http.StatusOK, code)
	jobID := queued["jobId"].(string)

	pollUntilStatus(t, client, server.URL, jobID, "failed")

	// Failed jobs consume no credit.
	var credits map[string]int
	getJSON(t, client, server.URL+"/api/credits", &credits)
	assert.Equal(t, 10, credits["credits"])
}
