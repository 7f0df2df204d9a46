package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		showTranscript = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0\n", out)
}

func TestAskWithMockProvider(t *testing.T) {
	t.Setenv("TRAVEL_COPILOT_LLM_PROVIDER", "mock")

	out, err := execute(t, "ask", "Best", "time", "to", "visit", "Lisbon?")
	require.NoError(t, err)
	assert.Equal(t, "[MOCK] Received your travel question: \"Best time to visit Lisbon?\". This is a mock response.\n", out)
}

func TestAskTranscript(t *testing.T) {
	t.Setenv("TRAVEL_COPILOT_LLM_PROVIDER", "mock")

	out, err := execute(t, "ask", "--transcript", "Lisbon?")
	require.NoError(t, err)

	var body struct {
		Response string `json:"response"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.True(t, strings.HasPrefix(body.Response, "[MOCK]"))
	require.Len(t, body.Messages, 3)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, "assistant", body.Messages[2].Role)
}

func TestAskUnknownProvider(t *testing.T) {
	t.Setenv("TRAVEL_COPILOT_LLM_PROVIDER", "carrier-pigeon")

	_, err := execute(t, "ask", "Lisbon?")
	assert.ErrorContains(t, err, "unknown llm provider")
}

func TestAskErrorReplyExitsNonZero(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid api token"}`))
	}))
	t.Cleanup(ts.Close)
	t.Setenv("TRAVEL_COPILOT_LLM_PROVIDER", "cohere")
	t.Setenv("TRAVEL_COPILOT_LLM_BASE_URL", ts.URL)

	t.Run("plain", func(t *testing.T) {
		out, err := execute(t, "ask", "Lisbon?")
		assert.Error(t, err)
		assert.Equal(t, "Error getting travel guidance: LLM API error [401]: invalid api token\n", out)
	})

	t.Run("transcript", func(t *testing.T) {
		out, err := execute(t, "ask", "--transcript", "Lisbon?")
		assert.Error(t, err)

		var body struct {
			Response string            `json:"response"`
			Messages []json.RawMessage `json:"messages"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &body))
		assert.True(t, strings.HasPrefix(body.Response, "Error getting travel guidance: "))
		assert.Len(t, body.Messages, 1)
	})
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
