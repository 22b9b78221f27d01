package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// MockRoundTripper implements http.RoundTripper for intercepting Discord requests.
// Tests may replace RoundTripFunc to capture what the bot sends.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if m.RoundTripFunc != nil {
		return m.RoundTripFunc(req)
	}
	return okResponse(req), nil
}

func okResponse(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
		Header:     make(http.Header),
		Request:    req,
	}
}

// captureEdit records the last interaction response edit
func (m *MockRoundTripper) captureEdit(t *testing.T) *discordgo.WebhookEdit {
	t.Helper()
	edit := &discordgo.WebhookEdit{}
	m.RoundTripFunc = func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodPatch {
			var body discordgo.WebhookEdit
			if err := json.NewDecoder(req.Body).Decode(&body); err == nil {
				*edit = body
			}
		}
		return okResponse(req), nil
	}
	return edit
}

// commandInteraction builds a slash command invocation by testUserID
func commandInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: testUserID, Username: "Tester"},
			},
		},
	}
}

const testUserID = "123456789012345678"

// TestContext bundles a fake GardenBot API with a Discord session whose
// HTTP traffic is intercepted
type TestContext struct {
	Server       *httptest.Server
	Mux          *http.ServeMux
	APIClient    *APIClient
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewAPIClient(server.URL, "test-api-key")
	client.retryDelay = 0

	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Failed to create mock session: %v", err)
	}
	mocks := &MockRoundTripper{}
	session.Client = &http.Client{Transport: mocks}

	return &TestContext{
		Server:       server,
		Mux:          mux,
		APIClient:    client,
		Session:      session,
		DiscordMocks: mocks,
	}
}

// WriteJSON writes data as a JSON success response
func WriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
