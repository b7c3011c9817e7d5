package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"farmbot/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, server.Client())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestOptions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/options" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != "SOIL TYPE" {
			t.Errorf("type = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "success",
			"options": []string{"Clay", "Loamy", "Sandy"},
		})
	})

	opts, err := client.Options(context.Background(), model.FieldSoilType)
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if !slices.Equal(opts, []string{"Clay", "Loamy", "Sandy"}) {
		t.Errorf("unexpected options: %v", opts)
	}
}

func TestChat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var body struct {
			Message string         `json:"message"`
			Filters map[string]any `json:"filters"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if body.Message != "What grows in clay?" {
			t.Errorf("message = %q", body.Message)
		}
		if body.Filters["soil"] != "Clay" || body.Filters["land_size"] != 2.5 || body.Filters["climate_condition"] != "Drought" {
			t.Errorf("filters = %v", body.Filters)
		}
		if _, ok := body.Filters["land_type"]; !ok {
			t.Error("empty filter fields should still be sent in the chat body")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status":   "success",
			"response": "**Rice** does well.",
		})
	})

	filters := model.Filters{Soil: "Clay", LandSize: 2.5, ClimateCondition: "Drought"}
	reply, err := client.Chat(context.Background(), "What grows in clay?", filters)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "**Rice** does well." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestRecommendationsQuery(t *testing.T) {
	tests := []struct {
		name    string
		filters model.Filters
		want    string
	}{
		{"empty filters", model.Filters{}, ""},
		{"soil with zero land size", model.Filters{Soil: "Clay", LandSize: 0}, "soil=Clay"},
		{"climate is not sent", model.Filters{Month: "June", ClimateCondition: "Flood"}, "month=June"},
		{"land size", model.Filters{LandSize: 4}, "land_size=4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/recommendations" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if r.URL.RawQuery != tt.want {
					t.Errorf("query = %q, want %q", r.URL.RawQuery, tt.want)
				}
				json.NewEncoder(w).Encode(map[string]any{
					"status": "success",
					"data": map[string]any{
						"labels": []string{"Rice", "Wheat"},
						"values": []float64{80, 65},
					},
				})
			})

			ds, err := client.Recommendations(context.Background(), tt.filters)
			if err != nil {
				t.Fatalf("Recommendations failed: %v", err)
			}
			if !slices.Equal(ds.Labels, []string{"Rice", "Wheat"}) || !slices.Equal(ds.Values, []float64{80, 65}) {
				t.Errorf("unexpected dataset: %+v", ds)
			}
		})
	}
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.Chat(context.Background(), "hi", model.Filters{})
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
			t.Fatalf("want StatusError 500, got %v", err)
		}
		if IsTransport(err) {
			t.Error("status error classified as transport")
		}
	})

	t.Run("error envelope", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"status":  "error",
				"message": "unknown option type",
			})
		})

		_, err := client.Options(context.Background(), model.FieldMonth)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("want APIError, got %v", err)
		}
		if apiErr.Status != "error" || apiErr.Message != "unknown option type" {
			t.Errorf("unexpected APIError: %+v", apiErr)
		}
	})

	t.Run("missing status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"response": "orphan"})
		})

		if _, err := client.Chat(context.Background(), "hi", model.Filters{}); err == nil {
			t.Error("reply without a success status should fail")
		}
	})

	for name, body := range map[string]string{
		"reply missing": `{"status":"success"}`,
		"reply null":    `{"status":"success","response":null}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			reply, err := client.Chat(context.Background(), "hi", model.Filters{})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("want APIError, got reply %q err %v", reply, err)
			}
			if apiErr.Endpoint != "/api/chat" {
				t.Errorf("endpoint = %q", apiErr.Endpoint)
			}
		})
	}

	t.Run("empty reply", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","response":""}`))
		})

		reply, err := client.Chat(context.Background(), "hi", model.Filters{})
		if err != nil || reply != "" {
			t.Errorf("got %q, %v; want an empty reply", reply, err)
		}
	})

	t.Run("no data", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"status": "success"})
		})

		ds, err := client.Recommendations(context.Background(), model.Filters{})
		if err != nil || ds != nil {
			t.Errorf("got %+v, %v; want nil dataset without error", ds, err)
		}
	})

	t.Run("misaligned data", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"status": "success",
				"data":   map[string]any{"labels": []string{"Rice"}, "values": []float64{}},
			})
		})

		_, err := client.Recommendations(context.Background(), model.Filters{})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("want APIError, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		})

		_, err := client.Options(context.Background(), model.FieldSeason)
		if !IsTransport(err) {
			t.Errorf("want transport error, got %v", err)
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client, err := NewClient(url, nil)
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		_, err = client.Options(context.Background(), model.FieldSeason)
		if !IsTransport(err) {
			t.Errorf("want transport error, got %v", err)
		}
	})
}

func TestContextDeadline(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Chat(ctx, "slow", model.Filters{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want deadline exceeded, got %v", err)
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient("", nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", client.BaseURL())
	}

	client, err = NewClient("http://farm.example:8080/", nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if got := client.endpoint("/api/chat", nil); got != "http://farm.example:8080/api/chat" {
		t.Errorf("endpoint = %q", got)
	}

	if _, err := NewClient("ftp://farm.example", nil); err == nil {
		t.Error("non-http scheme accepted")
	}
}
