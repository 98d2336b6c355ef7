package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    Quote
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id": 1, "hitokoto": " 人生如逆旅 ", "from": "临江仙"}`))
			},
			want: Quote{Text: "人生如逆旅", From: "临江仙"},
		},
		{
			name: "empty sentence keeps attribution",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"hitokoto": "", "from": "someone"}`))
			},
			want: Quote{Text: DefaultText, From: "someone"},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: Default(),
		},
		{
			name: "garbage",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			want: Default(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient(server.URL, time.Second)
			assert.Equal(t, tt.want, c.Get(context.Background()))
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(url, 100*time.Millisecond)
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, Default(), c.Get(context.Background()))
}

func TestQuote_String(t *testing.T) {
	assert.Equal(t, DefaultText, Default().String())
	assert.Equal(t, "a —— b", Quote{Text: "a", From: "b"}.String())
}

func TestNewClient_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultURL, NewClient("", 0).url)
}
