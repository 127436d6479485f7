package seventv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamoverlay/pkg/logger"
)

func newTestSevenTV(srv *httptest.Server) *SevenTV {
	sv := New(logger.New(), srv.Client())
	sv.baseURL = srv.URL
	return sv
}

func TestGlobalEmotes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emote-sets/global", r.URL.Path)
		_, _ = w.Write([]byte(`{"emotes":[
			{"name":"FeelsOkayMan","host":{"url":"//cdn.7tv.app/emote/abc","files":[
				{"name":"1x.avif","format":"AVIF"},
				{"name":"1x.webp","format":"WEBP"},
				{"name":"4x.webp","format":"WEBP"}
			]}},
			{"name":"NoFiles","host":{"url":"//cdn.7tv.app/emote/def","files":[]}}
		]}`))
	}))
	defer srv.Close()

	sv := newTestSevenTV(srv)

	m, err := sv.GlobalEmotes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.7tv.app/emote/abc/1x.webp", m["FeelsOkayMan"].URL)
	assert.False(t, m["FeelsOkayMan"].Animated)
	_, ok := m["NoFiles"]
	assert.False(t, ok, "emotes without a webp file are dropped")
}

func TestChannelEmotes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/twitch/84011517", r.URL.Path)
		_, _ = w.Write([]byte(`{"emote_set":{"emotes":[
			{"name":"peepoDance","data":{"animated":true,"host":{"url":"//cdn.7tv.app/emote/xyz","files":[
				{"name":"1x.webp","format":"WEBP"}
			]}}},
			{"name":"Static","data":{"animated":false,"host":{"url":"https://cdn.7tv.app/emote/uvw","files":[
				{"name":"1x.webp","format":"WEBP"}
			]}}}
		]}}`))
	}))
	defer srv.Close()

	sv := newTestSevenTV(srv)

	m, err := sv.ChannelEmotes(context.Background(), "84011517")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.7tv.app/emote/xyz/1x.webp", m["peepoDance"].URL)
	assert.True(t, m["peepoDance"].Animated)
	assert.Equal(t, "https://cdn.7tv.app/emote/uvw/1x.webp", m["Static"].URL)
	assert.False(t, m["Static"].Animated)
}

func TestChannelEmotesNoSet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"emote_set":null}`))
	}))
	defer srv.Close()

	sv := newTestSevenTV(srv)

	m, err := sv.ChannelEmotes(context.Background(), "12345")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestGlobalEmotesUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sv := newTestSevenTV(srv)

	_, err := sv.GlobalEmotes(context.Background())
	assert.Error(t, err)
}
