package emotes

import (
	"testing"
)

func newTestResolver() *Resolver {
	r := NewResolver()
	r.Replace(TwitchGlobal, map[string]Entry{
		"Kappa": {URL: "https://static-cdn.jtvnw.net/emoticons/v2/25/static/light/1.0"},
	})
	r.Replace(SevenTVChannel, map[string]Entry{
		"peepoDance": {URL: "https://cdn.7tv.app/emote/abc/1x.webp", Animated: true},
		"Kappa":      {URL: "https://cdn.7tv.app/emote/fake-kappa/1x.webp", Animated: true},
	})
	r.Replace(SevenTVGlobal, map[string]Entry{
		"FeelsOkayMan": {URL: "https://cdn.7tv.app/emote/def/1x.webp"},
	})
	r.Replace(BTTVChannel, map[string]Entry{
		"catJAM": {URL: "https://cdn.betterttv.net/emote/111/1x"},
	})
	r.Replace(BTTVGlobal, map[string]Entry{
		"catJAM":  {URL: "https://cdn.betterttv.net/emote/999/1x"},
		"monkaS":  {URL: "https://cdn.betterttv.net/emote/222/1x"},
		"LULW":    {URL: "https://cdn.betterttv.net/emote/333/1x"},
		"PogChat": {URL: "https://cdn.betterttv.net/emote/444/1x"},
	})
	return r
}

func TestResolvePriorityOrder(t *testing.T) {
	t.Parallel()

	r := newTestResolver()

	tests := []struct {
		name         string
		token        string
		wantURL      string
		wantAnimated bool
		wantOk       bool
	}{
		{
			// Kappa is in both TwitchGlobal and SevenTVChannel;
			// TwitchGlobal wins.
			name:    "twitch_global_beats_7tv_channel",
			token:   "Kappa",
			wantURL: "https://static-cdn.jtvnw.net/emoticons/v2/25/static/light/1.0",
			wantOk:  true,
		},
		{
			// catJAM is in both BTTV maps; the channel map wins.
			name:    "bttv_channel_beats_bttv_global",
			token:   "catJAM",
			wantURL: "https://cdn.betterttv.net/emote/111/1x",
			wantOk:  true,
		},
		{
			name:         "7tv_channel_animated",
			token:        "peepoDance",
			wantURL:      "https://cdn.7tv.app/emote/abc/1x.webp",
			wantAnimated: true,
			wantOk:       true,
		},
		{
			name:   "unknown_token",
			token:  "hello",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := r.Resolve(tt.token)
			if ok != tt.wantOk {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.token, ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if got.URL != tt.wantURL {
				t.Errorf("Resolve(%q) url = %q, want %q", tt.token, got.URL, tt.wantURL)
			}
			if got.Animated != tt.wantAnimated {
				t.Errorf("Resolve(%q) animated = %v, want %v", tt.token, got.Animated, tt.wantAnimated)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	r := newTestResolver()

	tests := []struct {
		name string
		text string
		want []Part
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "whitespace_only",
			text: "   \t ",
			want: nil,
		},
		{
			name: "plain_words_merge_into_one_part",
			text: "hello there general chatter",
			want: []Part{{Text: "hello there general chatter"}},
		},
		{
			name: "emote_in_the_middle",
			text: "nice play Kappa well done",
			want: []Part{
				{Text: "nice play"},
				{Emote: &Emote{Name: "Kappa", URL: "https://static-cdn.jtvnw.net/emoticons/v2/25/static/light/1.0"}},
				{Text: "well done"},
			},
		},
		{
			name: "leading_emote",
			text: "monkaS that was close",
			want: []Part{
				{Emote: &Emote{Name: "monkaS", URL: "https://cdn.betterttv.net/emote/222/1x"}},
				{Text: "that was close"},
			},
		},
		{
			name: "back_to_back_emotes",
			text: "catJAM peepoDance",
			want: []Part{
				{Emote: &Emote{Name: "catJAM", URL: "https://cdn.betterttv.net/emote/111/1x"}},
				{Emote: &Emote{Name: "peepoDance", URL: "https://cdn.7tv.app/emote/abc/1x.webp", Animated: true}},
			},
		},
		{
			name: "trailing_text_flushed",
			text: "LULW gg",
			want: []Part{
				{Emote: &Emote{Name: "LULW", URL: "https://cdn.betterttv.net/emote/333/1x"}},
				{Text: "gg"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := r.Parse(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %d parts, want %d (%+v)", tt.text, len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].Text != tt.want[i].Text {
					t.Errorf("part %d text = %q, want %q", i, got[i].Text, tt.want[i].Text)
				}
				if (got[i].Emote == nil) != (tt.want[i].Emote == nil) {
					t.Fatalf("part %d emote presence mismatch", i)
				}
				if got[i].Emote != nil && *got[i].Emote != *tt.want[i].Emote {
					t.Errorf("part %d emote = %+v, want %+v", i, *got[i].Emote, *tt.want[i].Emote)
				}
			}
		})
	}
}
