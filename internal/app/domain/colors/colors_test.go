package colors

import "testing"

func TestFromHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		hex    string
		want   RGB
		wantOk bool
	}{
		{
			name:   "six_digit",
			hex:    "1E90FF",
			want:   RGB{R: 0x1E, G: 0x90, B: 0xFF},
			wantOk: true,
		},
		{
			name:   "six_digit_with_hash",
			hex:    "#FF4500",
			want:   RGB{R: 0xFF, G: 0x45, B: 0x00},
			wantOk: true,
		},
		{
			name:   "six_digit_lowercase",
			hex:    "8a2be2",
			want:   RGB{R: 0x8A, G: 0x2B, B: 0xE2},
			wantOk: true,
		},
		{
			name:   "three_digit_expands",
			hex:    "f0a",
			want:   RGB{R: 0xFF, G: 0x00, B: 0xAA},
			wantOk: true,
		},
		{
			name:   "three_digit_with_hash",
			hex:    "#1cd",
			want:   RGB{R: 0x11, G: 0xCC, B: 0xDD},
			wantOk: true,
		},
		{
			name:   "empty",
			hex:    "",
			want:   Default,
			wantOk: false,
		},
		{
			name:   "bare_hash",
			hex:    "#",
			want:   Default,
			wantOk: false,
		},
		{
			name:   "wrong_length",
			hex:    "1234",
			want:   Default,
			wantOk: false,
		},
		{
			name:   "too_long",
			hex:    "1234567",
			want:   Default,
			wantOk: false,
		},
		{
			name:   "not_hex",
			hex:    "zzzzzz",
			want:   Default,
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := FromHex(tt.hex)
			if got != tt.want {
				t.Errorf("FromHex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
			if ok != tt.wantOk {
				t.Errorf("FromHex(%q) ok = %v, want %v", tt.hex, ok, tt.wantOk)
			}
		})
	}
}
