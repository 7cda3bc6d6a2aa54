package player

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
)

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{0, -10},
		{-1, -10},
		{1, 0},
		{2, 0},
		{0.5, -1},
		{0.25, -2},
	}
	for _, tt := range tests {
		if got := levelToVolume(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("levelToVolume(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestResampleRatio(t *testing.T) {
	tests := []struct {
		src   beep.SampleRate
		speed float64
		want  float64
	}{
		{44100, 1, 1},
		{44100, 2, 2},
		{22050, 1, 0.5},
		{48000, 0.5, 48000.0 / 44100 * 0.5},
	}
	for _, tt := range tests {
		if got := resampleRatio(tt.src, tt.speed); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("resampleRatio(%d, %v) = %v, want %v", tt.src, tt.speed, got, tt.want)
		}
	}
}

func TestClampSample(t *testing.T) {
	tests := []struct {
		n, length, want int
	}{
		{-5, 100, 0},
		{50, 100, 50},
		{100, 100, 99},
		{500, 100, 99},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := clampSample(tt.n, tt.length); got != tt.want {
			t.Errorf("clampSample(%d, %d) = %d, want %d", tt.n, tt.length, got, tt.want)
		}
	}
}

func TestRefExt(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"audio/baqara/S2-P2.mp3", ".mp3"},
		{"/abs/Page.MP3", ".mp3"},
		{"https://cdn.example.com/p/2.flac?sig=abc.wav", ".flac"},
		{"http://example.com/noext", ""},
		{"page.wav", ".wav"},
	}
	for _, tt := range tests {
		if got := refExt(tt.ref); got != tt.want {
			t.Errorf("refExt(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestOpenSource_Local(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.mp3")
	if err := os.WriteFile(path, []byte("data"), 0o600); err != nil {
		t.Fatal(err)
	}

	rc, err := openSource(context.Background(), http.DefaultClient, slog.Default(), path)
	if err != nil {
		t.Fatalf("openSource() error = %v", err)
	}
	defer rc.Close()

	got, _ := io.ReadAll(rc)
	if string(got) != "data" {
		t.Errorf("read %q, want %q", got, "data")
	}
}

func TestOpenSource_Missing(t *testing.T) {
	_, err := openSource(context.Background(), http.DefaultClient, slog.Default(), "/does/not/exist.mp3")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want ErrNotExist", err)
	}
}

func TestOpenSource_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.mp3" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("remote-bytes"))
	}))
	defer srv.Close()

	rc, err := openSource(context.Background(), srv.Client(), slog.Default(), srv.URL+"/page.mp3")
	if err != nil {
		t.Fatalf("openSource() error = %v", err)
	}
	got, _ := io.ReadAll(rc)
	if string(got) != "remote-bytes" {
		t.Errorf("read %q, want remote-bytes", got)
	}
	if _, err := rc.Seek(0, io.SeekStart); err != nil {
		t.Errorf("downloaded source should be seekable: %v", err)
	}

	if _, err := openSource(context.Background(), srv.Client(), slog.Default(), srv.URL+"/missing.mp3"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestOpenSource_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openSource(ctx, srv.Client(), slog.Default(), srv.URL+"/p.mp3"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func newMem(s string) memFile {
	return memFile{bytes.NewReader([]byte(s))}
}

type closeTracker struct {
	io.ReadSeeker
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestDecode_UnsupportedClosesSource(t *testing.T) {
	src := &closeTracker{ReadSeeker: newMem("abc")}

	_, _, err := decode(src, ".ogg")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
	if !src.closed {
		t.Error("source should be closed on error")
	}
}

func TestDecode_GarbageWAV(t *testing.T) {
	src := &closeTracker{ReadSeeker: newMem("definitely not riff")}
	if _, _, err := decode(src, extWAV); err == nil {
		t.Error("expected decode error")
	}
	if !src.closed {
		t.Error("source should be closed on error")
	}
}

func TestSkipID3v2(t *testing.T) {
	// 10-byte header declaring a 4-byte tag body, then payload
	tagged := "ID3\x03\x00\x00\x00\x00\x00\x04" + "TTTT" + "fLaC"
	r := newMem(tagged)
	if err := skipID3v2(r); err != nil {
		t.Fatalf("skipID3v2() error = %v", err)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "fLaC" {
		t.Errorf("remaining = %q, want fLaC", rest)
	}

	plain := newMem("fLaC-and-more-bytes")
	if err := skipID3v2(plain); err != nil {
		t.Fatalf("skipID3v2() error = %v", err)
	}
	rest, _ = io.ReadAll(plain)
	if string(rest) != "fLaC-and-more-bytes" {
		t.Errorf("untagged stream should be rewound, got %q", rest)
	}

	short := newMem("abc")
	if err := skipID3v2(short); err != nil {
		t.Fatalf("skipID3v2() on short input error = %v", err)
	}
	rest, _ = io.ReadAll(short)
	if string(rest) != "abc" {
		t.Errorf("short stream should be rewound, got %q", rest)
	}
}

func TestMock_ResolvePlay(t *testing.T) {
	m := NewMock()
	var got []error
	m.Play(1, func(err error) { got = append(got, err) })
	m.Play(2, func(err error) { got = append(got, err) })

	wantErr := errors.New("blocked")
	m.ResolvePlay(nil)
	m.ResolvePlay(wantErr)

	if len(got) != 2 || got[0] != nil || !errors.Is(got[1], wantErr) {
		t.Errorf("resolutions = %v", got)
	}
	if m.ResolvePlay(nil) {
		t.Error("ResolvePlay with nothing pending should report false")
	}
}
