package fitcommon

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-additive/synth"
)

func TestParseWorkers(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "auto", want: 0},
		{raw: " AUTO ", want: 0},
		{raw: "4", want: 4},
		{raw: "1", want: 1},
		{raw: "0", wantErr: true},
		{raw: "-2", wantErr: true},
		{raw: "many", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseWorkers(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseWorkers(%q) expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseWorkers(%q) unexpected error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseWorkers(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestApplyGainClamps(t *testing.T) {
	buf := []float32{0.5, -0.5, 3, -3}
	ApplyGain(buf, 0.5)
	want := []float32{0.25, -0.25, 1, -1}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %g, want %g", i, buf[i], want[i])
		}
	}
}

func TestWriteReadMonoWAVRoundTrip(t *testing.T) {
	const sr = 8000
	data := make([]float32, 800)
	for i := range data {
		data[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/sr))
	}
	path := filepath.Join(t.TempDir(), "sub", "tone.wav")
	if err := WriteMonoWAV(path, data, sr); err != nil {
		t.Fatalf("WriteMonoWAV: %v", err)
	}
	got, rate, err := ReadWAVMono(path)
	if err != nil {
		t.Fatalf("ReadWAVMono: %v", err)
	}
	if rate != sr {
		t.Fatalf("rate = %d, want %d", rate, sr)
	}
	if len(got) != len(data) {
		t.Fatalf("frames = %d, want %d", len(got), len(data))
	}
	for i := range data {
		if math.Abs(got[i]-float64(data[i])) > 2.0/32768.0 {
			t.Fatalf("sample %d: got=%g want=%g", i, got[i], data[i])
		}
	}
}

func TestReadWAVMonoMissingFile(t *testing.T) {
	_, _, err := ReadWAVMono(filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, synth.ErrResourceUnavailable) {
		t.Fatalf("expected ErrResourceUnavailable, got %v", err)
	}
}

func TestReadWAVMonoRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not a wave file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadWAVMono(path); !errors.Is(err, synth.ErrResourceUnavailable) {
		t.Fatalf("expected ErrResourceUnavailable, got %v", err)
	}
}

func TestResampleIfNeeded(t *testing.T) {
	in := make([]float64, 4800)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 100 * float64(i) / 48000)
	}
	same, err := ResampleIfNeeded(in, 48000, 48000)
	if err != nil || &same[0] != &in[0] {
		t.Fatalf("expected passthrough for equal rates")
	}
	out, err := ResampleIfNeeded(in, 48000, 24000)
	if err != nil {
		t.Fatalf("ResampleIfNeeded: %v", err)
	}
	if len(out) < 2000 || len(out) > 2800 {
		t.Fatalf("resampled length = %d, want about 2400", len(out))
	}
	if _, err := ResampleIfNeeded(in, 0, 24000); !errors.Is(err, synth.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
