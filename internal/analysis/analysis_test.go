package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/hapticsim/internal/config"
)

func sine(n int, dt, freq, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		n    int
		freq float64
	}{
		{"power of two", 1024, 2},
		{"odd length", 1000, 3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt := 0.01
			data := sine(tt.n, dt, tt.freq, 5)
			for i := range data {
				data[i] += 100 // DC offset must not win
			}
			f, amp := DominantFrequency(data, dt)
			resolution := 1 / (float64(tt.n) * dt)
			if math.Abs(f-tt.freq) > resolution {
				t.Errorf("expected %v Hz, got %v", tt.freq, f)
			}
			if amp <= 0 {
				t.Errorf("expected positive amplitude, got %v", amp)
			}
		})
	}
}

func TestDominantFrequency_Flat(t *testing.T) {
	f, amp := DominantFrequency([]float64{3, 3, 3, 3, 3, 3}, 0.01)
	if f != 0 || amp != 0 {
		t.Errorf("expected 0, 0 for a constant signal, got %v, %v", f, amp)
	}
	if s := PowerSpectrum([]float64{1}, 0.01); len(s.Amps) != 0 {
		t.Error("expected empty spectrum for a single sample")
	}
}

func TestPowerSpectrum_Bins(t *testing.T) {
	s := PowerSpectrum(sine(100, 0.01, 5, 1), 0.01)
	if len(s.Freqs) != 51 {
		t.Fatalf("expected 51 bins, got %d", len(s.Freqs))
	}
	if math.Abs(s.Freqs[50]-50) > 1e-9 {
		t.Errorf("expected Nyquist 50 Hz, got %v", s.Freqs[50])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4, 1, 3, 2})
	if s.N != 4 || s.Min != 1 || s.Max != 4 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Mean != 2.5 || s.Median != 2.5 {
		t.Errorf("expected mean and median 2.5, got %v and %v", s.Mean, s.Median)
	}
	if math.Abs(s.StdDev-math.Sqrt(5.0/3)) > 1e-12 {
		t.Errorf("expected sample std dev %v, got %v", math.Sqrt(5.0/3), s.StdDev)
	}
	if math.Abs(s.RMS-math.Sqrt(7.5)) > 1e-12 {
		t.Errorf("expected rms %v, got %v", math.Sqrt(7.5), s.RMS)
	}

	if one := Summarize([]float64{7}); one.Mean != 7 || one.Median != 7 || one.StdDev != 0 {
		t.Errorf("unexpected single-value summary %+v", one)
	}
	if empty := Summarize(nil); empty.N != 0 {
		t.Errorf("expected empty summary, got %+v", empty)
	}
}

func TestCrossings(t *testing.T) {
	xs := []float64{0, 5, 12, 11, 9, 10, 10, 11}
	vs := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	got := Crossings(xs, vs, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 crossings, got %+v", got)
	}
	if got[0].Index != 2 || !got[0].Rising {
		t.Errorf("first crossing: %+v", got[0])
	}
	if got[1].Index != 4 || got[1].Rising {
		t.Errorf("second crossing: %+v", got[1])
	}
	// touches 10 at index 5 and 6 then rises above
	if got[2].Index != 7 || !got[2].Rising {
		t.Errorf("third crossing: %+v", got[2])
	}
	wantV := 2 + (5.0/7.0)*1
	if math.Abs(got[0].Velocity-wantV) > 1e-12 {
		t.Errorf("expected interpolated velocity %v, got %v", wantV, got[0].Velocity)
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	p := NewPhasePortrait([]float64{0, 1, 2, 3}, []float64{-1, 1, -1, 1, 99})
	if len(p.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(p.Points))
	}
	out := PhasePortraitToASCII(p, 20, 10)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	for _, r := range []string{"o", "@", "─"} {
		if !strings.Contains(out, r) {
			t.Errorf("expected %q in portrait", r)
		}
	}
	if PhasePortraitToASCII(nil, 20, 10) != "" {
		t.Error("expected empty output for nil portrait")
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if Linspace(0, 1, 0) != nil || len(Linspace(3, 4, 1)) != 1 {
		t.Error("unexpected degenerate linspace")
	}
}

func TestSweep_StaticFriction(t *testing.T) {
	cfg := config.GetPreset("pit")
	cfg.Simulation.Steps = 400
	cfg.Friction.Enabled = true
	cfg.Friction.Kinetic = 0

	points, err := Sweep(context.Background(), cfg, "friction.static", []float64{0, 1000}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Final.X <= 240 {
		t.Errorf("without friction the object should fall in, got x=%v", points[0].Final.X)
	}
	if points[1].Final.X != 240 {
		t.Errorf("with high static friction the object should stick, got x=%v", points[1].Final.X)
	}
}

func TestSweep_UnknownParam(t *testing.T) {
	if _, err := Sweep(context.Background(), config.DefaultConfig(), "gravity", []float64{1}, 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
