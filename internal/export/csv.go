package export

import (
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/hapticsim/internal/experiment"
)

// WriteCSV writes one row per sample with a header line.
func WriteCSV(w io.Writer, samples []experiment.Sample) error {
	if len(samples) == 0 {
		return ErrEmptyTrace
	}
	return gocsv.Marshal(samples, w)
}

// ReadCSV parses a trace written by WriteCSV.
func ReadCSV(r io.Reader) ([]experiment.Sample, error) {
	var samples []experiment.Sample
	if err := gocsv.Unmarshal(r, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

func SaveCSV(path string, samples []experiment.Sample) error {
	return toFile(path, func(w io.Writer) error { return WriteCSV(w, samples) })
}

func toFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
