package export

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/san-kum/hapticsim/internal/dynamo"
	"github.com/san-kum/hapticsim/internal/experiment"
)

var ErrEmptyTrace = errors.New("export: empty trace")

// Report is the JSON document written for a run.
type Report struct {
	Name    string              `json:"name"`
	Steps   int                 `json:"steps"`
	Time    float64             `json:"time"`
	Final   dynamo.ObjectState  `json:"final"`
	Forces  dynamo.Forces       `json:"forces"`
	Metrics map[string]float64  `json:"metrics"`
	Samples []experiment.Sample `json:"samples,omitempty"`
}

func NewReport(r *experiment.Result) Report {
	rep := Report{
		Name:    r.Name,
		Steps:   r.StepsTaken,
		Time:    r.Time,
		Final:   r.Final,
		Forces:  r.Forces,
		Metrics: r.Metrics,
	}
	if r.Trace != nil {
		rep.Samples = r.Trace.Samples
	}
	return rep
}

func WriteJSON(w io.Writer, r *experiment.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(r))
}

func SaveJSON(path string, r *experiment.Result) error {
	return toFile(path, func(w io.Writer) error { return WriteJSON(w, r) })
}
