// Package score compares a predicted speaker mapping against ground truth.
package score

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
	"go.uber.org/zap"

	"speaker-linker/pkg/linker"
)

// ErrNoGroundTruth is returned when there is nothing to score against.
var ErrNoGroundTruth = errors.New("score: ground truth is empty")

// NearMiss describes a wrongly predicted label together with how close the
// predicted name is to the expected one. It is informational only.
type NearMiss struct {
	Label      string  `json:"label"`
	Want       string  `json:"want"`
	Got        string  `json:"got"`
	Similarity float64 `json:"similarity"`
}

type Report struct {
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Missing   int     `json:"missing"`
	Accuracy  float64 `json:"accuracy"`

	NearMisses []NearMiss `json:"near_misses,omitempty"`
}

func (r Report) Total() int {
	return r.Correct + r.Incorrect + r.Missing
}

func (r Report) String() string {
	return fmt.Sprintf("correct=%d incorrect=%d missing=%d accuracy=%.4f",
		r.Correct, r.Incorrect, r.Missing, r.Accuracy)
}

// Compare scores predicted against truth, label by label. A label is correct
// when the names are equal, incorrect when they differ and missing when the
// prediction lacks it. Labels only present in predicted are ignored.
func Compare(truth, predicted *linker.Mapping) (Report, error) {
	if truth.Len() == 0 {
		return Report{}, ErrNoGroundTruth
	}

	var r Report
	for label, want := range truth.All() {
		got, ok := predicted.Get(label)
		switch {
		case !ok:
			r.Missing++
		case got == want:
			r.Correct++
		default:
			r.Incorrect++
			r.NearMisses = append(r.NearMisses, NearMiss{
				Label:      label,
				Want:       want,
				Got:        got,
				Similarity: matchr.JaroWinkler(strings.ToLower(want), strings.ToLower(got), false),
			})
		}
	}
	r.Accuracy = float64(r.Correct) / float64(r.Total())

	zap.S().Infof("Scored %d labels: %s", r.Total(), r)
	return r, nil
}
