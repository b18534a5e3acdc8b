// Package sequence turns externally described note lists (Standard MIDI
// Files, JSON note lists) into synth.Sequence values with absolute sample
// positions.
package sequence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/cwbudde/algo-additive/synth"
)

// TimedNote is a note with absolute times in seconds and MIDI key/velocity.
type TimedNote struct {
	Track    int     `json:"track"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Key      int     `json:"key"`
	Velocity int     `json:"velocity"`
}

// FromTimedNotes converts notes to a sequence at sampleRate. Tracks keep
// their relative order (by index); notes within a track are ordered by
// start time, then pitch. Track names are looked up in names by index when present.
func FromTimedNotes(notes []TimedNote, sampleRate int, names map[int]string) (synth.Sequence, error) {
	if sampleRate <= 0 {
		return synth.Sequence{}, fmt.Errorf("%w: sample rate must be > 0, got %d", synth.ErrInvalidArgument, sampleRate)
	}
	byTrack := make(map[int][]synth.NoteEvent)
	var order []int
	for i, n := range notes {
		if n.Key < 0 || n.Key > 127 {
			return synth.Sequence{}, fmt.Errorf("%w: note %d key %d outside 0..127", synth.ErrInvalidArgument, i, n.Key)
		}
		if n.End < n.Start {
			return synth.Sequence{}, fmt.Errorf("%w: note %d ends before it starts", synth.ErrInvalidArgument, i)
		}
		start := synth.SecondsToSamples(n.Start, sampleRate)
		end := synth.SecondsToSamples(n.End, sampleRate)
		if _, ok := byTrack[n.Track]; !ok {
			order = append(order, n.Track)
		}
		byTrack[n.Track] = append(byTrack[n.Track], synth.NoteEvent{
			Pitch:           synth.MIDINoteToFreq(n.Key),
			Velocity:        synth.VelocityToGain(n.Velocity),
			StartSample:     start,
			DurationSamples: end - start,
		})
	}
	sort.Ints(order)

	seq := synth.Sequence{SampleRate: sampleRate, Tracks: make([]synth.Track, 0, len(order))}
	for _, idx := range order {
		evs := byTrack[idx]
		sort.SliceStable(evs, func(i, j int) bool {
			if evs[i].StartSample != evs[j].StartSample {
				return evs[i].StartSample < evs[j].StartSample
			}
			return evs[i].Pitch < evs[j].Pitch
		})
		name := names[idx]
		if name == "" {
			name = fmt.Sprintf("track %d", idx)
		}
		seq.Tracks = append(seq.Tracks, synth.Track{Name: name, Notes: evs})
	}
	return seq, nil
}

// LoadJSON reads a JSON array of TimedNote.
func LoadJSON(path string, sampleRate int) (synth.Sequence, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return synth.Sequence{}, err
	}
	var notes []TimedNote
	if err := json.Unmarshal(b, &notes); err != nil {
		return synth.Sequence{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return FromTimedNotes(notes, sampleRate, nil)
}
