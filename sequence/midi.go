package sequence

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-additive/synth"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type noteKey struct {
	channel uint8
	key     uint8
}

type openNote struct {
	startUS  int64
	velocity uint8
}

type trackState struct {
	open   map[noteKey][]openNote
	lastUS int64
}

// Load reads a note file, choosing the reader from the extension
// (.json for note lists, anything else is a Standard MIDI File).
func Load(path string, sampleRate int) (synth.Sequence, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(path, sampleRate)
	}
	return LoadMIDI(path, sampleRate)
}

// LoadMIDI reads a Standard MIDI File from disk.
func LoadMIDI(path string, sampleRate int) (synth.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return synth.Sequence{}, err
	}
	defer f.Close()
	seq, err := ReadMIDI(f, sampleRate)
	if err != nil {
		return synth.Sequence{}, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}

// ReadMIDI decodes a Standard MIDI File. Tempo changes are resolved by the
// SMF reader, so note times are absolute. A note-on with velocity 0 ends a
// note; overlapping notes on the same key and channel are matched first in,
// first out; notes still sounding at the end of a track end there. Tracks
// without notes are dropped; a file without any notes is ErrResourceUnavailable.
func ReadMIDI(r io.Reader, sampleRate int) (synth.Sequence, error) {
	if sampleRate <= 0 {
		return synth.Sequence{}, fmt.Errorf("%w: sample rate must be > 0, got %d", synth.ErrInvalidArgument, sampleRate)
	}

	states := make(map[int]*trackState)
	names := make(map[int]string)
	var notes []TimedNote

	rd := smf.ReadTracksFrom(r).Do(func(ev smf.TrackEvent) {
		st, ok := states[ev.TrackNo]
		if !ok {
			st = &trackState{open: make(map[noteKey][]openNote)}
			states[ev.TrackNo] = st
		}
		if ev.AbsMicroSeconds > st.lastUS {
			st.lastUS = ev.AbsMicroSeconds
		}

		var ch, key, vel uint8
		var text string
		msg := midi.Message(ev.Message)
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			k := noteKey{ch, key}
			st.open[k] = append(st.open[k], openNote{startUS: ev.AbsMicroSeconds, velocity: vel})
		case msg.GetNoteEnd(&ch, &key):
			k := noteKey{ch, key}
			pending := st.open[k]
			if len(pending) == 0 {
				return
			}
			on := pending[0]
			st.open[k] = pending[1:]
			notes = append(notes, timedNote(ev.TrackNo, key, on, ev.AbsMicroSeconds))
		case ev.Message.GetMetaTrackName(&text):
			if _, seen := names[ev.TrackNo]; !seen {
				names[ev.TrackNo] = strings.TrimSpace(text)
			}
		}
	})
	if err := rd.Error(); err != nil {
		return synth.Sequence{}, fmt.Errorf("read midi: %w", err)
	}
	for trackNo, st := range states {
		for k, pending := range st.open {
			for _, on := range pending {
				notes = append(notes, timedNote(trackNo, k.key, on, st.lastUS))
			}
		}
	}
	if len(notes) == 0 {
		return synth.Sequence{}, fmt.Errorf("%w: midi data has no notes", synth.ErrResourceUnavailable)
	}
	return FromTimedNotes(notes, sampleRate, names)
}

func timedNote(track int, key uint8, on openNote, endUS int64) TimedNote {
	return TimedNote{
		Track:    track,
		Start:    float64(on.startUS) / 1e6,
		End:      float64(endUS) / 1e6,
		Key:      int(key),
		Velocity: int(on.velocity),
	}
}
