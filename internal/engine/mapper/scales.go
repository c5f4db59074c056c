package mapper

import "github.com/crimson-sun/aulos/internal/model"

// Scale is an ordered list of semitone offsets from the root pitch.
type Scale []int

// ScaleSet maps every category to a scale. Lookups go through Scale(), which
// falls back to Neutral, so a set only has to be non-empty per entry.
type ScaleSet map[model.Category]Scale

// DefaultScales returns the stock category-to-scale assignment:
// happy traffic sounds major, errors sound increasingly unstable.
func DefaultScales() ScaleSet {
	return ScaleSet{
		model.Success:     {0, 2, 4, 5, 7, 9, 11}, // major
		model.Redirect:    {0, 2, 3, 5, 7, 8, 10}, // minor
		model.ClientError: {0, 2, 3, 5, 6, 8, 9},  // diminished
		model.ServerError: {0, 1, 2, 3, 4, 5, 6},  // chromatic
		model.Neutral:     {0, 2, 3, 5, 7, 8, 10}, // minor
	}
}

// Scale returns the scale for the category, falling back to the Neutral
// entry and then to a single root degree so the lookup is total.
func (s ScaleSet) Scale(c model.Category) Scale {
	if sc, ok := s[c]; ok && len(sc) > 0 {
		return sc
	}
	if sc, ok := s[model.Neutral]; ok && len(sc) > 0 {
		return sc
	}
	return Scale{0}
}

// General MIDI programs per track, matching the track taxonomy:
// melody, harmony, bass, percussion.
var TrackPrograms = [4]uint8{1, 4, 33, 118}
