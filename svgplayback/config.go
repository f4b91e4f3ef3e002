package svgplayback

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Options is the host-facing playback configuration, loadable from a
// YAML document:
//
//	repeatMode: reverse   # none | loop | reverse | count
//	repeatCount: 3
//	rate: 1.5
//	autoplay: true
//
// Zero fields keep the timeline defaults.
type Options struct {
	RepeatMode  string  `yaml:"repeatMode"`
	RepeatCount int     `yaml:"repeatCount"`
	Rate        float64 `yaml:"rate"`
	Autoplay    bool    `yaml:"autoplay"`
}

// DefaultOptions returns the defaults: indefinite looping at rate 1,
// no autoplay.
func DefaultOptions() Options {
	return Options{RepeatMode: "loop", RepeatCount: 1, Rate: 1}
}

// ReadOptions decodes Options from YAML, starting from the defaults.
func ReadOptions(r io.Reader) (Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Options{}, err
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("svgplayback: invalid options: %s", err)
	}
	return opts, nil
}

// ApplyOptions configures the timeline from an Options record.
// Unknown repeat mode strings and out-of-range numbers are corrected
// to defaults rather than reported.
func (tl *Timeline) ApplyOptions(opts Options) {
	switch opts.RepeatMode {
	case "none":
		tl.SetRepeatMode(None)
	case "", "loop":
		tl.SetRepeatMode(Loop)
	case "reverse":
		tl.SetRepeatMode(Reverse)
	case "count":
		tl.SetRepeatCount(opts.RepeatCount) // clamps to >= 1, selects Count
	default:
		tl.SetRepeatMode(Loop)
	}
	if opts.Rate != 0 {
		tl.SetRate(opts.Rate)
	}
	if opts.Autoplay {
		tl.Play()
	}
}
