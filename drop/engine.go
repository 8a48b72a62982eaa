package drop

import (
	"fmt"
	"path/filepath"

	"vmdrop/audio"
	"vmdrop/detect"
	"vmdrop/log"
	"vmdrop/oracle"
	"vmdrop/transcribe"
)

const (
	chunkDuration = 0.1

	silenceTrigger   = 0.6 // seconds of confirmed silence before consulting the oracle
	minContext       = 10  // characters of context required for a judgment
	speechAfterStart = 1.0 // last-speech threshold separating the two fallbacks
	fallbackScale    = 0.9 // fallback drop point as a fraction of total duration
)

// Engine processes one stream at a time: it feeds fixed 0.1s chunks to
// the beep and silence detectors and the transcription source, and
// emits the first decision the priority policy produces. All state is
// owned by the engine and reset at the start of every stream; nothing
// is shared across files.
type Engine struct {
	beep       *detect.BeepDetector
	classifier detect.Classifier
	source     transcribe.Source
	buffer     *transcribe.ContextBuffer
	analyzer   *oracle.Analyzer

	// Progress, when set, is called after every chunk with the elapsed
	// and total stream time.
	Progress func(elapsed, total float64)
}

func NewEngine(classifier detect.Classifier, source transcribe.Source, analyzer *oracle.Analyzer) *Engine {
	return &Engine{
		beep:       detect.NewBeepDetector(),
		classifier: classifier,
		source:     source,
		buffer:     &transcribe.ContextBuffer{},
		analyzer:   analyzer,
	}
}

// BeepConfidence is the confidence of the last beep confirmation.
func (e *Engine) BeepConfidence() float64 { return e.beep.Confidence() }

// ProcessFile decodes path and runs the stream loop over it. A file
// that cannot be decoded yields a nil decision and an error; this is
// terminal for the file, not the batch.
func (e *Engine) ProcessFile(path string) (*Decision, error) {
	clip, err := audio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	log.FileLoaded(filepath.Base(path), clip.Duration(), clip.Rate, clip.Channels())
	d := e.ProcessClip(clip)
	return &d, nil
}

// ProcessClip runs the chunk loop over decoded audio and always returns
// a decision; when no cue triggers, the end-of-stream fallback decides.
func (e *Engine) ProcessClip(clip audio.Clip) Decision {
	e.beep.Reset()
	e.source.Reset()
	e.buffer.Reset()
	silence := detect.NewSilenceDetector(clip.Rate, e.classifier)

	total := clip.Duration()
	mono := clip.Mono()
	first := clip.Data[0]

	chunkSize := int(float64(clip.Rate) * chunkDuration)
	if chunkSize < 1 {
		chunkSize = 1
	}

	for start := 0; start < clip.Len(); start += chunkSize {
		end := start + chunkSize
		if end > clip.Len() {
			end = clip.Len()
		}
		now := float64(end) / float64(clip.Rate)

		// Beep first: a confirmation short-circuits the silence and
		// transcription work for this chunk.
		if e.beep.ProcessChunk(mono[start:end], clip.Rate, now) {
			return Decision{Time: now, Reason: ReasonBeep}
		}

		silenceDur := silence.ProcessChunk(first[start:end], now)

		if fragment, ok := e.source.NextFragment(total, now); ok {
			e.buffer.Append(fragment)
		}

		if silenceDur >= silenceTrigger {
			context := e.buffer.Current()
			if len(context) > minContext && e.analyzer.IsGreetingComplete(context) {
				return Decision{Time: now, Reason: ReasonSilenceComplete}
			}
			// Incomplete greeting: keep going, the silence timer is
			// not reset.
		}

		if e.Progress != nil {
			e.Progress(now, total)
		}
	}

	if silence.LastSpeechTime() > speechAfterStart {
		return Decision{Time: total * fallbackScale, Reason: ReasonEndOfSpeech}
	}
	return Decision{Time: total * fallbackScale, Reason: ReasonEndOfAudio}
}
