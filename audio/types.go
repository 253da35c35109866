package audio

import (
	"errors"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the device the mixed graph plays through
// Lock and Unlock serialize graph mutation against the device pulling samples
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// SpeakerOutput plays through the system audio device
type SpeakerOutput struct{}

// NewSpeakerOutput returns the default device output
func NewSpeakerOutput() *SpeakerOutput {
	return &SpeakerOutput{}
}

func (SpeakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (SpeakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (SpeakerOutput) Lock()                { speaker.Lock() }
func (SpeakerOutput) Unlock()              { speaker.Unlock() }
func (SpeakerOutput) Close()               { speaker.Close() }

// Sentinel errors
var (
	ErrNotActive = errors.New("audio engine not activated")
	ErrNoOutput  = errors.New("no audio output available")
)
