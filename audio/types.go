package audio

import (
	"errors"
	"fmt"
	"time"
)

// SoundType represents the game's sound cues
type SoundType int

const (
	SoundPaddle SoundType = iota // Ball hit a paddle
	SoundWall                    // Ball bounced off top or bottom wall
	SoundScore                   // A point was scored
	soundTypeCount
)

var soundNames = [soundTypeCount]string{
	SoundPaddle: "paddle",
	SoundWall:   "wall",
	SoundScore:  "score",
}

func (s SoundType) String() string {
	if s >= 0 && s < soundTypeCount {
		return soundNames[s]
	}
	return fmt.Sprintf("sound(%d)", int(s))
}

// Cue timing
const (
	PaddleSoundDuration = 60 * time.Millisecond
	PaddleSoundAttack   = 3 * time.Millisecond
	PaddleSoundRelease  = 30 * time.Millisecond
	PaddleSoundFreq     = 440.0 // A4

	WallSoundDuration = 80 * time.Millisecond
	WallSoundAttack   = 5 * time.Millisecond
	WallSoundRelease  = 40 * time.Millisecond
	WallSoundFreq     = 220.0 // A3

	ScoreNote1Duration = 90 * time.Millisecond
	ScoreNote2Duration = 220 * time.Millisecond
	ScoreSoundAttack   = 5 * time.Millisecond
	ScoreNote1Release  = 40 * time.Millisecond
	ScoreNote2Release  = 160 * time.Millisecond
	ScoreNote1Freq     = 523.25 // C5
	ScoreNote2Freq     = 783.99 // G5

	// SpeakerBuffer is the speaker latency
	SpeakerBuffer = 100 * time.Millisecond
)

// AudioConfig holds mixer settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0 - 1.0
	EffectVolumes [soundTypeCount]float64
	SampleRate    int
}

// DefaultAudioConfig returns the built-in mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: [soundTypeCount]float64{
			SoundPaddle: 0.6,
			SoundWall:   0.4,
			SoundScore:  0.8,
		},
		SampleRate: 44100,
	}
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled")
	ErrSpeakerInit   = errors.New("speaker init failed")
)
