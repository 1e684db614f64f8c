package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-pong/event"
)

// SoundManager plays match cues through a single mixer on the speaker
// Implements event.Sink; cues are dropped until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool

	// Counts cues handed to the mixer
	played [soundTypeCount]atomic.Int64
}

// NewSoundManager creates a sound manager; nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
// Safe to call more than once; returns ErrAudioDisabled when disabled by config
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(SpeakerBuffer)); err != nil {
		return fmt.Errorf("%w: %v", ErrSpeakerInit, err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer; the speaker itself stays open for the process lifetime
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// Play queues one cue on the mixer
func (sm *SoundManager) Play(st SoundType) {
	if sm.muted.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := GetSoundEffect(st, sm.cfg)
	if streamer == nil {
		return
	}
	sm.played[st].Add(1)

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Emit maps simulation events to cues
func (sm *SoundManager) Emit(ev event.Event) {
	if st, ok := SoundFor(ev.Type); ok {
		sm.Play(st)
	}
}

// SoundFor returns the cue for an event type; match lifecycle events are silent
func SoundFor(t event.EventType) (SoundType, bool) {
	switch t {
	case event.EventPaddleHit:
		return SoundPaddle, true
	case event.EventWallBounce:
		return SoundWall, true
	case event.EventScore:
		return SoundScore, true
	}
	return 0, false
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool { return sm.muted.Load() }

// Initialized reports whether the speaker is running
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Played returns how many cues of st reached the mixer
func (sm *SoundManager) Played(st SoundType) int64 {
	if st < 0 || st >= soundTypeCount {
		return 0
	}
	return sm.played[st].Load()
}
