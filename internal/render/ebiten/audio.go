package ebiten

import (
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	audioSampleRate = 48000
	humBufferFrames = 2048
)

// humStream generates the media panel's drone: two detuned low tones as
// 16-bit little-endian stereo.
type humStream struct {
	mu    sync.Mutex
	phase [2]float64
}

var humTones = [2]float64{110, 165.4}

func (s *humStream) Read(p []byte) (int, error) {
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < frameBytes; i += 4 {
		var v float64
		for t, freq := range humTones {
			v += 0.25 * math.Sin(s.phase[t])
			s.phase[t] += 2 * math.Pi * freq / audioSampleRate
			if s.phase[t] > 2*math.Pi {
				s.phase[t] -= 2 * math.Pi
			}
		}
		sample := int16(v * 32767)
		p[i] = byte(sample)
		p[i+1] = byte(sample >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

// MediaHum plays the media panel sound. Its volume follows the player's
// distance to the panel.
type MediaHum struct {
	player *audio.Player
}

// NewMediaHum starts the hum muted.
func NewMediaHum() (*MediaHum, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(audioSampleRate)
	}
	player, err := ctx.NewPlayer(&humStream{})
	if err != nil {
		return nil, err
	}
	player.SetBufferSize(time.Duration(humBufferFrames) * time.Second / audioSampleRate)
	player.SetVolume(0)
	player.Play()
	return &MediaHum{player: player}, nil
}

// SetVolume sets the volume in [0, 1].
func (h *MediaHum) SetVolume(v float64) {
	h.player.SetVolume(math.Max(0, math.Min(1, v)))
}

// Close stops the hum.
func (h *MediaHum) Close() error {
	return h.player.Close()
}
