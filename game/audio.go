package game

import (
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Voice plays the named sounds from the config through raylib audio.
type Voice struct {
	sounds map[string]rl.Sound
	Muted  bool
}

// NewVoice opens the audio device and loads every sound in paths. Missing
// files are logged and skipped.
func NewVoice(paths map[string]string, root string) *Voice {
	rl.InitAudioDevice()
	v := &Voice{sounds: make(map[string]rl.Sound, len(paths))}
	for name, path := range paths {
		full := path
		if root != "" && !filepath.IsAbs(path) {
			full = filepath.Join(root, path)
		}
		if !rl.FileExists(full) {
			slog.Warn("sound not found", "name", name, "path", full)
			continue
		}
		s := rl.LoadSound(full)
		if s.FrameCount == 0 {
			slog.Warn("sound failed to load", "name", name, "path", full)
			continue
		}
		v.sounds[name] = s
	}
	return v
}

// Play starts the named sound. Unknown names are ignored.
func (v *Voice) Play(name string) {
	if v.Muted {
		return
	}
	if s, ok := v.sounds[name]; ok {
		rl.PlaySound(s)
	}
}

// Unload frees the sounds and closes the audio device.
func (v *Voice) Unload() {
	for name, s := range v.sounds {
		rl.UnloadSound(s)
		delete(v.sounds, name)
	}
	rl.CloseAudioDevice()
}
