package puppet

// Voice plays a named sound. The game backs it with raylib audio; tests and
// headless runs pass nil or a recorder.
type Voice interface {
	Play(name string)
}

// VoiceFunc adapts a function to Voice.
type VoiceFunc func(name string)

// Play calls f(name).
func (f VoiceFunc) Play(name string) { f(name) }
