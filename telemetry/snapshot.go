package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/tacodoll/ragdoll"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the pose of a figure for later restore.
type Snapshot struct {
	Version int     `json:"version"`
	Tick    int64   `json:"tick"`
	Scale   float64 `json:"scale"`

	Parts []PartState `json:"parts"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// PartState holds one body's pose and motion.
type PartState struct {
	Label string `json:"label"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	VelX   float64 `json:"vel_x"`
	VelY   float64 `json:"vel_y"`
	AngVel float64 `json:"ang_vel"`
}

// NewSnapshot captures every part of r.
func NewSnapshot(tick int64, r *ragdoll.Ragdoll) *Snapshot {
	s := &Snapshot{
		Version: SnapshotVersion,
		Tick:    tick,
		Scale:   r.Scale,
		Parts:   make([]PartState, 0, len(r.Parts)),
	}
	for i := range r.Parts {
		p := &r.Parts[i]
		pos, vel := p.Body.Position(), p.Body.Velocity()
		s.Parts = append(s.Parts, PartState{
			Label:  p.Label.String(),
			X:      pos.X,
			Y:      pos.Y,
			Angle:  p.Body.Angle(),
			VelX:   vel.X,
			VelY:   vel.Y,
			AngVel: p.Body.AngularVelocity(),
		})
	}
	return s
}

// Apply moves the parts of r to the stored pose. Parts whose label is not
// recognised are skipped; the count of applied parts is returned.
func (s *Snapshot) Apply(r *ragdoll.Ragdoll) int {
	applied := 0
	for _, ps := range s.Parts {
		l, ok := ragdoll.ParseLabel(ps.Label)
		if !ok {
			continue
		}
		body := r.Part(l).Body
		body.SetPosition(cp.Vector{X: ps.X, Y: ps.Y})
		body.SetAngle(ps.Angle)
		body.SetVelocityVector(cp.Vector{X: ps.VelX, Y: ps.VelY})
		body.SetAngularVelocity(ps.AngVel)
		applied++
	}
	return applied
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
