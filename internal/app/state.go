// Package app holds the application-level state: the open document, the
// image asset behind it, the active tool, and display toggles. The UI
// reads from here and subscribes to the store's events.
package app

import (
	"log"
	"sync"

	"github.com/terravidhal/proto-annot/internal/document"
	"github.com/terravidhal/proto-annot/internal/imageio"
	"github.com/terravidhal/proto-annot/internal/interaction"
)

// State is the mutable application state shared between UI components.
// All geometry work happens on the UI event goroutine; the mutex only
// covers the asset swap, which races with background image decoding.
type State struct {
	Store *document.Store

	mu    sync.RWMutex
	asset *imageio.Asset

	tool        interaction.Tool
	activeLabel string
	showLabels  bool
	showHandles bool

	onImageReady []func(*imageio.Asset)
}

// NewState creates application state with an empty document.
func NewState() *State {
	return &State{
		Store:       document.NewStore(),
		tool:        interaction.ToolSelect,
		showLabels:  true,
		showHandles: true,
	}
}

// Asset returns the current image asset, possibly still decoding or nil.
func (s *State) Asset() *imageio.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.asset
}

// OnImageReady registers a callback invoked (from the decode goroutine)
// when an image finishes loading.
func (s *State) OnImageReady(fn func(*imageio.Asset)) {
	s.onImageReady = append(s.onImageReady, fn)
}

// LoadImage starts decoding an image in the background. The canvas keeps
// rendering (as a no-op for the missing pixels) until the decode lands; a
// stale in-flight asset that loses the race is simply dropped.
func (s *State) LoadImage(path string) {
	// The lock is held across the LoadAsync call so the completion callback
	// (which read-locks) cannot observe the previous asset.
	s.mu.Lock()
	s.asset = imageio.LoadAsync(path, func(a *imageio.Asset) {
		if err := a.Err(); err != nil {
			log.Printf("image load failed: %v", err)
			return
		}
		s.mu.RLock()
		current := s.asset
		s.mu.RUnlock()
		if current != a {
			return
		}
		for _, fn := range s.onImageReady {
			fn(a)
		}
	})
	s.mu.Unlock()
	s.Store.SetImagePath(path)
}

// OpenDocument loads a saved document and starts loading its image.
func (s *State) OpenDocument(path string) error {
	if err := s.Store.Load(path); err != nil {
		return err
	}
	if img := s.Store.ImagePath(); img != "" {
		s.LoadImage(img)
	}
	return nil
}

// SaveDocument writes the current document.
func (s *State) SaveDocument(path string) error {
	return s.Store.Save(path)
}

// Tool returns the active interaction tool.
func (s *State) Tool() interaction.Tool {
	return s.tool
}

// SetTool changes the active interaction tool.
func (s *State) SetTool(tool interaction.Tool) {
	s.tool = tool
}

// ActiveLabel is the label assigned to newly drawn annotations.
func (s *State) ActiveLabel() string {
	return s.activeLabel
}

// SetActiveLabel sets the label for newly drawn annotations.
func (s *State) SetActiveLabel(label string) {
	s.activeLabel = label
}

// ShowLabels reports whether annotation labels are drawn.
func (s *State) ShowLabels() bool {
	return s.showLabels
}

// SetShowLabels toggles label rendering.
func (s *State) SetShowLabels(show bool) {
	s.showLabels = show
}

// ShowHandles reports whether selection handles are drawn.
func (s *State) ShowHandles() bool {
	return s.showHandles
}

// SetShowHandles toggles handle rendering.
func (s *State) SetShowHandles(show bool) {
	s.showHandles = show
}
