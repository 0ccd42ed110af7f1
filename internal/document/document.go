// Package document owns the committed annotation set for one image and
// its JSON persistence. The interactive engine never touches this store
// directly: it returns updated annotation values and the caller writes
// them back here, so the last writer for a given id wins.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/terravidhal/proto-annot/internal/annotation"
)

// FormatVersion is written into saved documents.
const FormatVersion = 1

// Document is the JSON structure of a saved annotation project.
type Document struct {
	Version     int                     `json:"version"`
	ImagePath   string                  `json:"image,omitempty"`
	Annotations []annotation.Annotation `json:"annotations"`
}

// EventType identifies store change events.
type EventType int

const (
	EventAnnotationsChanged EventType = iota
	EventSelectionChanged
	EventVisibilityChanged
	EventLoaded
	EventSaved
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Store holds the live annotation set, selection, and visibility flags,
// and fans out change events to registered listeners. Annotations keep
// their insertion order; the renderer draws them in that order, so it is
// also the stacking order used by hit-testing.
//
// The mutex covers all fields: mutations arrive from UI event handlers
// while the raster paint path reads concurrently. Events are emitted after
// the lock is released.
type Store struct {
	mu          sync.RWMutex
	imagePath   string
	annotations []annotation.Annotation
	selection   string
	hidden      map[string]bool

	listeners map[EventType][]EventListener
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		hidden:    make(map[string]bool),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *Store) On(event EventType, listener EventListener) {
	s.mu.Lock()
	s.listeners[event] = append(s.listeners[event], listener)
	s.mu.Unlock()
}

// Emit triggers all listeners for the specified event type. Listeners run
// outside the store lock, so they may call back into the store.
func (s *Store) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := append([]EventListener(nil), s.listeners[event]...)
	s.mu.RUnlock()
	for _, listener := range listeners {
		listener(data)
	}
}

// ImagePath returns the path of the annotated image.
func (s *Store) ImagePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imagePath
}

// SetImagePath records the annotated image path.
func (s *Store) SetImagePath(path string) {
	s.mu.Lock()
	s.imagePath = path
	s.mu.Unlock()
}

// All returns a copy of the annotation set in stacking order.
func (s *Store) All() []annotation.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]annotation.Annotation, len(s.annotations))
	for i, a := range s.annotations {
		out[i] = a.Clone()
	}
	return out
}

// Get returns the annotation with the given id.
func (s *Store) Get(id string) (annotation.Annotation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.annotations {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return annotation.Annotation{}, false
}

// Upsert inserts or replaces one annotation by id.
func (s *Store) Upsert(a annotation.Annotation) {
	s.mu.Lock()
	replaced := false
	for i := range s.annotations {
		if s.annotations[i].ID == a.ID {
			s.annotations[i] = a.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		s.annotations = append(s.annotations, a.Clone())
	}
	s.mu.Unlock()
	s.Emit(EventAnnotationsChanged, a.ID)
}

// Replace swaps in a whole updated set, preserving value semantics.
func (s *Store) Replace(set []annotation.Annotation) {
	s.mu.Lock()
	s.annotations = make([]annotation.Annotation, len(set))
	for i, a := range set {
		s.annotations[i] = a.Clone()
	}
	s.mu.Unlock()
	s.Emit(EventAnnotationsChanged, nil)
}

// Remove deletes an annotation by id; a removed selection is cleared.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	found := false
	deselected := false
	for i := range s.annotations {
		if s.annotations[i].ID == id {
			s.annotations = append(s.annotations[:i], s.annotations[i+1:]...)
			delete(s.hidden, id)
			if s.selection == id {
				s.selection = ""
				deselected = true
			}
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return
	}
	if deselected {
		s.Emit(EventSelectionChanged, "")
	}
	s.Emit(EventAnnotationsChanged, id)
}

// Selection returns the selected annotation id, or "".
func (s *Store) Selection() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// SetSelection changes the selection and notifies listeners when it
// actually changed.
func (s *Store) SetSelection(id string) {
	s.mu.Lock()
	if s.selection == id {
		s.mu.Unlock()
		return
	}
	s.selection = id
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, id)
}

// Hidden returns the visibility set keyed by annotation id.
func (s *Store) Hidden() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.hidden))
	for k, v := range s.hidden {
		out[k] = v
	}
	return out
}

// SetHidden toggles the visibility of one annotation.
func (s *Store) SetHidden(id string, hidden bool) {
	s.mu.Lock()
	if hidden {
		s.hidden[id] = true
	} else {
		delete(s.hidden, id)
	}
	s.mu.Unlock()
	s.Emit(EventVisibilityChanged, id)
}

// Save writes the document as indented JSON.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	doc := Document{
		Version:     FormatVersion,
		ImagePath:   s.imagePath,
		Annotations: append([]annotation.Annotation(nil), s.annotations...),
	}
	s.mu.RUnlock()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	s.Emit(EventSaved, path)
	return nil
}

// Load reads a document and replaces the store contents. Annotations from
// documents written before bounds existed get their bounds derived from
// the raw points here, once, so everything downstream can rely on Bounds.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	set := make([]annotation.Annotation, 0, len(doc.Annotations))
	for _, a := range doc.Annotations {
		if a.ScaleX == 0 {
			a.ScaleX = 1
		}
		if a.ScaleY == 0 {
			a.ScaleY = 1
		}
		set = append(set, a.EnsureBounds())
	}

	s.mu.Lock()
	s.imagePath = doc.ImagePath
	s.annotations = set
	s.hidden = make(map[string]bool)
	s.selection = ""
	s.mu.Unlock()

	s.Emit(EventLoaded, path)
	return nil
}
