package domain

import (
	"sync"
	"time"
)

// Session holds the state of one interactive browser session.
// Handlers must hold the session lock for the duration of a UI event.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	upload    *InputImage
	generated *GeneratedImage
	prompt    string
	notice    string
	// version increments every time the display slot is overwritten
	version int
}

// NewSession creates an empty session
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Upload returns the last uploaded image, or nil
func (s *Session) Upload() *InputImage {
	return s.upload
}

// SetUpload replaces the uploaded image
func (s *Session) SetUpload(img *InputImage) {
	s.upload = img
}

// Generated returns the image in the display slot, or nil
func (s *Session) Generated() *GeneratedImage {
	return s.generated
}

// SetGenerated overwrites the display slot. A nil image is ignored.
func (s *Session) SetGenerated(img *GeneratedImage) {
	if img == nil {
		return
	}
	s.generated = img
	s.version++
}

// Version returns the number of times the display slot was written
func (s *Session) Version() int {
	return s.version
}

func (s *Session) Prompt() string {
	return s.prompt
}

func (s *Session) SetPrompt(prompt string) {
	s.prompt = prompt
}

// TakeNotice returns the pending notice and clears it
func (s *Session) TakeNotice() string {
	notice := s.notice
	s.notice = ""
	return notice
}

func (s *Session) SetNotice(notice string) {
	s.notice = notice
}
