// ABOUTME: Recorder persists extracted memories as a detached background task
// ABOUTME: De-duplicates on exact (user id, content) and swallows its own errors
package memory

import (
	"log"
	"sync"

	"github.com/harper/companion/internal/models"
	"github.com/harper/companion/internal/storage"
)

// Recorder extracts and persists memories for user utterances. It runs after
// a chat response has been delivered and is never awaited by the chat path;
// failures are logged here and never reach the caller's error channel.
type Recorder struct {
	store storage.Store
	wg    sync.WaitGroup
}

// NewRecorder creates a Recorder backed by the given store
func NewRecorder(store storage.Store) *Recorder {
	return &Recorder{store: store}
}

// RecordAsync launches extraction and persistence in a goroutine
// (fire-and-forget). Use Wait in tests to observe completion.
func (r *Recorder) RecordAsync(userID, utterance string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.record(userID, utterance)
	}()
}

// Wait blocks until all in-flight recordings have finished
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// record is the internal sync implementation
func (r *Recorder) record(userID, utterance string) {
	for _, candidate := range Extract(utterance) {
		exists, err := r.store.HasMemory(userID, candidate.Content)
		if err != nil {
			log.Printf("[Recorder] Error checking for duplicate memory: %v", err)
			continue
		}
		if exists {
			continue
		}

		mem, err := models.NewUserMemory(userID, candidate.Type, candidate.Content, candidate.Importance)
		if err != nil {
			log.Printf("[Recorder] Error building memory: %v", err)
			continue
		}
		if err := r.store.SaveMemory(mem); err != nil {
			log.Printf("[Recorder] Error saving memory: %v", err)
		}
	}
}
