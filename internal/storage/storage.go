// Package storage persists per-guild bot records in a JSON-backed datastore.
package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/keshon/datastore"

	"github.com/keshon/voicebot/internal/logger"
)

const commandHistoryLimit int = 20

type Storage struct {
	// mu serializes read-modify-write cycles on guild records.
	mu     sync.Mutex
	ds     *datastore.DataStore
	cancel context.CancelFunc
}

// CommandHistory is one recorded command invocation.
type CommandHistory struct {
	ChannelID string    `json:"channel_id"`
	GuildID   string    `json:"guild_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Args      []string  `json:"args,omitempty"`
	Datetime  time.Time `json:"datetime"`
}

// Record is everything stored for one guild.
type Record struct {
	CommandsHistory []CommandHistory `json:"commands_history"`
}

// New opens the datastore at filePath. Its background saver runs until ctx
// is cancelled or Close is called.
func New(ctx context.Context, filePath string) (*Storage, error) {
	ctx, cancel := context.WithCancel(ctx)
	ds, err := datastore.New(ctx, filePath, datastore.WithLogger(logger.Slog("datastore")))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open datastore %s: %w", filePath, err)
	}
	return &Storage{ds: ds, cancel: cancel}, nil
}

// Close stops the background saver and writes the store to disk.
func (s *Storage) Close() error {
	s.cancel()
	return s.ds.Close()
}

// getGuildRecord returns the guild's record, or an empty one. Callers hold mu.
func (s *Storage) getGuildRecord(guildID string) (*Record, error) {
	var record Record
	if _, err := s.ds.Get(guildID, &record); err != nil {
		return nil, fmt.Errorf("error reading record for guild %s: %w", guildID, err)
	}
	if record.CommandsHistory == nil {
		record.CommandsHistory = []CommandHistory{}
	}
	return &record, nil
}

// AppendCommand records a command invocation, keeping only the most recent
// entries per guild.
func (s *Storage) AppendCommand(guildID string, entry CommandHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}

	if entry.Datetime.IsZero() {
		entry.Datetime = time.Now()
	}
	record.CommandsHistory = append(record.CommandsHistory, entry)
	if n := len(record.CommandsHistory); n > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[n-commandHistoryLimit:]
	}

	if err := s.ds.Set(guildID, record); err != nil {
		return fmt.Errorf("error saving record for guild %s: %w", guildID, err)
	}
	return nil
}

// CommandsHistory returns the recorded invocations for a guild, oldest first.
func (s *Storage) CommandsHistory(guildID string) ([]CommandHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistory, nil
}
