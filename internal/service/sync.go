// Package service holds the application services: the sync orchestrator
// that decorates the local store with remote mirroring, and settings
// persistence.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/promptdeck/promptdeck/internal/adapter/firestore"
	"github.com/promptdeck/promptdeck/internal/adapter/localfs"
	"github.com/promptdeck/promptdeck/internal/domain"
	"github.com/promptdeck/promptdeck/internal/domain/prompt"
	"github.com/promptdeck/promptdeck/internal/port/datastore"
)

var _ datastore.Store = (*SyncService)(nil)

// Session is a restored authentication session.
type Session struct {
	UserID string
	Token  string
}

// syncState is everything guarded by the service lock: the active
// partition and the credentials for mirroring.
type syncState struct {
	local   *localfs.Store
	userID  string
	token   string
	enabled bool
}

// mirrorContext is a credentials snapshot taken under the read lock and
// used for one network call after the lock is released.
type mirrorContext struct {
	userID string
	token  string
}

// SyncService wraps the local store with best-effort Firestore mirroring.
// Local state is the source of truth: every mutating operation hits the
// local partition synchronously, then mirrors the change remotely in a
// tracked background task whose outcome never affects the caller.
//
// The state lock is never held across network I/O. Mirror goroutines are
// tracked so Close can drain them at shutdown; a sign-out while a mirror
// call is in flight lets it finish against the credentials it captured.
type SyncService struct {
	mu      sync.RWMutex
	state   syncState
	remote  *firestore.Client
	stores  *localfs.Factory
	mirrors sync.WaitGroup
}

// NewSyncService creates a sync service in anonymous mode.
func NewSyncService(remote *firestore.Client, stores *localfs.Factory) *SyncService {
	return &SyncService{
		remote: remote,
		stores: stores,
		state:  syncState{local: stores.Anonymous()},
	}
}

// NewSyncServiceWithSession creates a sync service with a restored
// session, so the user's partition is active from the first operation.
// Migration from the anonymous partition runs before any access.
func NewSyncServiceWithSession(remote *firestore.Client, stores *localfs.Factory, session *Session) *SyncService {
	s := NewSyncService(remote, stores)
	if session != nil {
		s.activateUser(session.UserID, session.Token)
	}
	return s
}

// activateUser switches the active partition to the user's store, running
// anonymous migration first, and stores the credentials.
func (s *SyncService) activateUser(userID, token string) {
	userStore := s.stores.ForUser(userID)
	if migrated, err := localfs.Migrate(s.stores.Anonymous(), userStore); err != nil {
		slog.Warn("anonymous data migration failed", "user_id", userID, "error", err)
	} else if migrated {
		slog.Info("migrated anonymous data to user partition", "user_id", userID)
	}

	s.mu.Lock()
	s.state = syncState{local: userStore, userID: userID, token: token, enabled: true}
	s.mu.Unlock()
}

// SetAuth switches to the user's partition and enables mirroring. Callers
// are expected to follow with an explicit SyncFromCloud pass, since the
// cloud is the source of truth right after sign-in.
func (s *SyncService) SetAuth(userID, token string) {
	s.activateUser(userID, token)
}

// ClearAuth switches back to the anonymous partition and disables
// mirroring. The user's local data stays on disk.
func (s *SyncService) ClearAuth() {
	s.mu.Lock()
	s.state = syncState{local: s.stores.Anonymous()}
	s.mu.Unlock()
}

// UpdateToken replaces the stored token after a refresh. The active
// partition is unchanged.
func (s *SyncService) UpdateToken(token string) {
	s.mu.Lock()
	if s.state.userID != "" {
		s.state.token = token
	}
	s.mu.Unlock()
}

// IsAuthenticated reports whether a user partition is active.
func (s *SyncService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.userID != ""
}

// CurrentUserID returns the active user id, empty when anonymous.
func (s *SyncService) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.userID
}

// Close waits for in-flight background mirror tasks to drain.
func (s *SyncService) Close() {
	s.mirrors.Wait()
}

// localStore snapshots the active partition under the read lock.
func (s *SyncService) localStore() *localfs.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.local
}

// mirrorCtx snapshots the mirroring credentials, or nil when sync is off.
func (s *SyncService) mirrorCtx() *mirrorContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.enabled || s.state.userID == "" || s.state.token == "" {
		return nil
	}
	return &mirrorContext{userID: s.state.userID, token: s.state.token}
}

// spawnMirror runs fn as a tracked background task. Failures are logged
// and swallowed; local state already committed and is authoritative.
func (s *SyncService) spawnMirror(op string, fn func(ctx context.Context, mc mirrorContext) error) {
	mc := s.mirrorCtx()
	if mc == nil {
		return
	}
	s.mirrors.Add(1)
	go func() {
		defer s.mirrors.Done()
		if err := fn(context.Background(), *mc); err != nil {
			slog.Warn("background mirror failed", "op", op, "error", err)
		}
	}()
}

// mirrorMeta pushes the index's folder state to the remote store.
func (s *SyncService) mirrorMeta(ix prompt.Index) {
	meta := firestore.UserMeta{Folders: ix.Folders, FolderMeta: ix.FolderMeta}
	s.spawnMirror("save meta", func(ctx context.Context, mc mirrorContext) error {
		return s.remote.SaveMeta(ctx, mc.userID, mc.token, meta)
	})
}

// ---------------------------------------------------------------------------
// datastore.Store implementation
// ---------------------------------------------------------------------------

// GetIndex loads the active partition's index.
func (s *SyncService) GetIndex() (prompt.Index, error) {
	return s.localStore().GetIndex()
}

// SaveIndex persists the index locally, then mirrors the folder state.
func (s *SyncService) SaveIndex(ix prompt.Index) error {
	if err := s.localStore().SaveIndex(ix); err != nil {
		return err
	}
	s.mirrorMeta(ix)
	return nil
}

// GetPrompt reads from the active partition only.
func (s *SyncService) GetPrompt(id string) (prompt.Prompt, error) {
	return s.localStore().GetPrompt(id)
}

// SavePrompt saves locally, then mirrors the full record.
func (s *SyncService) SavePrompt(p prompt.Prompt) (prompt.Metadata, error) {
	meta, err := s.localStore().SavePrompt(p)
	if err != nil {
		return prompt.Metadata{}, err
	}

	full := prompt.Prompt{Metadata: meta, Content: p.Content}
	s.spawnMirror("save prompt", func(ctx context.Context, mc mirrorContext) error {
		return s.remote.SavePrompt(ctx, mc.userID, mc.token, full)
	})
	return meta, nil
}

// DeletePrompt deletes locally, then mirrors the deletion.
func (s *SyncService) DeletePrompt(id string) error {
	if err := s.localStore().DeletePrompt(id); err != nil {
		return err
	}
	s.spawnMirror("delete prompt", func(ctx context.Context, mc mirrorContext) error {
		return s.remote.DeletePrompt(ctx, mc.userID, mc.token, id)
	})
	return nil
}

// AddFolder adds locally, then mirrors the folder state.
func (s *SyncService) AddFolder(name string) error {
	local := s.localStore()
	if err := local.AddFolder(name); err != nil {
		return err
	}
	if ix, err := local.GetIndex(); err == nil {
		s.mirrorMeta(ix)
	}
	return nil
}

// RenameFolder renames locally, then mirrors the folder state.
func (s *SyncService) RenameFolder(oldName, newName string) error {
	local := s.localStore()
	if err := local.RenameFolder(oldName, newName); err != nil {
		return err
	}
	if ix, err := local.GetIndex(); err == nil {
		s.mirrorMeta(ix)
	}
	return nil
}

// DeleteFolder deletes locally, then mirrors the folder state.
func (s *SyncService) DeleteFolder(name string) error {
	local := s.localStore()
	if err := local.DeleteFolder(name); err != nil {
		return err
	}
	if ix, err := local.GetIndex(); err == nil {
		s.mirrorMeta(ix)
	}
	return nil
}

// RecordUsage records locally, then mirrors the updated record.
func (s *SyncService) RecordUsage(id string) error {
	local := s.localStore()
	if err := local.RecordUsage(id); err != nil {
		return err
	}
	if p, err := local.GetPrompt(id); err == nil {
		s.spawnMirror("record usage", func(ctx context.Context, mc mirrorContext) error {
			return s.remote.SavePrompt(ctx, mc.userID, mc.token, p)
		})
	}
	return nil
}

// Search runs against the active partition only.
func (s *SyncService) Search(query string) ([]prompt.SearchResult, error) {
	return s.localStore().Search(query)
}

// GetFolders reads from the active partition only.
func (s *SyncService) GetFolders() ([]string, error) {
	return s.localStore().GetFolders()
}

// ---------------------------------------------------------------------------
// Explicit bulk sync
// ---------------------------------------------------------------------------

// SyncToCloud uploads the full local state. It refuses to upload an empty
// library: a bulk upload of zero prompts would wipe the remote copy.
func (s *SyncService) SyncToCloud(ctx context.Context) error {
	s.mu.RLock()
	local := s.state.local
	userID := s.state.userID
	token := s.state.token
	s.mu.RUnlock()

	if userID == "" || token == "" {
		return domain.ErrUnauthenticated
	}

	ix, err := local.GetIndex()
	if err != nil {
		return err
	}
	if len(ix.Prompts) == 0 {
		slog.Warn("refusing to upload empty local library")
		return fmt.Errorf("%w: cannot sync an empty local library to the cloud", domain.ErrValidation)
	}

	prompts := make([]prompt.Prompt, 0, len(ix.Prompts))
	for _, meta := range ix.Prompts {
		p, err := local.GetPrompt(meta.ID)
		if err != nil {
			return err
		}
		prompts = append(prompts, p)
	}

	return s.remote.UploadAll(ctx, userID, token, ix, prompts)
}

// SyncFromCloud downloads the full remote state and overwrites the local
// partition. When the remote returns zero prompts but local has some, the
// write is skipped and the call succeeds: an empty download is far more
// likely a transient or auth failure than an intentionally empty cloud.
func (s *SyncService) SyncFromCloud(ctx context.Context) error {
	s.mu.RLock()
	local := s.state.local
	userID := s.state.userID
	token := s.state.token
	s.mu.RUnlock()

	if userID == "" || token == "" {
		return domain.ErrUnauthenticated
	}

	localCount := 0
	if ix, err := local.GetIndex(); err == nil {
		localCount = len(ix.Prompts)
	}

	ix, prompts, err := s.remote.DownloadAll(ctx, userID, token)
	if err != nil {
		return err
	}

	if len(ix.Prompts) == 0 && localCount > 0 {
		slog.Warn("cloud returned no prompts, keeping local data",
			"local_count", localCount)
		return nil
	}

	if err := local.SaveIndex(ix); err != nil {
		return err
	}
	for _, p := range prompts {
		if err := local.WriteContent(p.Folder, p.Filename, p.Content); err != nil {
			return err
		}
	}
	return nil
}
