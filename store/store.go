// Package store owns persistence for marketplace records. Stores are explicit
// injected dependencies with an Open/Close lifecycle; nothing here reaches for
// process-wide database state.
package store

import (
	"gorm.io/gorm"

	"github.com/devaforgestudios-afk/takneek/storage"
)

// Store bundles the per-record stores over one shared connection pool.
type Store struct {
	db *gorm.DB

	Artworks  *ArtworkStore
	Users     *UserStore
	Community *CommunityStore
	Contacts  *ContactStore
	Staged    *StagedUploadStore
}

// Open wires the record stores over an initialized gorm DB and a media store.
func Open(db *gorm.DB, files storage.Store) *Store {
	return &Store{
		db:        db,
		Artworks:  &ArtworkStore{db: db, files: files},
		Users:     &UserStore{db: db},
		Community: &CommunityStore{db: db},
		Contacts:  &ContactStore{db: db},
		Staged:    &StagedUploadStore{db: db, files: files},
	}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
