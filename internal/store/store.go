package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/AlexZinkM/multiwallet/internal/crypto"
	"github.com/AlexZinkM/multiwallet/internal/model"

	"github.com/golang/glog"
	"github.com/google/uuid"
)

// MaxWallets is the per-user collection cap.
const MaxWallets = 5

// Store is the encrypted multi-wallet database. It is the sole writer of the
// backing file: every operation takes the mutex, reads the whole database,
// applies one change and writes a complete snapshot back. That serializes
// file writes and gives read-your-writes ordering per user.
type Store struct {
	mu     sync.Mutex
	path   string
	secret []byte
}

// New creates a Store over the given database file. The file does not have
// to exist yet. secret is the process-wide encryption secret and must be
// non-empty.
func New(path string, secret []byte) (*Store, error) {
	if path == "" {
		return nil, errors.New("wallet database path is empty")
	}
	if len(secret) == 0 {
		return nil, errors.New("wallet secret is empty")
	}
	s := &Store{path: path, secret: make([]byte, len(secret))}
	copy(s.secret, secret)
	return s, nil
}

// load reads the whole database. A missing or empty file is an empty
// database; a file that fails to parse is a real error, since overwriting it
// would destroy wallets.
func (s *Store) load() (model.Database, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Database{}, nil
		}
		return nil, fmt.Errorf("failed to read wallet database: %w", err)
	}
	if len(data) == 0 {
		return model.Database{}, nil
	}

	var db model.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to parse wallet database: %w", err)
	}
	return db, nil
}

// save writes a complete snapshot atomically: the JSON goes to a temp file
// first and replaces the database via rename, so a crash mid-write never
// leaves a half-written file behind.
func (s *Store) save(db model.Database) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet database: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write wallet database: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace wallet database: %w", err)
	}
	return nil
}

// uniqueName returns name, or name with the smallest " (n)" suffix that does
// not collide with another wallet in the collection. excludeID skips the
// record being renamed from the collision check.
func uniqueName(wallets []model.WalletRecord, name, excludeID string) string {
	taken := func(candidate string) bool {
		for _, w := range wallets {
			if w.ID != excludeID && w.Name == candidate {
				return true
			}
		}
		return false
	}

	if !taken(name) {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !taken(candidate) {
			return candidate
		}
	}
}

// AddWallet encrypts the private key and appends a new wallet record to the
// user's collection. When name is empty the wallet is named "Wallet #<n>".
// The new wallet becomes active when setActive is true or the collection had
// no active wallet. Fails with ErrWalletLimit at capacity and ErrInvalidInput
// on missing fields. The returned summary never contains the private key.
func (s *Store) AddWallet(userID string, material model.KeyMaterial, name string, setActive bool) (*model.WalletSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	if material.PublicKey == "" || material.PrivateKey == "" {
		return nil, fmt.Errorf("%w: missing key material", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return nil, err
	}

	user := db[userID]
	if user == nil {
		user = &model.UserWallets{Wallets: []model.WalletRecord{}}
		db[userID] = user
	}

	if len(user.Wallets) >= MaxWallets {
		return nil, ErrWalletLimit
	}

	if name == "" {
		name = fmt.Sprintf("Wallet #%d", len(user.Wallets)+1)
	}
	name = uniqueName(user.Wallets, name, "")

	ciphertext, err := crypto.Encrypt(material.PrivateKey, s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key: %w", err)
	}

	record := model.WalletRecord{
		ID:         uuid.NewString(),
		Name:       name,
		PublicKey:  material.PublicKey,
		PrivateKey: ciphertext,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	user.Wallets = append(user.Wallets, record)

	if setActive || user.ActiveWalletID == nil {
		id := record.ID
		user.ActiveWalletID = &id
	}

	if err := s.save(db); err != nil {
		return nil, err
	}

	glog.Infof("wallet %q saved for user %s", name, userID)

	return &model.WalletSummary{
		ID:        record.ID,
		Name:      record.Name,
		PublicKey: record.PublicKey,
		IsActive:  *user.ActiveWalletID == record.ID,
		CreatedAt: record.CreatedAt,
	}, nil
}

// GetActiveWallet returns the user's active wallet with its private key
// decrypted, or nil when the user has no wallets. A missing or dangling
// active pointer self-heals to the first wallet in insertion order and the
// heal is persisted, so a non-empty collection always has an active wallet.
// Decryption failure returns nil and is logged; it never surfaces garbage
// key material.
func (s *Store) GetActiveWallet(userID string) (*model.WalletDetail, error) {
	if userID == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return nil, err
	}

	user := db[userID]
	if user == nil || len(user.Wallets) == 0 {
		return nil, nil
	}

	active := findWallet(user.Wallets, user.ActiveWalletID)
	if active == nil {
		// Heal the pointer: first wallet in insertion order wins.
		active = &user.Wallets[0]
		id := active.ID
		user.ActiveWalletID = &id
		if err := s.save(db); err != nil {
			return nil, err
		}
		glog.Warningf("active wallet pointer for user %s was unresolvable, reset to wallet %s", userID, id)
	}

	return s.decryptDetail("GetActiveWallet", userID, active)
}

// GetWalletDetail returns one wallet by id with its private key decrypted,
// or nil when the user or wallet is unknown.
func (s *Store) GetWalletDetail(userID, walletID string) (*model.WalletDetail, error) {
	if userID == "" || walletID == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return nil, err
	}

	user := db[userID]
	if user == nil {
		return nil, nil
	}

	record := findWallet(user.Wallets, &walletID)
	if record == nil {
		return nil, nil
	}

	return s.decryptDetail("GetWalletDetail", userID, record)
}

// decryptDetail decrypts one record into a WalletDetail. Caller holds the
// mutex.
func (s *Store) decryptDetail(op, userID string, record *model.WalletRecord) (*model.WalletDetail, error) {
	plaintext, err := crypto.Decrypt(record.PrivateKey, s.secret)
	if err != nil {
		glog.Errorf("%s: failed to decrypt private key for wallet %s (user %s): %v", op, record.ID, userID, err)
		return nil, nil
	}

	return &model.WalletDetail{
		ID:         record.ID,
		Name:       record.Name,
		PublicKey:  record.PublicKey,
		PrivateKey: plaintext,
		CreatedAt:  record.CreatedAt,
	}, nil
}

// ListWallets returns all of the user's wallets in insertion order, without
// private keys. A user with no wallets gets an empty slice, not nil.
func (s *Store) ListWallets(userID string) ([]model.WalletSummary, error) {
	summaries := []model.WalletSummary{}
	if userID == "" {
		return summaries, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return nil, err
	}

	user := db[userID]
	if user == nil {
		return summaries, nil
	}

	for _, w := range user.Wallets {
		summaries = append(summaries, model.WalletSummary{
			ID:        w.ID,
			Name:      w.Name,
			PublicKey: w.PublicKey,
			IsActive:  user.ActiveWalletID != nil && *user.ActiveWalletID == w.ID,
			CreatedAt: w.CreatedAt,
		})
	}
	return summaries, nil
}

// SetActiveWallet marks the given wallet as the user's active one. Returns
// false when the user or wallet is unknown; an error only for persistence
// failures.
func (s *Store) SetActiveWallet(userID, walletID string) (bool, error) {
	if userID == "" || walletID == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return false, err
	}

	user := db[userID]
	if user == nil || findWallet(user.Wallets, &walletID) == nil {
		return false, nil
	}

	user.ActiveWalletID = &walletID
	if err := s.save(db); err != nil {
		return false, err
	}

	glog.Infof("wallet %s set as active for user %s", walletID, userID)
	return true, nil
}

// RemoveWallet deletes the given wallet, preserving the order of the
// remaining records. When the removed wallet was active, the first remaining
// wallet becomes active, or the pointer is cleared if none remain. The
// encrypted private key is discarded with the record; there is no recovery.
func (s *Store) RemoveWallet(userID, walletID string) (bool, error) {
	if userID == "" || walletID == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return false, err
	}

	user := db[userID]
	if user == nil {
		return false, nil
	}

	index := -1
	for i := range user.Wallets {
		if user.Wallets[i].ID == walletID {
			index = i
			break
		}
	}
	if index == -1 {
		return false, nil
	}

	user.Wallets = append(user.Wallets[:index], user.Wallets[index+1:]...)

	if user.ActiveWalletID != nil && *user.ActiveWalletID == walletID {
		if len(user.Wallets) > 0 {
			id := user.Wallets[0].ID
			user.ActiveWalletID = &id
		} else {
			user.ActiveWalletID = nil
		}
	}

	if err := s.save(db); err != nil {
		return false, err
	}

	glog.Infof("wallet %s removed for user %s", walletID, userID)
	return true, nil
}

// RenameWallet changes a wallet's name, applying the same uniqueness suffix
// policy as AddWallet but excluding the renamed record from the collision
// check. Returns false when the user or wallet is unknown or the new name is
// empty.
func (s *Store) RenameWallet(userID, walletID, newName string) (bool, error) {
	if userID == "" || walletID == "" || newName == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return false, err
	}

	user := db[userID]
	if user == nil {
		return false, nil
	}

	record := findWallet(user.Wallets, &walletID)
	if record == nil {
		return false, nil
	}

	finalName := uniqueName(user.Wallets, newName, walletID)
	record.Name = finalName

	if err := s.save(db); err != nil {
		return false, err
	}

	glog.Infof("wallet %s renamed to %q for user %s", walletID, finalName, userID)
	return true, nil
}

// RotateSecret re-encrypts every stored private key under newSecret and
// persists one atomic snapshot. Fails without writing anything if any record
// does not decrypt under the current secret, so a half-rotated database can
// never be produced. On success the store switches to the new secret.
func (s *Store) RotateSecret(newSecret []byte) error {
	if len(newSecret) == 0 {
		return errors.New("new wallet secret is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return err
	}

	rotated := 0
	for userID, user := range db {
		for i := range user.Wallets {
			record := &user.Wallets[i]
			plaintext, err := crypto.Decrypt(record.PrivateKey, s.secret)
			if err != nil {
				return fmt.Errorf("failed to decrypt wallet %s (user %s): %w", record.ID, userID, err)
			}
			token, err := crypto.Encrypt(plaintext, newSecret)
			if err != nil {
				return fmt.Errorf("failed to re-encrypt wallet %s (user %s): %w", record.ID, userID, err)
			}
			record.PrivateKey = token
			rotated++
		}
	}

	if err := s.save(db); err != nil {
		return err
	}

	s.secret = make([]byte, len(newSecret))
	copy(s.secret, newSecret)

	glog.Infof("re-encrypted %d wallet(s) under new secret", rotated)
	return nil
}

// findWallet returns a pointer into wallets for the record with the given
// id, or nil when id is nil or unresolvable.
func findWallet(wallets []model.WalletRecord, id *string) *model.WalletRecord {
	if id == nil {
		return nil
	}
	for i := range wallets {
		if wallets[i].ID == *id {
			return &wallets[i]
		}
	}
	return nil
}
