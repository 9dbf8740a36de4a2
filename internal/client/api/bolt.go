package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkovx/userdesk/internal/common"
	"github.com/avolkovx/userdesk/internal/model"
	"github.com/avolkovx/userdesk/internal/notify"
)

var (
	userBucket    = []byte("users")
	sessionBucket = []byte("sessions")
)

// Seeded administrator account for the local document store.
const (
	defaultAdminEmail    = "admin@local"
	defaultAdminPassword = "changeme123"
)

// document is the stored form of a user record. Seq fixes creation order;
// listing is newest-first, matching the REST backend.
type document struct {
	model.User
	Seq          uint64 `json:"seq"`
	PasswordHash []byte `json:"passwordHash,omitempty"`
}

// BoltBackend implements Backend on a local bbolt file: one bucket of JSON
// user documents plus a bucket of issued tokens. It is the document-database
// substitute behind the same interface as the REST backend, and like the
// gateway it emits exactly one notification per failed call.
type BoltBackend struct {
	db       *bolt.DB
	notifier notify.Notifier
}

// OpenBolt opens (creating if needed) the document store at path and makes
// sure the buckets and the seeded admin account exist.
func OpenBolt(path string, notifier notify.Notifier) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		users, err := tx.CreateBucketIfNotExists(userBucket)
		if err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(sessionBucket); err != nil {
			return err
		}

		if findByEmail(users, defaultAdminEmail) != nil {
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		seq, err := users.NextSequence()
		if err != nil {
			return err
		}
		admin := document{
			User: model.User{
				ID:        uuid.NewString(),
				FirstName: "Admin",
				LastName:  "User",
				Email:     defaultAdminEmail,
			},
			Seq:          seq,
			PasswordHash: hash,
		}
		return putDoc(users, admin)
	})
	if err != nil {
		return nil, fmt.Errorf("init document store: %w", err)
	}

	return &BoltBackend{db: db, notifier: notifier}, nil
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func (b *BoltBackend) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	var result *model.LoginResult
	err := b.db.Update(func(tx *bolt.Tx) error {
		doc := findByEmail(tx.Bucket(userBucket), creds.Email)
		if doc == nil {
			return common.ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword(doc.PasswordHash, []byte(creds.Password)) != nil {
			return common.ErrInvalidCredentials
		}

		token := uuid.NewString()
		if err := tx.Bucket(sessionBucket).Put([]byte(token), []byte(doc.Email)); err != nil {
			return err
		}
		result = &model.LoginResult{
			ID:        doc.ID,
			Email:     doc.Email,
			FirstName: doc.FirstName,
			LastName:  doc.LastName,
			Token:     token,
		}
		return nil
	})
	if err != nil {
		return nil, b.fail(err)
	}
	return result, nil
}

func (b *BoltBackend) ListUsers(ctx context.Context, token string, page, limit int) (*model.UserPage, error) {
	var pageResult *model.UserPage
	err := b.db.View(func(tx *bolt.Tx) error {
		if err := authorize(tx, token); err != nil {
			return err
		}

		docs := allDocs(tx.Bucket(userBucket))
		sort.Slice(docs, func(i, j int) bool { return docs[i].Seq > docs[j].Seq })

		total := len(docs)
		totalPages := model.PageCount(total, limit)
		if page < 1 {
			page = 1
		}
		if page > totalPages {
			page = totalPages
		}

		start := (page - 1) * limit
		end := start + limit
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}

		users := make([]model.User, 0, end-start)
		for _, d := range docs[start:end] {
			users = append(users, d.User)
		}
		pageResult = &model.UserPage{
			Users: users,
			Pagination: model.PaginationInfo{
				CurrentPage: page,
				TotalPages:  totalPages,
				TotalUsers:  total,
				PageSize:    limit,
			},
		}
		return nil
	})
	if err != nil {
		return nil, b.fail(err)
	}
	return pageResult, nil
}

func (b *BoltBackend) CreateUser(ctx context.Context, token string, form model.UserForm) (*model.User, error) {
	var created *model.User
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := authorize(tx, token); err != nil {
			return err
		}

		users := tx.Bucket(userBucket)
		if findByEmail(users, form.Email) != nil {
			return common.ErrAlreadyExists
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		seq, err := users.NextSequence()
		if err != nil {
			return err
		}

		doc := document{
			User: model.User{
				ID:         uuid.NewString(),
				FirstName:  form.FirstName,
				MiddleName: form.MiddleName,
				LastName:   form.LastName,
				Email:      form.Email,
			},
			Seq:          seq,
			PasswordHash: hash,
		}
		if err := putDoc(users, doc); err != nil {
			return err
		}
		created = &doc.User
		return nil
	})
	if err != nil {
		return nil, b.fail(err)
	}
	return created, nil
}

func (b *BoltBackend) UpdateUser(ctx context.Context, token string, id string, form model.UserForm) (*model.User, error) {
	var updated *model.User
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := authorize(tx, token); err != nil {
			return err
		}

		users := tx.Bucket(userBucket)
		data := users.Get([]byte(id))
		if data == nil {
			return common.ErrNotFound
		}
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}

		if other := findByEmail(users, form.Email); other != nil && other.ID != id {
			return common.ErrAlreadyExists
		}

		doc.FirstName = form.FirstName
		doc.MiddleName = form.MiddleName
		doc.LastName = form.LastName
		doc.Email = form.Email
		if form.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			doc.PasswordHash = hash
		}

		if err := putDoc(users, doc); err != nil {
			return err
		}
		updated = &doc.User
		return nil
	})
	if err != nil {
		return nil, b.fail(err)
	}
	return updated, nil
}

func (b *BoltBackend) DeleteUser(ctx context.Context, token string, id string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := authorize(tx, token); err != nil {
			return err
		}

		users := tx.Bucket(userBucket)
		if users.Get([]byte(id)) == nil {
			return common.ErrNotFound
		}
		return users.Delete([]byte(id))
	})
	if err != nil {
		return b.fail(err)
	}
	return nil
}

// fail notifies the user about the failure and returns the error with a
// user-facing message.
func (b *BoltBackend) fail(err error) error {
	b.notifier.Error(userMessage(err))
	return err
}

func userMessage(err error) string {
	for _, known := range []error{
		common.ErrInvalidCredentials,
		common.ErrNotFound,
		common.ErrAlreadyExists,
		common.ErrUnauthorized,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "Something went wrong"
}

func authorize(tx *bolt.Tx, token string) error {
	if token == "" || tx.Bucket(sessionBucket).Get([]byte(token)) == nil {
		return common.ErrUnauthorized
	}
	return nil
}

func putDoc(b *bolt.Bucket, doc document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return b.Put([]byte(doc.ID), data)
}

func findByEmail(b *bolt.Bucket, email string) *document {
	var found *document
	c := b.Cursor()
	for id, data := c.First(); id != nil; id, data = c.Next() {
		var doc document
		if json.Unmarshal(data, &doc) != nil {
			continue
		}
		if doc.Email == email {
			found = &doc
			break
		}
	}
	return found
}

func allDocs(b *bolt.Bucket) []document {
	var docs []document
	c := b.Cursor()
	for id, data := c.First(); id != nil; id, data = c.Next() {
		var doc document
		if json.Unmarshal(data, &doc) == nil {
			docs = append(docs, doc)
		}
	}
	return docs
}
