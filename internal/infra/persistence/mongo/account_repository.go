package mongo

import (
	"context"
	"strings"
	"time"

	"authsvc/internal/domain/entity"
	"authsvc/internal/domain/lifecycle"
	"authsvc/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	accountsCollection = "accounts"

	IndexUsername = "uniq_username"
	IndexEmail    = "uniq_email"
)

type accountDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type accountRepository struct {
	coll *mongo.Collection
}

// NewAccountRepository returns the MongoDB backed AccountRepository and
// creates its unique indexes when the application starts.
func NewAccountRepository(lc fx.Lifecycle, db *mongo.Database) repository.AccountRepository {
	repo := &accountRepository{coll: db.Collection(accountsCollection)}

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return repo.ensureIndexes(ctx)
		},
	})

	return repo
}

// ensureIndexes is idempotent; existing indexes with the same keys and options are kept.
func (repo *accountRepository) ensureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName(IndexUsername).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(IndexEmail).SetUnique(true),
		},
	})

	return errors.Wrap(err, "failed to create account indexes")
}

func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var doc accountDocument

	err := repo.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.NewStoreUnavailableError("find account by username", err)
	}

	return doc.toDomain()
}

func (repo *accountRepository) Insert(ctx context.Context, account *entity.Account) error {
	id, err := uuid.NewV7()
	if err != nil {
		return errors.WithStack(err)
	}

	doc := accountDocument{
		ID:           id.String(),
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		// BSON dates hold milliseconds.
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		if field, ok := duplicateKeyField(err); ok {
			return errors.WithStack(&repository.DuplicateKeyError{Field: field})
		}

		return repository.NewStoreUnavailableError("insert account", err)
	}

	account.ID = id
	account.CreatedAt = doc.CreatedAt

	return nil
}

// duplicateKeyField attributes an E11000 error to a field by the index named in the server message.
// Only the part before "dup key:" is inspected; the rest echoes the stored values.
func duplicateKeyField(err error) (string, bool) {
	if !mongo.IsDuplicateKeyError(err) {
		return "", false
	}
	index, _, _ := strings.Cut(err.Error(), " dup key:")
	if strings.HasSuffix(index, "index: "+IndexEmail) {
		return repository.FieldEmail, true
	}

	return repository.FieldUsername, true
}

func (doc *accountDocument) toDomain() (*entity.Account, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "stored account has invalid id %q", doc.ID)
	}

	return &entity.Account{
		ID:           id,
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt.UTC(),
	}, nil
}
