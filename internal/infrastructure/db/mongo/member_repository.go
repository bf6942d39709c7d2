package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/memberhub/member-console/internal/core/domain"
	"github.com/memberhub/member-console/internal/core/ports"
)

const memberCollection = "members"

type MongoMemberRepository struct {
	coll *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MongoMemberRepository {
	return &MongoMemberRepository{coll: db.Collection(memberCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *MongoMemberRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoMember struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PhoneNumber  string             `bson:"phone_number"`
	Roles        []string           `bson:"roles"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoMemberRepository) Create(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	doc := mongoMember{
		Name:         member.Name,
		Email:        member.Email,
		PhoneNumber:  member.PhoneNumber,
		Roles:        member.Roles,
		PasswordHash: member.PasswordHash,
		CreatedAt:    member.CreatedAt.Unix(),
		UpdatedAt:    member.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMemberExists
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert member: unexpected inserted id type %T", res.InsertedID)
	}
	return r.FindByID(ctx, oid.Hex())
}

func (r *MongoMemberRepository) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoMemberRepository) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoMemberRepository) findOne(ctx context.Context, filter bson.M) (*domain.Member, error) {
	var mm mongoMember
	if err := r.coll.FindOne(ctx, filter).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return toDomain(&mm), nil
}

func (r *MongoMemberRepository) List(ctx context.Context) ([]domain.Member, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	for cursor.Next(ctx) {
		var mm mongoMember
		if err := cursor.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode member: %w", err)
		}
		members = append(members, *toDomain(&mm))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (r *MongoMemberRepository) Update(ctx context.Context, id string, patch ports.MemberPatch) (*domain.Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.PhoneNumber != nil {
		set["phone_number"] = *patch.PhoneNumber
	}
	if patch.PasswordHash != nil {
		set["password_hash"] = *patch.PasswordHash
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMemberExists
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMemberNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoMemberRepository) SetRoles(ctx context.Context, id string, roles []string) (*domain.Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"roles":      roles,
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return nil, fmt.Errorf("set roles: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMemberNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoMemberRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMemberNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func toDomain(mm *mongoMember) *domain.Member {
	return &domain.Member{
		ID:           mm.ID.Hex(),
		Name:         mm.Name,
		Email:        mm.Email,
		PhoneNumber:  mm.PhoneNumber,
		Roles:        mm.Roles,
		PasswordHash: mm.PasswordHash,
		CreatedAt:    unixToTime(mm.CreatedAt),
		UpdatedAt:    unixToTime(mm.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
