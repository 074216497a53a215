// Package store persists onboarding state in MongoDB. Answers merge by
// supplier and question so resubmissions overwrite in place, and enrichment
// fields written by other services survive untouched.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/galactly/onboarding-service/internal/model"
	"github.com/galactly/onboarding-service/pkg/config"
	"github.com/galactly/onboarding-service/prometheus"
)

// recommendationTTL is how long a cached recommendation stays servable.
const recommendationTTL = 30 * 24 * time.Hour

// Store is the MongoDB-backed document store for onboarding state.
type Store struct {
	suppliers       *mongo.Collection
	answers         *mongo.Collection
	interactions    *mongo.Collection
	recommendations *mongo.Collection
}

// New wires a Store onto the configured collections.
func New(db *mongo.Database, cfg config.MongoConfig) *Store {
	return &Store{
		suppliers:       db.Collection(cfg.SupplierCollection),
		answers:         db.Collection(cfg.AnswerCollection),
		interactions:    db.Collection(cfg.InteractionCollection),
		recommendations: db.Collection(cfg.RecommendationCollection),
	}
}

// SaveAnswer upserts one answer keyed by supplier and question. Only the
// submission fields are set, so confidence scores and external data sources
// added by enrichment are preserved across resubmissions.
func (s *Store) SaveAnswer(ctx context.Context, supplierID string, answer model.Answer) error {
	defer prometheus.TrackStoreOperation("save_answer")(time.Now())

	set := bson.M{
		"supplierId":  supplierID,
		"questionId":  answer.QuestionID,
		"answer":      answer.Answer,
		"answerType":  string(answer.AnswerType),
		"submittedAt": answer.SubmittedAt,
		"status":      string(answer.Status),
		"flags":       bson.A{},
	}
	if answer.AIResponse != "" {
		set["aiResponse"] = answer.AIResponse
		set["responseGeneratedAt"] = answer.ResponseGeneratedAt
	}

	filter := bson.M{"supplierId": supplierID, "questionId": answer.QuestionID}
	opts := options.Update().SetUpsert(true)
	if _, err := s.answers.UpdateOne(ctx, filter, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("save answer %s/%s: %w", supplierID, answer.QuestionID, err)
	}
	return nil
}

// AllAnswers loads every stored answer for a supplier keyed by question id.
func (s *Store) AllAnswers(ctx context.Context, supplierID string) (map[string]model.Answer, error) {
	defer prometheus.TrackStoreOperation("all_answers")(time.Now())

	cursor, err := s.answers.Find(ctx, bson.M{"supplierId": supplierID})
	if err != nil {
		return nil, fmt.Errorf("load answers %s: %w", supplierID, err)
	}
	defer cursor.Close(ctx)

	answers := make(map[string]model.Answer)
	for cursor.Next(ctx) {
		var doc answerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode answer %s: %w", supplierID, err)
		}
		answers[doc.QuestionID] = answerFromDocument(doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers %s: %w", supplierID, err)
	}
	return answers, nil
}

// Answer loads one stored answer by supplier and question, or nil when the
// question has not been answered.
func (s *Store) Answer(ctx context.Context, supplierID, questionID string) (*model.Answer, error) {
	defer prometheus.TrackStoreOperation("get_answer")(time.Now())

	var doc answerDocument
	err := s.answers.FindOne(ctx, bson.M{"supplierId": supplierID, "questionId": questionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load answer %s/%s: %w", supplierID, questionID, err)
	}
	answer := answerFromDocument(doc)
	return &answer, nil
}

// Supplier loads a supplier record, or nil when none exists yet.
func (s *Store) Supplier(ctx context.Context, supplierID string) (*model.SupplierRecord, error) {
	defer prometheus.TrackStoreOperation("get_supplier")(time.Now())

	var doc supplierDocument
	err := s.suppliers.FindOne(ctx, bson.M{"supplierId": supplierID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load supplier %s: %w", supplierID, err)
	}
	return supplierFromDocument(doc), nil
}

// SaveSupplier merge-upserts supplier profile fields. Only the fields set on
// the patch are written; everything else on the record stays as stored.
func (s *Store) SaveSupplier(ctx context.Context, supplierID string, patch model.SupplierPatch) error {
	defer prometheus.TrackStoreOperation("save_supplier")(time.Now())

	now := time.Now().UTC()
	update := bson.M{
		"$set": supplierPatchToSet(patch, now),
		"$setOnInsert": bson.M{
			"supplierId": supplierID,
			"createdAt":  now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.suppliers.UpdateOne(ctx, bson.M{"supplierId": supplierID}, update, opts); err != nil {
		return fmt.Errorf("save supplier %s: %w", supplierID, err)
	}
	return nil
}

// UpdateOnboardingStatus upserts the supplier's onboarding status. Suppliers
// are created implicitly on first write, so a missing record is not an error.
func (s *Store) UpdateOnboardingStatus(ctx context.Context, supplierID string, status model.OnboardingStatus) error {
	defer prometheus.TrackStoreOperation("update_status")(time.Now())

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"onboardingStatus": string(status),
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{
			"supplierId": supplierID,
			"createdAt":  now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.suppliers.UpdateOne(ctx, bson.M{"supplierId": supplierID}, update, opts); err != nil {
		return fmt.Errorf("update onboarding status %s: %w", supplierID, err)
	}
	return nil
}

// LogInteraction appends one sales interaction and returns its generated
// action id.
func (s *Store) LogInteraction(ctx context.Context, supplierID string, interaction model.Interaction) (string, error) {
	defer prometheus.TrackStoreOperation("log_interaction")(time.Now())

	if interaction.Timestamp.IsZero() {
		interaction.Timestamp = time.Now().UTC()
	}
	actionID := fmt.Sprintf("%s_%d_%s",
		interaction.ActionType,
		interaction.Timestamp.UnixMilli(),
		uuid.NewString()[:8])

	doc := interactionToDocument(supplierID, actionID, interaction)
	if _, err := s.interactions.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("log interaction %s: %w", supplierID, err)
	}
	return actionID, nil
}

// CacheRecommendation stores a generated buyer recommendation with an
// expiry, replacing any previous one for the same buyer.
func (s *Store) CacheRecommendation(ctx context.Context, supplierID string, rec model.Recommendation, llmModel string) (*model.CachedRecommendation, error) {
	defer prometheus.TrackStoreOperation("cache_recommendation")(time.Now())

	now := time.Now().UTC()
	doc := recommendationDocument{
		SupplierID:         supplierID,
		BuyerID:            rec.BuyerID,
		WhyMatter:          rec.WhyMatter,
		HowToApproach:      rec.HowToApproach,
		PotentialRisks:     rec.PotentialRisks,
		SuccessProbability: rec.SuccessProbability,
		CallScript:         rec.CallScript,
		EmailTemplate:      rec.EmailTemplate,
		GeneratedAt:        now,
		ExpiresAt:          now.Add(recommendationTTL),
		LLMModel:           llmModel,
	}

	filter := bson.M{"supplierId": supplierID, "buyerId": rec.BuyerID}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.recommendations.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return nil, fmt.Errorf("cache recommendation %s/%s: %w", supplierID, rec.BuyerID, err)
	}
	return recommendationFromDocument(doc), nil
}

// Recommendation loads the cached recommendation for a buyer. Expired or
// missing entries read as nil.
func (s *Store) Recommendation(ctx context.Context, supplierID, buyerID string) (*model.CachedRecommendation, error) {
	defer prometheus.TrackStoreOperation("get_recommendation")(time.Now())

	var doc recommendationDocument
	err := s.recommendations.FindOne(ctx, bson.M{"supplierId": supplierID, "buyerId": buyerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load recommendation %s/%s: %w", supplierID, buyerID, err)
	}
	if doc.expired(time.Now()) {
		return nil, nil
	}
	return recommendationFromDocument(doc), nil
}
