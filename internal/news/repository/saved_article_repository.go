package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"newspulse-backend/internal/news/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type savedArticleDocument struct {
	domain.Article
	SavedAt time.Time `firestore:"savedAt"`
}

type firestoreSavedArticleRepository struct {
	client *firestore.Client
}

func NewFirestoreSavedArticleRepository(client *firestore.Client) SavedArticleRepository {
	return &firestoreSavedArticleRepository{client: client}
}

func (r *firestoreSavedArticleRepository) collection(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("savedArticles")
}

func (r *firestoreSavedArticleRepository) List(ctx context.Context, userID string) ([]*domain.SavedArticle, error) {
	iter := r.collection(userID).OrderBy("savedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	saved := []*domain.SavedArticle{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list saved articles: %w", err)
		}

		var doc savedArticleDocument
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("[SavedArticles] Skipping undecodable article %s: %v", snap.Ref.ID, err)
			continue
		}
		saved = append(saved, &domain.SavedArticle{ID: snap.Ref.ID, Article: doc.Article, SavedAt: doc.SavedAt})
	}
	return saved, nil
}

func (r *firestoreSavedArticleRepository) Save(ctx context.Context, userID string, article domain.Article) (*domain.SavedArticle, error) {
	id := domain.SavedArticleID(article.URL)
	doc := savedArticleDocument{Article: article, SavedAt: time.Now().UTC()}

	if _, err := r.collection(userID).Doc(id).Set(ctx, doc); err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}
	return &domain.SavedArticle{ID: id, Article: article, SavedAt: doc.SavedAt}, nil
}

func (r *firestoreSavedArticleRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.collection(userID).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete saved article: %w", err)
	}
	return nil
}
