package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

// searchTerms tokenizes the title so the store can answer search queries by
// array membership. The store owns matching; no ranking happens here.
func searchTerms(title string) []string {
	fields := strings.Fields(strings.ToLower(title))
	seen := make(map[string]bool, len(fields))
	var terms []string
	for _, f := range fields {
		f = strings.Trim(f, ".,!?()[]\"'")
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return terms
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		doc := r.client.Collection("products").NewDoc()
		product.ID = doc.ID
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	product.SearchTerms = searchTerms(product.Title)

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection("products").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	return &product, nil
}

func (r *firestoreProductRepository) applyFilter(query firestore.Query, filter repository.ProductFilter) firestore.Query {
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.CampusID != "" {
		query = query.Where("campusId", "==", filter.CampusID)
	}
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}
	return query
}

func (r *firestoreProductRepository) applySort(query firestore.Query, sort string) firestore.Query {
	switch sort {
	case "price-low":
		return query.OrderBy("price", firestore.Asc)
	case "price-high":
		return query.OrderBy("price", firestore.Desc)
	case "featured":
		return query.OrderBy("featured", firestore.Desc).OrderBy("createdAt", firestore.Desc)
	default: // "newest"
		return query.OrderBy("createdAt", firestore.Desc)
	}
}

func (r *firestoreProductRepository) List(ctx context.Context, filter repository.ProductFilter, sort string, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.applyFilter(r.client.Collection("products").Query, filter)
	query = r.applySort(query, sort)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count products", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var products []*entity.Product

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate products", err)
		}
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, 0, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, total, nil
}

func (r *firestoreProductRepository) Search(ctx context.Context, query string, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	terms := searchTerms(query)
	if len(terms) == 0 {
		return []*entity.Product{}, 0, nil
	}

	// Match on the first term via the store's array membership operator, then
	// narrow by the remaining terms client-side. Matching is delegated to the
	// store; there is no ranking.
	fsQuery := r.applyFilter(r.client.Collection("products").Query, filter).
		Where("searchTerms", "array-contains", terms[0])

	docs, err := fsQuery.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to search products", err)
	}

	var matched []*entity.Product
	for _, doc := range docs {
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			continue
		}

		ok := true
		title := strings.ToLower(product.Title)
		for _, term := range terms[1:] {
			if !strings.Contains(title, term) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, &product)
		}
	}

	total := int64(len(matched))

	start := offset
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	if start >= len(matched) {
		return []*entity.Product{}, total, nil
	}

	return matched[start:end], total, nil
}

func (r *firestoreProductRepository) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection("products").Query.Where("sellerId", "==", sellerID)
	if status != "" {
		query = query.Where("status", "==", status)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count seller products", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var products []*entity.Product

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate seller products", err)
		}

		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, 0, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, total, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()
	product.SearchTerms = searchTerms(product.Title)

	_, err := r.client.Collection("products").Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	_, err := r.client.Collection("products").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update product status", err)
	}

	return nil
}

func (r *firestoreProductRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("products").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment product views", err)
	}

	return nil
}
