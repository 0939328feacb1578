// Package service orchestrates the catalog gateway: category lookups,
// product pages, search, and the edit/update flow. Read paths degrade to
// empty-but-renderable results; write paths surface every failure.
package service

import (
	"context"
	"errors"
	"fmt"

	"catalog/gateway/internal/cache"
	"catalog/gateway/internal/client"
	"catalog/gateway/internal/domain"
	"catalog/gateway/internal/query"
	"catalog/gateway/internal/schema"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrNoSearchCriteria is a caller error: a search needs at least one filter.
	ErrNoSearchCriteria = errors.New("at least one search criterion is required")
	// ErrNoUpdateData is a caller error: nothing updatable survived filtering.
	ErrNoUpdateData = errors.New("no updatable fields in request")
	// ErrMissingCategory marks a product record without a category reference;
	// an edit view without one is meaningless.
	ErrMissingCategory = errors.New("product has no category reference")
	// ErrUpdateRejected means the upstream answered the write with something
	// other than a success sentinel.
	ErrUpdateRejected = errors.New("upstream rejected product update")
	// ErrVerificationFailed means the write was acknowledged but the re-read
	// does not show the intended status. The upstream has been observed to
	// silently no-op malformed writes, so this is a distinct failure.
	ErrVerificationFailed = errors.New("product update verification failed")
)

const (
	statusKey      = "web_status"
	descriptionKey = "extended_description"
)

// EditField is one dynamic attribute presented on the edit form.
type EditField struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Value   any      `json:"value"`
	Options []string `json:"options,omitempty"`
}

// EditView is everything the presentation layer needs to render a product
// edit form: the record, the normalized status read projection, and the
// category's active fields with their current values.
type EditView struct {
	Product             *domain.Product `json:"product"`
	StatusCode          int             `json:"status_code"`
	StatusLabel         string          `json:"status_label"`
	ExtendedDescription string          `json:"extended_description"`
	Fields              []EditField     `json:"dynamic_fields"`
}

// SearchRequest carries the optional search criteria.
type SearchRequest struct {
	CategoryID  int
	Code        string
	Description string
	Page        int
	PageSize    int
}

func (r SearchRequest) empty() bool {
	return r.CategoryID <= 0 && r.Code == "" && r.Description == ""
}

type Service struct {
	client     client.CatalogClient
	categories *cache.CategoryCache
	fields     *schema.Resolver
}

func NewService(client client.CatalogClient, categories *cache.CategoryCache, fields *schema.Resolver) *Service {
	return &Service{
		client:     client,
		categories: categories,
		fields:     fields,
	}
}

// GetCategories returns the category list from the cache. Never fails; worst
// case is an empty list.
func (s *Service) GetCategories(ctx context.Context) *domain.CategoryList {
	return s.categories.Get(ctx)
}

// GetProducts returns one page of a category's products. Transport failures
// collapse into an empty page for the requested position: pagination UIs must
// always have something renderable.
func (s *Service) GetProducts(ctx context.Context, categoryID, page, pageSize int, sortField, sortDirection string) (*domain.ProductPage, error) {
	params, err := query.Products(categoryID, page, pageSize, sortField, sortDirection)
	if err != nil {
		return nil, err
	}
	size := query.ClampPageSize(pageSize)

	list, err := s.client.GetProducts(ctx, params)
	if err != nil {
		log.Errorf("failed to fetch products for category %d: %v", categoryID, err)
		return domain.EmptyProductPage(page, size), nil
	}

	result := s.assemblePage(list, page, size, categoryID)
	log.Infof("found %d products for category %d, total: %d", len(result.Data), categoryID, result.TotalCount)
	return result, nil
}

// SearchProducts composes cnt/eq filters from whichever criteria were given.
// Supplying none is a caller error; transport failures degrade to an empty
// page like GetProducts.
func (s *Service) SearchProducts(ctx context.Context, req SearchRequest) (*domain.ProductPage, error) {
	if req.empty() {
		return nil, ErrNoSearchCriteria
	}

	params, err := query.Search(req.CategoryID, req.Code, req.Description, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}
	size := query.ClampPageSize(req.PageSize)

	list, err := s.client.GetProducts(ctx, params)
	if err != nil {
		log.Errorf("product search failed: %v", err)
		return domain.EmptyProductPage(req.Page, size), nil
	}

	return s.assemblePage(list, req.Page, size, req.CategoryID), nil
}

// assemblePage computes pagination arithmetic and re-filters by category when
// one was requested. The upstream's own filtering is not fully trusted.
func (s *Service) assemblePage(list *domain.ProductList, page, pageSize, categoryID int) *domain.ProductPage {
	result := &domain.ProductPage{
		TotalCount:   list.TotalCount,
		CurrentPage:  page,
		ItemsPerPage: pageSize,
		TotalPages:   domain.PageCount(list.TotalCount, pageSize),
		Data:         make([]domain.Product, 0, len(list.Data)),
	}
	for _, product := range list.Data {
		if categoryID > 0 && product.Category.ID != categoryID {
			log.Warnf("dropping product %d: category %d does not match requested %d",
				product.ID, product.Category.ID, categoryID)
			continue
		}
		result.Data = append(result.Data, product)
	}
	return result
}

// GetProductForEdit fetches a product and assembles its edit view. Unlike the
// listing paths this surfaces errors: an edit form over a product we could
// not fetch is worse than no form.
func (s *Service) GetProductForEdit(ctx context.Context, productID int) (*EditView, error) {
	product, err := s.client.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d for editing: %w", productID, err)
	}
	if product.Category.ID == 0 {
		return nil, fmt.Errorf("product %d: %w", productID, ErrMissingCategory)
	}

	status := domain.Normalize(product.StatusRaw())
	view := &EditView{
		Product:             product,
		StatusCode:          status.Code(),
		StatusLabel:         status.Label(),
		ExtendedDescription: product.ExtendedDescription(),
		Fields:              []EditField{},
	}

	for _, field := range s.fields.FieldsFor(product.Category.ID) {
		if !domain.IsAttributeField(field.Name) {
			continue
		}
		view.Fields = append(view.Fields, EditField{
			Name:    field.Name,
			Label:   field.Display,
			Type:    field.Type,
			Value:   product.Attribute(field.Name),
			Options: field.Options,
		})
	}

	log.Infof("prepared edit view for product %d with %d dynamic fields", productID, len(view.Fields))
	return view, nil
}

// UpdateProduct applies a partial change set to a product. Changes are
// filtered to the editable attribute set plus the status/description keys;
// status and description are merged into the ECommerceSettings object read
// fresh from upstream immediately before the write, so sibling settings
// changed by someone else are not clobbered. Status writes are verified by
// re-reading the product.
func (s *Service) UpdateProduct(ctx context.Context, productID int, changes map[string]any) error {
	payload := make(map[string]any)
	var statusChange any
	var statusPresent bool
	var descChange any
	var descPresent bool

	for key, value := range changes {
		// Empty values are upstream no-ops; drop them before filtering.
		if value == nil || value == "" {
			continue
		}
		switch {
		case key == statusKey:
			statusPresent, statusChange = true, value
		case key == descriptionKey:
			descPresent, descChange = true, value
		case domain.IsAttributeField(key):
			payload[key] = value
		default:
			log.Debugf("ignoring non-editable field %q in update for product %d", key, productID)
		}
	}

	if len(payload) == 0 && !statusPresent && !descPresent {
		return ErrNoUpdateData
	}

	var intended domain.Status
	if statusPresent || descPresent {
		// Read-modify-write against current state, never a stale snapshot.
		current, err := s.client.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to fetch product %d before update: %w", productID, err)
		}

		settings := make(map[string]any, len(current.ECommerceSettings)+2)
		for k, v := range current.ECommerceSettings {
			settings[k] = v
		}
		if statusPresent {
			enum := domain.WriteEnum(statusChange)
			settings["ECommerceStatus"] = enum
			intended = domain.Normalize(enum)
		}
		if descPresent {
			settings["ExtendedDescription"] = descChange
		}
		payload["ECommerceSettings"] = settings
	}

	result, err := s.client.UpdateProduct(ctx, productID, payload)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", productID, err)
	}
	if !result.Accepted() {
		return fmt.Errorf("%w: %s", ErrUpdateRejected, result.Reason())
	}
	if result.LegacyAck() {
		log.Warnf("product %d update acknowledged via legacy Status field (%q)", productID, result.Status)
	}

	if statusPresent {
		verify, err := s.client.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("%w: could not re-read product %d: %v", ErrVerificationFailed, productID, err)
		}
		written := domain.Normalize(verify.StatusRaw())
		if written != intended {
			return fmt.Errorf("%w: product %d status is %s, wanted %s", ErrVerificationFailed, productID, written, intended)
		}
	}

	log.Infof("product %d updated successfully", productID)
	return nil
}
