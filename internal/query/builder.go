// Package query translates generic pagination, sort, and filter requests into
// the catalog API's query-parameter dialect (Field[op]=value filters, a
// sort=Field[dir] expression, and offset/fetch pagination). The dialect never
// leaks past this package.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const (
	// MaxPageSize is the hard upstream page cap; larger requests are clamped.
	MaxPageSize = 30
	// DefaultPageSize is used when the caller does not say.
	DefaultPageSize = 30

	defaultSortField = "Code"
	directionAsc     = "asc"
	directionDesc    = "desc"
)

// ErrInvalidPage is a caller error: pages are numbered from 1.
var ErrInvalidPage = errors.New("page number must be 1 or greater")

// allowedSortFields is the fixed set of attributes the upstream can sort by.
// Anything else is silently dropped in favor of the default sort; that
// leniency is deliberate and differs from the caller-error policy used for
// pagination.
var allowedSortFields = map[string]struct{}{
	"Code": {}, "Description": {}, "ImageCount": {}, "D_WebCategory": {},
	"D_Classification": {}, "D_ThreadGender": {}, "D_SizeA": {},
	"D_SizeB": {}, "D_SizeC": {}, "D_SizeD": {}, "D_Orientation": {},
	"D_Configuration": {}, "D_Grade": {}, "D_ManufacturerName": {},
	"D_Application": {},
}

// Products builds the parameter set for a category product listing.
func Products(categoryID, page, pageSize int, sortField, sortDirection string) (map[string]string, error) {
	params, err := paginate(page, pageSize)
	if err != nil {
		return nil, err
	}
	params["Category[eq]"] = strconv.Itoa(categoryID)
	params["sort"] = Sort(sortField, sortDirection)
	return params, nil
}

// Search builds the parameter set for a product search. Each criterion is
// optional here; requiring at least one is the orchestrator's rule.
func Search(categoryID int, code, description string, page, pageSize int) (map[string]string, error) {
	params, err := paginate(page, pageSize)
	if err != nil {
		return nil, err
	}
	if categoryID > 0 {
		params["Category[eq]"] = strconv.Itoa(categoryID)
	}
	if code != "" {
		params["Code[cnt]"] = code
	}
	if description != "" {
		params["Description[cnt]"] = description
	}
	params["sort"] = Sort("", "")
	return params, nil
}

func paginate(page, pageSize int) (map[string]string, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	size := ClampPageSize(pageSize)
	return map[string]string{
		"offset": strconv.Itoa((page - 1) * size),
		"fetch":  strconv.Itoa(size),
	}, nil
}

// ClampPageSize bounds a requested page size to 1..MaxPageSize, defaulting
// when the caller passed nothing useful.
func ClampPageSize(pageSize int) int {
	if pageSize < 1 {
		return DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}

// Sort renders the upstream sort expression. An unsupported field falls back
// to the stable default (Code ascending) so pagination stays deterministic;
// an unsupported direction resets to ascending.
func Sort(field, direction string) string {
	if _, ok := allowedSortFields[field]; !ok {
		if field != "" {
			log.Warnf("attempted to sort by unsupported field: %s", field)
		}
		return fmt.Sprintf("%s[%s]", defaultSortField, directionAsc)
	}
	if direction != directionAsc && direction != directionDesc {
		if direction != "" {
			log.Warnf("invalid sort direction %q, defaulting to %s", direction, directionAsc)
		}
		direction = directionAsc
	}
	return fmt.Sprintf("%s[%s]", field, direction)
}

var sortParamPattern = regexp.MustCompile(`^\((\w+)\)\[([^\]]+)\]$`)

// ParseSortParam splits the presentation layer's "(Field)[dir]" surface
// syntax into its parts. Malformed input degrades to the default sort; Sort
// does the allow-list validation.
func ParseSortParam(sortParam string) (field, direction string) {
	if sortParam == "" {
		return "", directionAsc
	}
	match := sortParamPattern.FindStringSubmatch(sortParam)
	if match == nil {
		log.Warnf("invalid sort parameter format: %q", sortParam)
		return "", directionAsc
	}
	return match[1], match[2]
}
