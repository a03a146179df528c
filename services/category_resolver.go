package services

import (
	"context"
	"strings"

	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/models"
	"github.com/barrelborn/digital-menu/utils"
	"github.com/sirupsen/logrus"
)

// CandidateCollections returns token followed by its separator rewrites,
// deduplicated, in probe order.
func CandidateCollections(token string) []string {
	rewrites := []string{
		token,
		strings.ReplaceAll(token, "-", " "),
		strings.ReplaceAll(token, "-", "&"),
		strings.ReplaceAll(token, "-", " & "),
		strings.ReplaceAll(token, "&", "-"),
		strings.ReplaceAll(token, " ", "-"),
	}
	seen := make(map[string]struct{}, len(rewrites))
	out := make([]string, 0, len(rewrites))
	for _, r := range rewrites {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// MatchCollections picks, in probe order, the candidates for token that
// name an available menu collection. The first entry is token itself when
// it exists.
func MatchCollections(token string, available []string) []string {
	present := make(map[string]struct{}, len(available))
	for _, name := range available {
		present[name] = struct{}{}
	}
	var out []string
	for _, c := range CandidateCollections(token) {
		if _, ok := present[c]; !ok {
			continue
		}
		if models.ValidateCollectionName(c) != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SearchTerm is the text the fallback search looks for.
func SearchTerm(token string) string {
	return strings.ReplaceAll(token, "-", " ")
}

// CategoryResolver maps a caller supplied category token to menu items,
// tolerating drift between the token and stored collection names.
type CategoryResolver struct {
	store database.Store
}

func NewCategoryResolver(store database.Store) *CategoryResolver {
	return &CategoryResolver{store: store}
}

// Resolve tries the exact collection, then the first populated rewrite,
// then a substring search over every menu collection. It never fails:
// persistence errors are logged and yield an empty result.
//
// The fallback search can match items that only mention the term in
// passing.
func (r *CategoryResolver) Resolve(ctx context.Context, token string) []models.MenuItem {
	items, err := r.resolve(ctx, token)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"category": token,
			"error":    err,
		}).Error("category lookup failed")
		return []models.MenuItem{}
	}
	return items
}

func (r *CategoryResolver) resolve(ctx context.Context, token string) ([]models.MenuItem, error) {
	available, err := r.store.CollectionNames(ctx)
	if err != nil {
		return nil, err
	}

	for _, name := range MatchCollections(token, available) {
		items, err := r.store.MenuItems(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}
		utils.InfoLogger.WithFields(logrus.Fields{
			"category":   token,
			"collection": name,
			"count":      len(items),
		}).Debug("category resolved")
		items = stampCategory(items, name)
		SortMenuItems(items)
		return items, nil
	}

	term := SearchTerm(token)
	matches := []models.MenuItem{}
	for _, name := range available {
		found, err := r.store.SearchMenuItems(ctx, name, term)
		if err != nil {
			return nil, err
		}
		matches = append(matches, stampCategory(found, name)...)
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"category": token,
		"count":    len(matches),
	}).Debug("category resolved by text search")
	SortMenuItems(matches)
	return matches, nil
}

func stampCategory(items []models.MenuItem, collection string) []models.MenuItem {
	for i := range items {
		items[i].Category = collection
	}
	return items
}
