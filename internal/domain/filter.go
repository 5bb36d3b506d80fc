package domain

import "strings"

// Matches reports whether the article satisfies every constraint the
// filter carries. An article without a publication date never matches a
// date-bounded filter.
func (f ArticleFilter) Matches(a Article) bool {
	if f.Author != "" {
		if !strings.Contains(strings.ToLower(a.Metadata.Author), strings.ToLower(f.Author)) {
			return false
		}
	}

	if f.DateFrom != nil || f.DateTo != nil {
		pub := a.Metadata.PublicationDate
		if pub == nil {
			return false
		}
		if f.DateFrom != nil && pub.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && pub.After(*f.DateTo) {
			return false
		}
	}

	if len(f.Categories) > 0 {
		if !intersects(a.Metadata.Categories, f.Categories) {
			return false
		}
	}

	return true
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
