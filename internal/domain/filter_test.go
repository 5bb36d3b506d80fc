package domain

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Bad date %q: %v", s, err)
	}
	return &d
}

func TestFilter_Empty(t *testing.T) {
	a := Article{ArticleID: "x"}
	if !(ArticleFilter{}).Matches(a) {
		t.Error("Empty filter must match everything")
	}
	if !(ArticleFilter{}).IsZero() {
		t.Error("Empty filter must report IsZero")
	}
}

func TestFilter_AuthorSubstringCaseInsensitive(t *testing.T) {
	a := Article{Metadata: ArticleMetadata{Author: "Maria Rossi"}}

	cases := []struct {
		author string
		want   bool
	}{
		{"rossi", true},
		{"MARIA", true},
		{"ria Ros", true},
		{"Bianchi", false},
	}
	for _, tc := range cases {
		got := ArticleFilter{Author: tc.author}.Matches(a)
		if got != tc.want {
			t.Errorf("Author filter %q = %v, want %v", tc.author, got, tc.want)
		}
	}
}

func TestFilter_DateBoundsInclusive(t *testing.T) {
	a := Article{Metadata: ArticleMetadata{PublicationDate: mustDate(t, "2023-05-10")}}

	if !(ArticleFilter{DateFrom: mustDate(t, "2023-05-10")}).Matches(a) {
		t.Error("DateFrom equal to publication date must match")
	}
	if !(ArticleFilter{DateTo: mustDate(t, "2023-05-10")}).Matches(a) {
		t.Error("DateTo equal to publication date must match")
	}
	if (ArticleFilter{DateFrom: mustDate(t, "2023-05-11")}).Matches(a) {
		t.Error("Publication before DateFrom must not match")
	}
	if (ArticleFilter{DateTo: mustDate(t, "2023-05-09")}).Matches(a) {
		t.Error("Publication after DateTo must not match")
	}
}

func TestFilter_NilDateNeverMatchesDateFilter(t *testing.T) {
	a := Article{Metadata: ArticleMetadata{Author: "Rossi"}}
	if (ArticleFilter{DateFrom: mustDate(t, "2000-01-01")}).Matches(a) {
		t.Error("Article without a date matched a date-bounded filter")
	}
	if (ArticleFilter{DateTo: mustDate(t, "2100-01-01")}).Matches(a) {
		t.Error("Article without a date matched a date-bounded filter")
	}
}

func TestFilter_Categories(t *testing.T) {
	a := Article{Metadata: ArticleMetadata{Categories: []string{"politics", "europe"}}}

	if !(ArticleFilter{Categories: []string{"economy", "europe"}}).Matches(a) {
		t.Error("Overlapping categories must match")
	}
	if (ArticleFilter{Categories: []string{"sport"}}).Matches(a) {
		t.Error("Disjoint categories must not match")
	}
	if (ArticleFilter{Categories: []string{"sport"}}).Matches(Article{}) {
		t.Error("Article without categories matched a category filter")
	}
}

func TestFilter_CombinedConstraints(t *testing.T) {
	a := Article{Metadata: ArticleMetadata{
		Author:          "Maria Rossi",
		PublicationDate: mustDate(t, "2023-05-10"),
		Categories:      []string{"politics"},
	}}

	all := ArticleFilter{
		Author:     "rossi",
		DateFrom:   mustDate(t, "2023-01-01"),
		Categories: []string{"politics"},
	}
	if !all.Matches(a) {
		t.Error("Article satisfying every constraint must match")
	}

	all.Categories = []string{"sport"}
	if all.Matches(a) {
		t.Error("One failing constraint must reject the article")
	}
}

func TestDateString(t *testing.T) {
	m := ArticleMetadata{PublicationDate: mustDate(t, "2021-12-03")}
	if got := m.DateString(); got != "2021-12-03" {
		t.Errorf("DateString = %q, want 2021-12-03", got)
	}
	if got := (ArticleMetadata{}).DateString(); got != "N/A" {
		t.Errorf("DateString without date = %q, want N/A", got)
	}
}
