package media_test

import (
	"testing"

	"mediashelf/internal/media"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]media.Category{
		"book":    media.CategoryBook,
		" Books ": media.CategoryBook,
		"movies":  media.CategoryMovie,
		"MUSIC":   media.CategoryMusic,
	}
	for input, want := range cases {
		got, err := media.ParseCategory(input)
		if err != nil {
			t.Fatalf("ParseCategory(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := media.ParseCategory("podcast"); err == nil {
		t.Fatal("expected error for unsupported category")
	}
}

func TestDefaultStatusIsAmongStatuses(t *testing.T) {
	for _, category := range media.Categories() {
		def := media.DefaultStatus(category)
		found := false
		for _, status := range media.Statuses(category) {
			if status == def {
				found = true
			}
		}
		if !found {
			t.Fatalf("default %q missing from %s statuses", def, category)
		}
	}
}

func TestFieldKeysCoverCategorySpecificFields(t *testing.T) {
	want := map[media.Category]string{
		media.CategoryBook:  media.FieldPublishDate,
		media.CategoryMovie: media.FieldCast,
		media.CategoryMusic: media.FieldTracks,
	}
	for category, key := range want {
		found := false
		for _, k := range media.FieldKeys(category) {
			if k == key {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s field keys missing %q", category, key)
		}
	}
}

func TestOverridesEmpty(t *testing.T) {
	if !(media.Overrides{}).Empty() {
		t.Fatal("zero overrides should be empty")
	}
	notes := "signed copy"
	if (media.Overrides{Notes: &notes}).Empty() {
		t.Fatal("overrides with notes should not be empty")
	}
}
