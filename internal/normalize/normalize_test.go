package normalize_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"mediashelf/internal/media"
	"mediashelf/internal/normalize"
)

func TestRating(t *testing.T) {
	cases := map[string]float64{
		"8.4": 4.2,
		"10":  5,
		"":    0,
		"N/A": 0,
		"-3":  0,
		"７.０": 3.5,
	}
	for raw, want := range cases {
		if got := normalize.Rating(raw); got != want {
			t.Errorf("Rating(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestStatusMapsLabelsPerCategory(t *testing.T) {
	cases := []struct {
		category media.Category
		raw      string
		want     media.Status
	}{
		{media.CategoryBook, "想读", media.StatusWantToRead},
		{media.CategoryBook, "我读过这本书", media.StatusRead},
		{media.CategoryBook, "已读", media.StatusRead},
		{media.CategoryBook, "UNREAD", media.StatusUnread},
		{media.CategoryBook, "Reading", media.StatusReading},
		{media.CategoryMovie, "想看", media.StatusWatching},
		{media.CategoryMovie, "看过", media.StatusWatched},
		{media.CategoryMovie, "unwatched", media.StatusUnwatched},
		{media.CategoryMusic, "在听", media.StatusListening},
		{media.CategoryMusic, "已听", media.StatusListened},
		{media.CategoryMusic, "未知", media.StatusUnknown},
	}
	for _, tc := range cases {
		if got := normalize.Status(tc.category, tc.raw); got != tc.want {
			t.Errorf("Status(%s, %q) = %q, want %q", tc.category, tc.raw, got, tc.want)
		}
	}
}

func TestStatusFallsBackToCategoryDefault(t *testing.T) {
	for _, category := range media.Categories() {
		for _, raw := range []string{"", "banana", "reading"} {
			if category == media.CategoryBook && raw == "reading" {
				continue
			}
			if got := normalize.Status(category, raw); got != media.DefaultStatus(category) {
				t.Errorf("Status(%s, %q) = %q, want default %q", category, raw, got, media.DefaultStatus(category))
			}
		}
	}
}

func TestStatusMatchesLatinLabelsAsWholeWords(t *testing.T) {
	cases := []struct {
		category media.Category
		raw      string
		want     media.Status
	}{
		{media.CategoryBook, "spreadsheet", media.StatusUnread},
		{media.CategoryBook, "already", media.StatusUnread},
		{media.CategoryBook, "bread", media.StatusUnread},
		{media.CategoryBook, "thread", media.StatusUnread},
		{media.CategoryBook, "I have read it", media.StatusRead},
		{media.CategoryBook, "currently reading", media.StatusReading},
		{media.CategoryBook, "want_to_read", media.StatusWantToRead},
		{media.CategoryMovie, "rewatched", media.StatusUnwatched},
		{media.CategoryMovie, "watched twice", media.StatusWatched},
		{media.CategoryMusic, "relistened", media.StatusUnlistened},
		{media.CategoryBook, "我读过这本书", media.StatusRead},
		{media.CategoryMovie, "上周看过了", media.StatusWatched},
	}
	for _, tc := range cases {
		if got := normalize.Status(tc.category, tc.raw); got != tc.want {
			t.Errorf("Status(%s, %q) = %q, want %q", tc.category, tc.raw, got, tc.want)
		}
	}
}

func TestJoinTagsDeduplicatesInOrder(t *testing.T) {
	if got := normalize.JoinTags([]string{"A", "B", "A"}); got != "A,B" {
		t.Fatalf("JoinTags = %q, want %q", got, "A,B")
	}
	if got := normalize.JoinTags([]string{" 小说 , 经典", "a", "A"}); got != "小说,经典,a,A" {
		t.Fatalf("JoinTags = %q", got)
	}
}

func TestCandidateBook(t *testing.T) {
	fields := media.Fields{
		media.FieldExternalID:  "1007305",
		media.FieldTitle:       "红楼梦",
		media.FieldScore:       "9.6",
		media.FieldTags:        "古典,小说,古典",
		media.FieldStatus:      "读过",
		media.FieldAuthor:      "曹雪芹,高鹗",
		media.FieldPageCount:   "1606页",
		media.FieldPublishDate: "1996-12",
		media.FieldYear:        "",
	}
	candidate := normalize.Candidate(media.CategoryBook, "1007305", fields)

	if _, ok := fields[media.FieldExternalID]; ok {
		t.Fatal("external id should be removed from the field map")
	}
	if candidate.ExternalID != "1007305" || candidate.Title != "红楼梦" {
		t.Fatalf("unexpected identity: %+v", candidate)
	}
	if candidate.NormalizedRating != 4.8 || candidate.RawScore != "9.6" {
		t.Fatalf("rating = %v raw = %q", candidate.NormalizedRating, candidate.RawScore)
	}
	if !reflect.DeepEqual(candidate.Tags, []string{"古典", "小说"}) {
		t.Fatalf("tags = %v", candidate.Tags)
	}
	if candidate.Status != media.StatusRead {
		t.Fatalf("status = %q", candidate.Status)
	}
	if candidate.PageCount == nil || *candidate.PageCount != 1606 {
		t.Fatalf("page count = %v", candidate.PageCount)
	}
	if candidate.Year != nil {
		t.Fatalf("year should be unset, got %d", *candidate.Year)
	}
	if candidate.LowConfidence {
		t.Fatal("titled candidate should not be low confidence")
	}
}

func TestCandidateMusicTracksAndLowConfidence(t *testing.T) {
	fields := media.Fields{
		media.FieldArtist: "周杰伦",
		media.FieldTracks: "以父之名\n 懦夫 \n\n晴天",
		media.FieldYear:   "2003",
	}
	candidate := normalize.Candidate(media.CategoryMusic, "1394371", fields)

	if !reflect.DeepEqual(candidate.Tracks, []string{"以父之名", "懦夫", "晴天"}) {
		t.Fatalf("tracks = %v", candidate.Tracks)
	}
	if candidate.Year == nil || *candidate.Year != 2003 {
		t.Fatalf("year = %v", candidate.Year)
	}
	if candidate.Status != media.StatusUnlistened {
		t.Fatalf("status = %q", candidate.Status)
	}
	if !candidate.LowConfidence {
		t.Fatal("untitled candidate should be low confidence")
	}
}

func TestCandidateNilFields(t *testing.T) {
	candidate := normalize.Candidate(media.CategoryMovie, "1291546", nil)
	if candidate.NormalizedRating != 0 || candidate.Status != media.StatusUnwatched {
		t.Fatalf("unexpected defaults: %+v", candidate)
	}
}

func TestCandidateEncodesEmptyListsAsArrays(t *testing.T) {
	for _, category := range media.Categories() {
		candidate := normalize.Candidate(category, "1", media.Fields{media.FieldTitle: "x"})
		body, err := json.Marshal(candidate)
		if err != nil {
			t.Fatalf("marshal %s: %v", category, err)
		}
		for _, want := range []string{`"tags":[]`, `"tracks":[]`} {
			if !strings.Contains(string(body), want) {
				t.Errorf("%s candidate %s missing %s", category, body, want)
			}
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	candidate := normalize.Candidate(media.CategoryMovie, "1291546", media.Fields{
		media.FieldTitle:  "霸王别姬",
		media.FieldScore:  "9.6",
		media.FieldStatus: "想看",
		media.FieldTags:   "经典",
	})

	status := "看过"
	rating := 7.0
	notes := "  重温 "
	owned := true
	normalize.ApplyOverrides(&candidate, media.Overrides{
		Status:  &status,
		Rating:  &rating,
		Notes:   &notes,
		Tags:    []string{"剧情", "剧情", "同性"},
		IsOwned: &owned,
	})

	if candidate.Status != media.StatusWatched {
		t.Fatalf("status = %q", candidate.Status)
	}
	if candidate.NormalizedRating != normalize.MaxRating {
		t.Fatalf("rating = %v, want clamp to %v", candidate.NormalizedRating, normalize.MaxRating)
	}
	if candidate.Notes != "重温" || !candidate.IsOwned {
		t.Fatalf("notes/owned = %q/%v", candidate.Notes, candidate.IsOwned)
	}
	if !reflect.DeepEqual(candidate.Tags, []string{"剧情", "同性"}) {
		t.Fatalf("tags = %v", candidate.Tags)
	}
	if candidate.Title != "霸王别姬" {
		t.Fatalf("title should be kept, got %q", candidate.Title)
	}
}
