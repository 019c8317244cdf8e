package dataset

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rushteam/modulerec/core"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "string slice", in: []string{"python", "ml"}, want: []string{"ml", "python"}},
		{name: "any slice", in: []any{"web", "python"}, want: []string{"python", "web"}},
		{name: "json array string", in: `["python","ml"]`, want: []string{"ml", "python"}},
		{name: "comma separated", in: "python, ml ,web", want: []string{"ml", "python", "web"}},
		{name: "semicolon separated", in: "python; ml", want: []string{"ml", "python"}},
		{name: "single scalar", in: "python", want: []string{"python"}},
		{name: "numeric scalar", in: 42, want: []string{"42"}},
		{name: "duplicates removed", in: "a,b,a", want: []string{"a", "b"}},
		{name: "blank string", in: "   ", want: nil},
		{name: "empty entries dropped", in: "a,,b,", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseModules(t *testing.T) {
	records := []map[string]any{
		{
			"id":                   "1",
			"name":                 "Python 入门",
			"shortdescription":     "short",
			"description":          "long text",
			"tags_list":            `["python","beginner"]`,
			"studycredit":          "5",
			"estimated_difficulty": 2.5,
			"popularity_score":     "0.9",
			"irrelevant":           "ignored",
		},
		{
			"id":              2,
			"name":            "ML",
			"module_tags_str": "ml,python",
		},
	}

	modules, err := ParseModules(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 2 {
		t.Fatalf("got %d modules, want 2", len(modules))
	}

	m := modules[0]
	if m.ID != 1 || m.Name != "Python 入门" {
		t.Errorf("module = %+v", m)
	}
	if !reflect.DeepEqual(m.Tags, []string{"beginner", "python"}) {
		t.Errorf("tags = %v", m.Tags)
	}
	if m.Features["studycredit"] != 5 || m.Features["estimated_difficulty"] != 2.5 || m.Features["popularity_score"] != 0.9 {
		t.Errorf("features = %v", m.Features)
	}
	if _, ok := m.Features["irrelevant"]; ok {
		t.Error("non-feature column leaked into features")
	}

	if !reflect.DeepEqual(modules[1].Tags, []string{"ml", "python"}) {
		t.Errorf("fallback tag column: tags = %v", modules[1].Tags)
	}
}

func TestParseModulesErrors(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		_, err := ParseModules([]map[string]any{{"name": "x"}})
		if !core.IsInvalidInput(err) {
			t.Errorf("err = %v, want invalid input", err)
		}
	})

	t.Run("non numeric id", func(t *testing.T) {
		_, err := ParseModules([]map[string]any{{"id": "abc"}})
		if !core.IsInvalidInput(err) {
			t.Errorf("err = %v, want invalid input", err)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := ParseModules([]map[string]any{{"id": 1}, {"id": "1"}})
		if !core.IsInvalidInput(err) {
			t.Errorf("err = %v, want invalid input", err)
		}
	})
}

func TestParseUsers(t *testing.T) {
	records := []map[string]any{
		{"user_id": "u1", "name": "甲", "favorite_id": "[1,2]", "profile_text": "python"},
		{"id": "u2", "favorite_id": "3, 4"},
		{"name": "没有 id，跳过"},
		{"user_id": "u3", "favorite_id": []any{5, "6", "junk"}},
	}

	users := ParseUsers(records)
	if len(users) != 3 {
		t.Fatalf("got %d users, want 3", len(users))
	}
	if users[0].UserID != "u1" || users[0].ProfileText != "python" {
		t.Errorf("user = %+v", users[0])
	}
	if !reflect.DeepEqual(users[0].Favorites, []int64{1, 2}) {
		t.Errorf("favorites = %v", users[0].Favorites)
	}
	if users[1].UserID != "u2" || !reflect.DeepEqual(users[1].Favorites, []int64{3, 4}) {
		t.Errorf("user = %+v", users[1])
	}
	if !reflect.DeepEqual(users[2].Favorites, []int64{5, 6}) {
		t.Errorf("non-numeric favorite should be dropped: %v", users[2].Favorites)
	}
}

func TestReadRecords(t *testing.T) {
	csv := "id,name,popularity_score\n1,Python,0.9\n2,ML,0.7\n"
	records, err := ReadRecords(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0]["name"] != "Python" || records[1]["popularity_score"] != "0.7" {
		t.Errorf("records = %v", records)
	}

	modules, err := ParseModules(records)
	if err != nil {
		t.Fatal(err)
	}
	if modules[0].Features["popularity_score"] != 0.9 {
		t.Errorf("csv feature not parsed: %v", modules[0].Features)
	}
}

func TestReadRecordsEmpty(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from empty input", len(records))
	}
}
