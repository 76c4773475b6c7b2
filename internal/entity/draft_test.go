package entity

import (
	"reflect"
	"testing"
)

func TestMissingFieldsKeepsRequiredOrder(t *testing.T) {
	tests := []struct {
		name  string
		draft RequirementDraft
		want  []string
	}{
		{
			name:  "empty draft misses everything",
			draft: RequirementDraft{},
			want:  []string{FieldTitle, FieldRequirementType, FieldDimensions},
		},
		{
			name:  "dimensions filled first still reports title before type",
			draft: RequirementDraft{Dimensions: "1920x1080"},
			want:  []string{FieldTitle, FieldRequirementType},
		},
		{
			name: "only dimensions missing",
			draft: RequirementDraft{
				Title:           "Sale Banner",
				RequirementType: RequirementTypeBanner,
			},
			want: []string{FieldDimensions},
		},
		{
			name: "complete draft",
			draft: RequirementDraft{
				Title:           "Sale Banner",
				RequirementType: RequirementTypeBanner,
				Dimensions:      "1920x1080",
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.draft.MissingFields()
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("MissingFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCompleteIgnoresOptionalFields(t *testing.T) {
	draft := RequirementDraft{
		Title:           "Sale Banner",
		RequirementType: RequirementTypeBanner,
		Dimensions:      "1920x1080",
	}
	if !draft.IsComplete() {
		t.Fatal("draft with all required fields should be complete")
	}

	draft.Copywriting = ""
	draft.AdditionalNotes = ""
	if !draft.IsComplete() {
		t.Fatal("optional fields must not affect completeness")
	}
}

func TestDraftPatchApplyMergesOnlyPresentFields(t *testing.T) {
	title := "Sale Banner"
	dims := "1920x1080"
	rt := RequirementTypeBanner

	draft := RequirementDraft{
		Title:       "old title",
		Copywriting: "keep this",
	}

	patch := DraftPatch{
		Title:           &title,
		RequirementType: &rt,
		Dimensions:      &dims,
	}
	patch.Apply(&draft)

	if draft.Title != title {
		t.Fatalf("title = %q, want %q", draft.Title, title)
	}
	if draft.RequirementType != rt {
		t.Fatalf("requirement type = %q, want %q", draft.RequirementType, rt)
	}
	if draft.Dimensions != dims {
		t.Fatalf("dimensions = %q, want %q", draft.Dimensions, dims)
	}
	if draft.Copywriting != "keep this" {
		t.Fatalf("copywriting overwritten by absent patch field: %q", draft.Copywriting)
	}
}

func TestDraftPatchApplyNeverTouchesClientLocalFields(t *testing.T) {
	designerID := int64(7)
	draft := RequirementDraft{
		DesignerID: &designerID,
		ReferenceImages: []ReferenceImage{
			{ID: "img-a", Filename: "a.png", DataURI: "data:image/png;base64,AAAA"},
		},
	}

	title := "from assistant"
	patch := DraftPatch{Title: &title}
	patch.Apply(&draft)

	if draft.DesignerID == nil || *draft.DesignerID != designerID {
		t.Fatal("designer binding must survive assistant merges")
	}
	if len(draft.ReferenceImages) != 1 || draft.ReferenceImages[0].ID != "img-a" {
		t.Fatal("reference images must survive assistant merges")
	}
}

func TestRequirementTypeValidate(t *testing.T) {
	for _, rt := range []RequirementType{
		RequirementTypeBanner, RequirementTypePoster, RequirementTypeDetailPage,
		RequirementTypeIcon, RequirementTypeOther,
	} {
		if err := rt.Validate(); err != nil {
			t.Fatalf("valid type %q rejected: %v", rt, err)
		}
	}

	if err := RequirementType("logo").Validate(); err == nil {
		t.Fatal("unknown type accepted")
	}
}
