package notion

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/haoyanli/paperflow/internal/paper"
)

func TestSplitContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"dash bullets", "- a\n- b\n- c", []string{"a", "b", "c"}},
		{"star bullets", "* a\n* b", []string{"a", "b"}},
		{"plain multi-line", "one\ntwo", []string{"one", "two"}},
		{"single line", "single", []string{"single"}},
		{"empty", "", nil},
		{"whitespace only", "  \n\t\n", nil},
		{"mixed bullets and prose", "intro line\n- item", []string{"intro line", "item"}},
		{"blank lines between items", "- a\n\n- b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitContent(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitContent(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestBlocksFromReview(t *testing.T) {
	review := paper.Review{
		Summary:     "An overview.",
		Methodology: "- step one\n- step two",
	}

	blocks := BlocksFromReview(review)

	want := []Block{
		{Type: BlockHeading, Text: "Overview"},
		{Type: BlockParagraph, Text: "An overview."},
		{Type: BlockHeading, Text: "2. Methodology"},
		{Type: BlockBulletItem, Text: "step one"},
		{Type: BlockBulletItem, Text: "step two"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("BlocksFromReview() = %v, want %v", blocks, want)
	}
}

func TestBlocksFromReviewSkipsEmptySections(t *testing.T) {
	blocks := BlocksFromReview(paper.Review{Discussion: "   "})
	if len(blocks) != 0 {
		t.Errorf("BlocksFromReview() = %v, want no blocks for blank review", blocks)
	}
}

func TestBlocksFromReviewIdempotent(t *testing.T) {
	review := paper.Review{Summary: "same", Novelty: "- a\n- b"}
	first := BlocksFromReview(review)
	second := BlocksFromReview(review)
	if !reflect.DeepEqual(first, second) {
		t.Error("BlocksFromReview() not deterministic across calls")
	}
}

func TestBlocksTruncation(t *testing.T) {
	long := strings.Repeat("あ", TextLimit+100)
	blocks := BlocksFromReview(paper.Review{Summary: long})
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if got := len([]rune(blocks[1].Text)); got != TextLimit {
		t.Errorf("paragraph length = %d runes, want %d", got, TextLimit)
	}
}

func TestBlocksTextLimitAllTypes(t *testing.T) {
	long := strings.Repeat("x", TextLimit+50)
	review := paper.Review{
		Summary:     long,
		Novelty:     "- " + long + "\n- " + long,
		Methodology: "short",
	}

	for _, block := range BlocksFromReview(review) {
		if got := len([]rune(block.Text)); got > TextLimit {
			t.Errorf("%s block length = %d runes, exceeds limit %d", block.Type, got, TextLimit)
		}
	}
}

func TestBlockMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Block{Type: BlockParagraph, Text: "hello"})
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["type"] != "paragraph" {
		t.Errorf("type = %v, want paragraph", decoded["type"])
	}
	payload, ok := decoded["paragraph"].(map[string]any)
	if !ok {
		t.Fatalf("missing paragraph payload in %s", data)
	}
	richText, ok := payload["rich_text"].([]any)
	if !ok || len(richText) != 1 {
		t.Fatalf("rich_text = %v, want one element", payload["rich_text"])
	}
	text := richText[0].(map[string]any)["text"].(map[string]any)["content"]
	if text != "hello" {
		t.Errorf("content = %v, want hello", text)
	}
}
