package vision

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) DescribeImage(ctx context.Context, prompt string, imageData []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const validLabel = `{
	"name": "Protein Bar",
	"brand": "FitCo",
	"category": "snacks",
	"nutrition_per_100g": {
		"calories": 380,
		"protein": 30,
		"carbs": 40,
		"fat": 12,
		"sugar": 18
	},
	"ingredients": ["oats", "whey", "honey"],
	"allergens": ["milk"],
	"labels": ["high protein"],
	"health_score": 65,
	"serving_size": "50g"
}`

func TestExtractFencedAndBareParseIdentically(t *testing.T) {
	bare := &fakeClient{response: validLabel}
	fenced := &fakeClient{response: "Here you go:\n```json\n" + validLabel + "\n```\nEnjoy!"}

	p1, err := NewExtractor(bare).ExtractFromImage(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("bare parse failed: %v", err)
	}
	p2, err := NewExtractor(fenced).ExtractFromImage(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("fenced parse failed: %v", err)
	}

	// barcodes are synthetic and differ; everything else must match
	p2.Barcode = p1.Barcode
	if !reflect.DeepEqual(p1, p2) {
		t.Fatalf("fenced and bare outputs differ:\n%+v\n%+v", p1, p2)
	}
}

func TestExtractValidPayload(t *testing.T) {
	p, err := NewExtractor(&fakeClient{response: validLabel}).
		ExtractFromImage(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Name != "Protein Bar" {
		t.Fatalf("wrong name %q", p.Name)
	}
	if p.Nutrition.Calories != 380 || p.Nutrition.Protein != 30 {
		t.Fatalf("macros not mapped: %+v", p.Nutrition)
	}
	if p.Nutrition.Sugar == nil || *p.Nutrition.Sugar != 18 {
		t.Fatalf("optional sugar lost: %+v", p.Nutrition.Sugar)
	}
	if p.Nutrition.Fiber != nil {
		t.Fatal("absent fiber must stay nil, not zero")
	}
	if p.HealthScore == nil || *p.HealthScore != 65 {
		t.Fatalf("health score not mapped: %v", p.HealthScore)
	}
}

func TestExtractSyntheticBarcode(t *testing.T) {
	p, err := NewExtractor(&fakeClient{response: validLabel}).
		ExtractFromImage(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(p.Barcode, "img_") {
		t.Fatalf("expected synthetic img_ barcode, got %q", p.Barcode)
	}
}

func TestExtractKeepsDetectedBarcode(t *testing.T) {
	withBarcode := strings.Replace(validLabel,
		`"name": "Protein Bar",`,
		`"name": "Protein Bar", "barcode": "7290001234567",`, 1)

	p, err := NewExtractor(&fakeClient{response: withBarcode}).
		ExtractFromImage(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Barcode != "7290001234567" {
		t.Fatalf("detected barcode dropped, got %q", p.Barcode)
	}
}

func TestExtractMalformedJSONIsTerminal(t *testing.T) {
	client := &fakeClient{response: "sorry, I can't read this label"}

	_, err := NewExtractor(client).ExtractFromImage(context.Background(), []byte("img"))

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("malformed output must not trigger a second model call, got %d", client.calls)
	}
}

func TestExtractMissingNameFails(t *testing.T) {
	payload := `{"nutrition_per_100g": {"calories": 100, "protein": 1, "carbs": 2, "fat": 3}}`

	_, err := NewExtractor(&fakeClient{response: payload}).
		ExtractFromImage(context.Background(), []byte("img"))

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError for missing name, got %v", err)
	}
}

func TestExtractMissingNutritionFails(t *testing.T) {
	payload := `{"name": "Ghost product"}`

	_, err := NewExtractor(&fakeClient{response: payload}).
		ExtractFromImage(context.Background(), []byte("img"))

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError for missing nutrition, got %v", err)
	}
}

func TestExtractModelFailurePropagates(t *testing.T) {
	boom := errors.New("upstream down")

	_, err := NewExtractor(&fakeClient{err: boom}).
		ExtractFromImage(context.Background(), []byte("img"))

	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped model error, got %v", err)
	}
}
