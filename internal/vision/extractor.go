package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"nutriscan/internal/product"
)

// ExtractionError means the model's answer could not be turned into a
// valid product record. Terminal: the caller should retake the photo
// rather than pay for another model call on the same bad output.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "extraction failed: " + e.Reason + " (try retaking the photo)"
}

// fencedJSON grabs the first Markdown-fenced block, json-tagged or not.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

type Extractor struct {
	client Client
	now    func() time.Time
}

func NewExtractor(client Client) *Extractor {
	return &Extractor{client: client, now: time.Now}
}

// labelPayload is the JSON shape the prompt demands.
type labelPayload struct {
	Name        string             `json:"name"`
	Brand       string             `json:"brand"`
	Category    string             `json:"category"`
	Barcode     string             `json:"barcode"`
	Nutrition   *product.Nutrition `json:"nutrition_per_100g"`
	Ingredients []string           `json:"ingredients"`
	Allergens   []string           `json:"allergens"`
	Labels      []string           `json:"labels"`
	HealthScore *int               `json:"health_score"`
	ServingSize string             `json:"serving_size"`
}

// ExtractFromImage sends the photo to the vision model and decodes the
// answer into a canonical product. One model call, one parse attempt.
func (e *Extractor) ExtractFromImage(
	ctx context.Context,
	imageData []byte,
) (*product.Product, error) {

	text, err := e.client.DescribeImage(ctx, BuildLabelPrompt(), imageData)
	if err != nil {
		return nil, fmt.Errorf("vision model call failed: %w", err)
	}

	return e.parse(text)
}

func (e *Extractor) parse(text string) (*product.Product, error) {
	// Models like to wrap JSON in a code fence despite instructions.
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var payload labelPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &ExtractionError{Reason: "model output is not valid JSON"}
	}

	if payload.Name == "" {
		return nil, &ExtractionError{Reason: "no product name detected"}
	}
	if payload.Nutrition == nil {
		return nil, &ExtractionError{Reason: "no nutrition label detected"}
	}
	if payload.Nutrition.Calories < 0 || payload.Nutrition.Protein < 0 ||
		payload.Nutrition.Carbs < 0 || payload.Nutrition.Fat < 0 {
		return nil, &ExtractionError{Reason: "negative nutrition values"}
	}

	barcode := payload.Barcode
	if barcode == "" {
		barcode = e.syntheticID()
	}

	if payload.HealthScore != nil {
		if *payload.HealthScore < 0 {
			*payload.HealthScore = 0
		}
		if *payload.HealthScore > 100 {
			*payload.HealthScore = 100
		}
	}

	return &product.Product{
		Barcode:     barcode,
		Name:        payload.Name,
		Brand:       payload.Brand,
		Category:    payload.Category,
		Nutrition:   *payload.Nutrition,
		Ingredients: payload.Ingredients,
		Allergens:   payload.Allergens,
		Labels:      payload.Labels,
		HealthScore: payload.HealthScore,
		ServingSize: payload.ServingSize,
	}, nil
}

// syntheticID keys photo-only products so they still upsert idempotently.
func (e *Extractor) syntheticID() string {
	return fmt.Sprintf("img_%d_%06d", e.now().Unix(), rand.Intn(1000000))
}
