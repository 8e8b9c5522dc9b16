package vision

// BuildLabelPrompt is the fixed instruction sent with every photo.
func BuildLabelPrompt() string {
	return `
You are a food product analyst.

Look at this product photo and extract the product details and the
nutrition label, normalized to 100 g.

Your task:
- Output MUST be a single valid JSON object.
- Output MUST start with { and end with }.
- NO explanations.
- NO extra text.
- Omit any field you cannot read; never invent values.

Required JSON schema:
{
  "name": "string",
  "brand": "string",
  "category": "string",
  "barcode": "string",
  "nutrition_per_100g": {
    "calories": number,
    "protein": number,
    "carbs": number,
    "fat": number,
    "fiber": number,
    "sugar": number,
    "sodium_mg": number,
    "saturated_fat": number,
    "trans_fat": number,
    "cholesterol": number,
    "potassium": number,
    "calcium": number,
    "iron": number,
    "vitamin_c": number,
    "vitamin_d": number
  },
  "ingredients": ["string"],
  "allergens": ["string"],
  "labels": ["string"],
  "health_score": number (0-100),
  "serving_size": "string"
}`
}
