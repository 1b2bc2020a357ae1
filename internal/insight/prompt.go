package insight

import (
	"encoding/json"
	"fmt"

	"github.com/weatherlab/weather-insights/internal/weather"
)

// promptTemplate instructs the model to derive every field from the supplied
// readings and to answer with a single bare JSON object. The schema block and
// the rules are the only pre-generation enforcement available; extraction and
// validation still verify everything downstream. The single format verb is
// the JSON-serialized reading window.
const promptTemplate = `You are a system that analyzes weather sensor data and produces precise insights.

The input below is a JSON list of sensor readings, most recent first:
%s

Based ONLY on this data, produce the following fields:

{
  "temperature_avg": number,
  "humidity_avg": number,
  "wind_avg": number,

  "temperature_trend": "rising" | "falling" | "stable",
  "trend_variance": string,

  "comfort_score": number,
  "day_type": string,

  "alerts": string[],

  "summary": string,
  "recommendation": string,
  "confidence": number
}

IMPORTANT RULES:
- Do all calculations yourself, from the given readings only.
- Do NOT invent data.
- Do NOT add extra fields.
- Respond ONLY with the raw JSON object, nothing else.
- No markdown.`

// BuildPrompt serializes the reading window into the instruction payload.
// The window must be non-empty; a prompt with no data is never sent.
func BuildPrompt(readings []weather.Reading) (string, error) {
	if len(readings) == 0 {
		return "", ErrEmptyWindow
	}

	data, err := json.Marshal(readings)
	if err != nil {
		return "", fmt.Errorf("serialize reading window: %w", err)
	}

	return fmt.Sprintf(promptTemplate, data), nil
}
