package recipe

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"google.golang.org/genai"
)

const (
	MinBrewTemp = 80
	MaxBrewTemp = 99
)

var (
	schemaOnce     sync.Once
	responseSchema *openapi3.Schema

	completionOnce   sync.Once
	completionSchema *genai.Schema
)

// ResponseSchema is the JSON shape the completion service must return. It is
// built once and must not be mutated by callers.
func ResponseSchema() *openapi3.Schema {
	schemaOnce.Do(func() {
		responseSchema = buildResponseSchema()
	})
	return responseSchema
}

func buildResponseSchema() *openapi3.Schema {
	step := openapi3.NewObjectSchema().
		WithProperty("time", openapi3.NewStringSchema()).
		WithProperty("action", openapi3.NewStringSchema()).
		WithProperty("amount", openapi3.NewFloat64Schema()).
		WithProperty("note", openapi3.NewStringSchema())
	step.Required = []string{"time", "action", "amount", "note"}

	temp := openapi3.NewFloat64Schema().WithMin(MinBrewTemp).WithMax(MaxBrewTemp)
	temp.Description = "Brewing temperature in Celsius"

	s := openapi3.NewObjectSchema().
		WithProperty("temp", temp).
		WithProperty("time", described(openapi3.NewStringSchema(), "Total estimated time e.g. 02:30")).
		WithProperty("grind", described(openapi3.NewStringSchema(), "Specific grind setting range")).
		WithProperty("totalWater", described(openapi3.NewFloat64Schema().WithMin(0), "Total volume in ml")).
		WithProperty("brewingWater", described(openapi3.NewFloat64Schema().WithMin(0), "Hot water used for brewing in ml")).
		WithProperty("iceAmount", described(openapi3.NewFloat64Schema().WithMin(0), "Ice cubes in server in grams")).
		WithProperty("ratio", described(openapi3.NewStringSchema(), "Brew ratio e.g. 1:15")).
		WithProperty("steps", openapi3.NewArraySchema().WithItems(step).WithMinItems(1))
	s.Required = []string{"temp", "time", "grind", "totalWater", "brewingWater", "iceAmount", "ratio", "steps"}
	return s
}

func described(s *openapi3.Schema, desc string) *openapi3.Schema {
	s.Description = desc
	return s
}

// CompletionSchema is ResponseSchema in the request dialect of the Gemini
// API. Callers must not mutate it.
func CompletionSchema() *genai.Schema {
	completionOnce.Do(func() {
		completionSchema = buildCompletionSchema()
	})
	return completionSchema
}

func buildCompletionSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	num := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Description: desc, Minimum: genai.Ptr(0.0)}
	}

	step := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"time":   str(""),
			"action": str(""),
			"amount": {Type: genai.TypeNumber},
			"note":   str(""),
		},
		Required: []string{"time", "action", "amount", "note"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"temp": {
				Type:        genai.TypeNumber,
				Description: "Brewing temperature in Celsius",
				Minimum:     genai.Ptr(float64(MinBrewTemp)),
				Maximum:     genai.Ptr(float64(MaxBrewTemp)),
			},
			"time":         str("Total estimated time e.g. 02:30"),
			"grind":        str("Specific grind setting range"),
			"totalWater":   num("Total volume in ml"),
			"brewingWater": num("Hot water used for brewing in ml"),
			"iceAmount":    num("Ice cubes in server in grams"),
			"ratio":        str("Brew ratio e.g. 1:15"),
			"steps":        {Type: genai.TypeArray, Items: step, MinItems: genai.Ptr[int64](1)},
		},
		Required: []string{"temp", "time", "grind", "totalWater", "brewingWater", "iceAmount", "ratio", "steps"},
	}
}
