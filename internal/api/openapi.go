package api

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/hawkcalc/internal/config"
	"github.com/JaimeStill/hawkcalc/pkg/openapi"
	"github.com/JaimeStill/hawkcalc/pkg/routes"
)

var stateEnum = []string{"neutral", "male", "female", "borderline"}

func str(desc string) *openapi.Schema {
	return &openapi.Schema{Type: "string", Description: desc}
}

var schemas = map[string]*openapi.Schema{
	"Inputs": {
		Type:        "object",
		Description: "Raw measurement strings in millimetres",
		Properties: map[string]*openapi.Schema{
			"wing":   {Type: "string", Example: "400"},
			"culmen": {Type: "string", Example: "22"},
			"hallux": {Type: "string", Example: "28"},
		},
	},
	"Range": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"min":   {Type: "number"},
			"max":   {Type: "number"},
			"label": {Type: "string"},
		},
	},
	"Ranges": {
		Type:                 "object",
		Description:          "Accepted range per field (wing, culmen, hallux)",
		AdditionalProperties: openapi.SchemaRef("Range"),
	},
	"Classification": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"score":      {Type: "number", Format: "double"},
			"score_text": str("Score to three decimals"),
			"category":   {Type: "string", Enum: []string{"male", "female", "borderline"}},
			"label":      str("Display label"),
			"message":    str("Explanation of the category"),
			"state":      {Type: "string", Enum: stateEnum},
		},
	},
	"View": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"inputs": openapi.SchemaRef("Inputs"),
			"score":  str("Score text or placeholder"),
			"sex":    str("Sex label or placeholder"),
			"hint":   str("Explanation or guidance"),
			"state":  {Type: "string", Enum: stateEnum},
			"alert":  str("Validation message to show once"),
			"focus":  str("Field to focus"),
		},
	},
	"Action": {
		Type:     "object",
		Required: []string{"kind"},
		Properties: map[string]*openapi.Schema{
			"kind":  {Type: "string", Enum: []string{"calculate", "reset", "edit", "key"}},
			"field": {Type: "string", Enum: []string{"wing", "culmen", "hallux"}},
			"value": str("New field value for edit"),
			"key":   str("Key name for key"),
		},
	},
	"DispatchRequest": {
		Type:     "object",
		Required: []string{"action"},
		Properties: map[string]*openapi.Schema{
			"view":   openapi.SchemaRef("View"),
			"action": openapi.SchemaRef("Action"),
		},
	},
	"CacheStatus": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"state":   {Type: "string", Enum: []string{"idle", "installing", "installed", "activating", "active", "failed"}},
			"active":  {Type: "boolean"},
			"bucket":  str("Current bucket name"),
			"assets":  openapi.ArrayOf(&openapi.Schema{Type: "string"}),
			"buckets": openapi.ArrayOf(&openapi.Schema{Type: "string"}),
		},
	},
	"CacheEntry": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"key":          {Type: "string"},
			"status":       {Type: "integer"},
			"content_type": {Type: "string"},
			"size":         {Type: "integer"},
		},
	},
}

var operations = map[string]*openapi.Operation{
	"GET /ranges": {
		OperationID: "getRanges",
		Summary:     "Accepted measurement ranges",
		Tags:        []string{"calculator"},
		Responses:   map[int]*openapi.Response{200: openapi.ResponseJSON("Field ranges", "Ranges")},
	},
	"POST /calculate": {
		OperationID: "calculate",
		Summary:     "Classify a specimen",
		Tags:        []string{"calculator"},
		RequestBody: openapi.RequestBodyJSON("Inputs", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Classification", "Classification"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			422: openapi.ResponseRef("Unprocessable"),
		},
	},
	"POST /dispatch": {
		OperationID: "dispatch",
		Summary:     "Apply an action to a calculator view",
		Tags:        []string{"calculator"},
		RequestBody: openapi.RequestBodyJSON("DispatchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Next view", "View"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	},
	"GET /cache": {
		OperationID: "getCacheStatus",
		Summary:     "Offline cache status",
		Tags:        []string{"cache"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Cache status", "CacheStatus"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	"GET /cache/entries/{key}": {
		OperationID: "getCacheEntry",
		Summary:     "Metadata for one cached asset",
		Tags:        []string{"cache"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("key", "Asset path without the leading slash")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Cache entry", "CacheEntry"),
			404: openapi.ResponseRef("NotFound"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
}

// NewSpec builds the OpenAPI document for the API module.
func NewSpec(cfg *config.Config) (*openapi.Spec, error) {
	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(schemas)

	for route, op := range operations {
		method, path, _ := strings.Cut(route, " ")
		if err := spec.AddOperation(method, path, op); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func openAPIRoutes(spec *openapi.Spec) (routes.Group, error) {
	body, err := openapi.MarshalJSON(spec)
	if err != nil {
		return routes.Group{}, fmt.Errorf("marshal openapi: %w", err)
	}
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/openapi.json", Handler: openapi.ServeSpec(body)},
		},
	}, nil
}
