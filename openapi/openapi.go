// Copyright 2025 The VSL-NLP authors
//   This file is part of VSL-NLP.
//
//  VSL-NLP is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  VSL-NLP is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with VSL-NLP.  If not, see <https://www.gnu.org/licenses/>.

package openapi

const (
	mimeJSON = "application/json"

	tagConversion = "conversion"
	tagDictionary = "dictionary"
	tagService    = "service"
	tagMonitoring = "monitoring"
)

func jsonBody(descr, schema string) *RequestBody {
	return &RequestBody{
		Description: descr,
		Required:    true,
		Content: map[string]MediaType{
			mimeJSON: {Schema: SchemaRef{Ref: ref(schema)}},
		},
	}
}

func jsonResponse(descr, schema string) MethodResponse {
	return MethodResponse{
		Description: descr,
		Content: map[string]MediaType{
			mimeJSON: {Schema: SchemaRef{Ref: ref(schema)}},
		},
	}
}

func errorResponse(descr string) MethodResponse {
	return jsonResponse(descr, "Error")
}

func NewResponse(ver, url string) *Response {
	paths := make(map[string]Methods)

	paths["/convert-sign-language"] = Methods{
		Post: &Method{
			Summary:     "Convert a sentence",
			Description: "Tags a Vietnamese sentence and converts it into a sequence of sign language glosses ordered by the time-subject-object-verb strategy.",
			OperationID: "ConvertText",
			Tags:        []string{tagConversion},
			RequestBody: jsonBody("a sentence to convert", "TextRequest"),
			Responses: MethodResponses{
				"200": jsonResponse("conversion result", "Conversion"),
				"400": errorResponse("empty text or invalid request body"),
				"503": errorResponse("tagger not configured or dictionary not loaded yet"),
			},
		},
	}

	paths["/convert"] = Methods{
		Post: &Method{
			Summary:     "Convert tagged words",
			Description: "Converts words with already known part-of-speech tags. No tagger is involved.",
			OperationID: "Convert",
			Tags:        []string{tagConversion},
			RequestBody: jsonBody("tagged words", "TokensRequest"),
			Responses: MethodResponses{
				"200": jsonResponse("conversion result", "Conversion"),
				"400": errorResponse("missing tokens or invalid request body"),
				"503": errorResponse("dictionary not loaded yet"),
			},
		},
	}

	paths["/analyze"] = Methods{
		Post: &Method{
			Summary:     "Tag a text",
			Description: "Returns part-of-speech tags of a text together with tag statistics.",
			OperationID: "Analyze",
			Tags:        []string{tagConversion},
			RequestBody: jsonBody("a text to analyze", "TextRequest"),
			Responses: MethodResponses{
				"200": jsonResponse("tagged text", "TextAnalysis"),
				"400": errorResponse("empty text or invalid request body"),
				"503": errorResponse("tagger not configured"),
			},
		},
	}

	paths["/sign-dictionary-info"] = Methods{
		Get: &Method{
			Description: "Shows size, word categories and sample entries of the currently loaded sign dictionary.",
			OperationID: "DictionaryInfo",
			Tags:        []string{tagDictionary},
			Responses: MethodResponses{
				"200": jsonResponse("dictionary overview", "DictionaryInfo"),
				"503": errorResponse("dictionary not loaded yet"),
			},
		},
	}

	paths["/tools/reload-dictionary"] = Methods{
		Post: &Method{
			Description: "Reloads the sign dictionary from its configured source and notifies all the workers. On failure, the current dictionary stays in use.",
			OperationID: "ReloadDictionary",
			Tags:        []string{tagDictionary},
			Responses: MethodResponses{
				"200": jsonResponse("reload summary", "ReloadResult"),
				"401": errorResponse("missing or invalid authentication token"),
				"500": errorResponse("failed to load the source"),
				"503": errorResponse("no dictionary source configured"),
			},
		},
	}

	paths["/health"] = Methods{
		Get: &Method{
			Description: "Reports readiness of the dictionary and the tagger.",
			OperationID: "Health",
			Tags:        []string{tagService},
			Responses: MethodResponses{
				"200": jsonResponse("service status", "Health"),
			},
		},
	}

	paths["/examples"] = Methods{
		Get: &Method{
			Description: "Lists example sentences suitable for trying the conversion.",
			OperationID: "Examples",
			Tags:        []string{tagService},
			Parameters: []Parameter{
				{
					Name:        "limit",
					In:          "query",
					Description: "maximum number of examples",
					Required:    false,
					Schema: ParamSchema{
						Type:    "integer",
						Default: 5,
					},
				},
			},
			Responses: MethodResponses{
				"200": jsonResponse("example sentences", "Examples"),
				"400": errorResponse("invalid limit"),
			},
		},
	}

	spanParam := Parameter{
		Name:        "span",
		In:          "query",
		Description: "either all the logged jobs (`total`) or only the most recent ones (`recent`)",
		Required:    false,
		Schema: ParamSchema{
			Type:    "string",
			Enum:    []string{"total", "recent"},
			Default: "recent",
		},
	}

	paths["/monitoring/workers-load"] = Methods{
		Get: &Method{
			Description: "Shows summarized load of all the workers.",
			OperationID: "WorkersLoad",
			Tags:        []string{tagMonitoring},
			Parameters:  []Parameter{spanParam},
			Responses: MethodResponses{
				"200": {Description: "load summary"},
			},
		},
	}

	paths["/monitoring/workers-load/{workerId}"] = Methods{
		Get: &Method{
			Description: "Shows load of a single worker.",
			OperationID: "SingleWorkerLoad",
			Tags:        []string{tagMonitoring},
			Parameters: []Parameter{
				{
					Name:        "workerId",
					In:          "path",
					Description: "an ID of a worker",
					Required:    true,
					Schema:      ParamSchema{Type: "string"},
				},
				spanParam,
			},
			Responses: MethodResponses{
				"200": {Description: "load summary"},
			},
		},
	}

	paths["/monitoring/jobs"] = Methods{
		Get: &Method{
			Description: "Lists recently finished jobs.",
			OperationID: "Jobs",
			Tags:        []string{tagMonitoring},
			Parameters: []Parameter{
				{
					Name:        "ago",
					In:          "query",
					Description: "how far to the past to look (e.g. `30m`, `2h`)",
					Required:    false,
					Schema: ParamSchema{
						Type:    "string",
						Default: "1h",
					},
				},
			},
			Responses: MethodResponses{
				"200": {Description: "list of jobs"},
				"422": errorResponse("invalid duration"),
			},
		},
	}

	return &Response{
		OpenAPI: "3.1.0",
		Info: Info{
			Title:       "VSL-NLP - Vietnamese to sign language glosses",
			Description: "Converts Vietnamese sentences into sequences of Vietnamese Sign Language glosses",
			Version:     ver,
		},
		Servers: []Server{
			{URL: url},
		},
		Paths: paths,
		Components: Components{
			Schemas: createSchemas(),
		},
	}
}
