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

import (
	"vslnlp/gloss"

	"github.com/czcorpus/cnc-gokit/collections"
)

const (
	schemaPrefix = "#/components/schemas/"
)

func ref(name string) string {
	return schemaPrefix + name
}

func tagValues() []string {
	return collections.SliceMap(
		[]gloss.Tag{
			gloss.TagNoun, gloss.TagPropn, gloss.TagVerb, gloss.TagAdj,
			gloss.TagAdv, gloss.TagNum, gloss.TagPron, gloss.TagAdp,
			gloss.TagPunct, gloss.TagCconj, gloss.TagSconj, gloss.TagDet,
			gloss.TagPart, gloss.TagIntj, gloss.TagAux, gloss.TagX,
		},
		func(t gloss.Tag, i int) string {
			return string(t)
		},
	)
}

func bucketProperties() ObjectProperties {
	ans := make(ObjectProperties)
	for _, b := range gloss.ReorderSequence {
		ans[b.String()] = ObjectProperty{
			Type:  "array",
			Items: &arrayItem{Type: "string"},
		}
	}
	return ans
}

func bucketSizeProperties() ObjectProperties {
	ans := make(ObjectProperties)
	for _, name := range []string{
		"subjects", "verbs", "objects", "adjectives", "timeExpressions",
		"others", "pronouns", "adverbs", "numbers", "prepositions",
	} {
		ans[name] = ObjectProperty{Type: "integer"}
	}
	return ans
}

func createSchemas() ObjectProperties {
	ans := make(ObjectProperties)
	ans["Token"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"word": ObjectProperty{Type: "string"},
			"tag": ObjectProperty{
				Type: "string",
				Enum: tagValues(),
			},
		},
	}
	ans["TextRequest"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"text": ObjectProperty{
				Type:        "string",
				Description: "a Vietnamese sentence",
			},
		},
	}
	ans["TokensRequest"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"tokens": ObjectProperty{
				Type:        "array",
				Items:       &arrayItem{Ref: ref("Token")},
				Description: "already tagged words; `[word, tag]` pairs are accepted too",
			},
		},
	}
	ans["StructuralReport"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"wordCount":         ObjectProperty{Type: "integer"},
			"reorderedCount":    ObjectProperty{Type: "integer"},
			"dictionaryHits":    ObjectProperty{Type: "integer"},
			"conversionApplied": ObjectProperty{Type: "boolean"},
			"processingTime":    ObjectProperty{Type: "number"},
			"structureChanges": ObjectProperty{
				Type:       "object",
				Properties: bucketSizeProperties(),
			},
			"reorderStrategy": ObjectProperty{Ref: ref("ReorderStrategy")},
		},
	}
	ans["ReorderStrategy"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"originalOrder":      ObjectProperty{Type: "string"},
			"signLanguageOrder":  ObjectProperty{Type: "string"},
			"timePlacement":      ObjectProperty{Type: "string"},
			"adjectivePlacement": ObjectProperty{Type: "string"},
		},
	}
	ans["WordDetail"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"index":        ObjectProperty{Type: "integer"},
			"originalWord": ObjectProperty{Type: "string"},
			"posTag":       ObjectProperty{Type: "string"},
			"hasDictionaryDefinition": ObjectProperty{
				Type: "boolean",
			},
			"dictionaryAction": ObjectProperty{Type: "string"},
		},
	}
	ans["Conversion"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"success":          ObjectProperty{Type: "boolean"},
			"text":             ObjectProperty{Type: "string"},
			"originalSentence": ObjectProperty{Type: "string"},
			"posAnalysis": ObjectProperty{
				Type:  "array",
				Items: &arrayItem{Ref: ref("Token")},
			},
			"signLanguageSequence": ObjectProperty{
				Type:  "array",
				Items: &arrayItem{Type: "string"},
			},
			"structureAnalysis": ObjectProperty{Ref: ref("StructuralReport")},
			"posStructure": ObjectProperty{
				Type:       "object",
				Properties: bucketProperties(),
			},
			"wordDetails": ObjectProperty{
				Type:  "array",
				Items: &arrayItem{Ref: ref("WordDetail")},
			},
			"reorderStrategy": ObjectProperty{Type: "string"},
			"resultType": ObjectProperty{
				Type: "string",
				Enum: []string{"conversion"},
			},
			"error": ObjectProperty{Type: "string"},
		},
	}
	ans["TextAnalysis"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"success": ObjectProperty{Type: "boolean"},
			"text":    ObjectProperty{Type: "string"},
			"results": ObjectProperty{
				Type:  "array",
				Items: &arrayItem{Ref: ref("Token")},
			},
			"statistics": ObjectProperty{
				Type: "object",
				Properties: ObjectProperties{
					"totalWords":     ObjectProperty{Type: "integer"},
					"uniqueTags":     ObjectProperty{Type: "integer"},
					"processingTime": ObjectProperty{Type: "number"},
					"wordsPerSecond": ObjectProperty{Type: "number"},
					"tagDistribution": ObjectProperty{
						Type:                 "object",
						AdditionalProperties: &AdditionalProperty{Type: "integer"},
					},
				},
			},
			"resultType": ObjectProperty{
				Type: "string",
				Enum: []string{"textAnalysis"},
			},
			"error": ObjectProperty{Type: "string"},
		},
	}
	ans["DictionaryInfo"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"totalEntries": ObjectProperty{Type: "integer"},
			"categories": ObjectProperty{
				Type:                 "object",
				AdditionalProperties: &AdditionalProperty{Type: "integer"},
			},
			"sampleWords": ObjectProperty{
				Type: "object",
				AdditionalProperties: &AdditionalProperty{
					Type:  "array",
					Items: &arrayItem{Type: "string"},
				},
			},
			"dictionarySource": ObjectProperty{Type: "string"},
			"usingSeed":        ObjectProperty{Type: "boolean"},
			"revision":         ObjectProperty{Type: "integer"},
			"loadedAt":         ObjectProperty{Type: "string"},
			"conversionSystem": ObjectProperty{Type: "string"},
			"reorderStrategy":  ObjectProperty{Ref: ref("ReorderStrategy")},
		},
	}
	ans["ReloadResult"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"success":   ObjectProperty{Type: "boolean"},
			"message":   ObjectProperty{Type: "string"},
			"oldCount":  ObjectProperty{Type: "integer"},
			"newCount":  ObjectProperty{Type: "integer"},
			"change":    ObjectProperty{Type: "integer"},
			"source":    ObjectProperty{Type: "string"},
			"usingSeed": ObjectProperty{Type: "boolean"},
			"revision":  ObjectProperty{Type: "integer"},
			"broadcast": ObjectProperty{Type: "boolean"},
		},
	}
	ans["Health"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"status": ObjectProperty{
				Type: "string",
				Enum: []string{"healthy", "degraded"},
			},
			"taggerConfigured": ObjectProperty{Type: "boolean"},
			"dictionaryLoaded": ObjectProperty{Type: "boolean"},
			"dictionarySize":   ObjectProperty{Type: "integer"},
			"version": ObjectProperty{
				Type: "object",
				Properties: ObjectProperties{
					"version":   ObjectProperty{Type: "string"},
					"buildDate": ObjectProperty{Type: "string"},
					"gitCommit": ObjectProperty{Type: "string"},
				},
			},
		},
	}
	ans["Examples"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"examples": ObjectProperty{
				Type:  "array",
				Items: &arrayItem{Type: "string"},
			},
		},
	}
	ans["Error"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"error": ObjectProperty{Type: "string"},
		},
	}
	return ans
}
