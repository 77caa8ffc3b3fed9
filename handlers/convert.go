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

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"vslnlp/gloss"
	"vslnlp/rdb"
	"vslnlp/results"
	"vslnlp/tagger"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

var (
	errMissingText   = errors.New("missing `text` in request body")
	errMissingTokens = errors.New("missing `tokens` in request body")
)

type textRequest struct {
	Text string `json:"text"`
} // @name TextRequest

type tokensRequest struct {
	Tokens []gloss.Token `json:"tokens"`
} // @name TokensRequest

// taggerReadyOrFail writes 503 in case the text endpoints
// cannot tag their input
func (a *Actions) taggerReadyOrFail(ctx *gin.Context) bool {
	if a.tagger == nil || !a.tagger.IsConfigured() {
		uniresp.RespondWithErrorJSON(ctx, tagger.ErrNotConfigured, http.StatusServiceUnavailable)
		return false
	}
	return true
}

func decodeTextOrFail(ctx *gin.Context) (string, bool) {
	var req textRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return "", false
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		uniresp.RespondWithErrorJSON(ctx, errMissingText, http.StatusBadRequest)
		return "", false
	}
	return text, true
}

// ConvertText godoc
// @Summary      ConvertText
// @Description  Tag Vietnamese text and convert it into a sequence of sign language glosses (SOV order, time expressions first).
// @Accept       json
// @Produce      json
// @Param        request body textRequest true "text to convert"
// @Success      200 {object} results.ConversionResponse
// @Router       /convert-sign-language [post]
func (a *Actions) ConvertText(ctx *gin.Context) {
	if !a.taggerReadyOrFail(ctx) {
		return
	}
	text, ok := decodeTextOrFail(ctx)
	if !ok {
		return
	}
	rawResult := a.publishAndWait(ctx, rdb.Query{
		Func: rdb.FuncTagAndConvert,
		Args: rdb.TagAndConvertArgs{Text: text},
	})
	if rawResult == nil {
		return
	}
	result, ok := TypedOrRespondError[*results.Conversion](ctx, rawResult)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}

// Convert godoc
// @Summary      Convert
// @Description  Convert already tagged words (UD tags) into a sequence of sign language glosses.
// @Accept       json
// @Produce      json
// @Param        request body tokensRequest true "tagged words"
// @Success      200 {object} results.ConversionResponse
// @Router       /convert [post]
func (a *Actions) Convert(ctx *gin.Context) {
	var req tokensRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	if req.Tokens == nil {
		uniresp.RespondWithErrorJSON(ctx, errMissingTokens, http.StatusBadRequest)
		return
	}
	rawResult := a.publishAndWait(ctx, rdb.Query{
		Func: rdb.FuncConvert,
		Args: rdb.ConvertArgs{Tokens: req.Tokens},
	})
	if rawResult == nil {
		return
	}
	result, ok := TypedOrRespondError[*results.Conversion](ctx, rawResult)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}

// Analyze godoc
// @Summary      Analyze
// @Description  Tag Vietnamese text with parts of speech and provide tagging statistics.
// @Accept       json
// @Produce      json
// @Param        request body textRequest true "text to analyze"
// @Success      200 {object} results.TextAnalysisResponse
// @Router       /analyze [post]
func (a *Actions) Analyze(ctx *gin.Context) {
	if !a.taggerReadyOrFail(ctx) {
		return
	}
	text, ok := decodeTextOrFail(ctx)
	if !ok {
		return
	}
	rawResult := a.publishAndWait(ctx, rdb.Query{
		Func: rdb.FuncAnalyze,
		Args: rdb.AnalyzeArgs{Text: text},
	})
	if rawResult == nil {
		return
	}
	result, ok := TypedOrRespondError[*results.TextAnalysis](ctx, rawResult)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}
