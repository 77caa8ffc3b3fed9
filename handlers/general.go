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
	"fmt"
	"net/http"
	"vslnlp/general"

	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

const (
	healthStatusHealthy  = "healthy"
	healthStatusDegraded = "degraded"
)

var exampleSentences = []string{
	"Tôi đang học Công nghệ Thông tin tại Đại học Khoa học Tự nhiên.",
	"Hôm nay trời đẹp, chúng ta đi dạo công viên nhé.",
	"Việt Nam là một đất nước xinh đẹp và giàu truyền thống.",
	"Sinh viên trường Đại học Khoa học Tự Nhiên rất năng động.",
	"Hà Nội là thủ đô của Việt Nam.",
}

type healthResponse struct {
	Status           string              `json:"status"`
	TaggerConfigured bool                `json:"taggerConfigured"`
	DictionaryLoaded bool                `json:"dictionaryLoaded"`
	DictionarySize   int                 `json:"dictionarySize"`
	Version          general.VersionInfo `json:"version"`
} // @name HealthResponse

type examplesResponse struct {
	Examples []string `json:"examples"`
} // @name ExamplesResponse

// Health godoc
// @Summary      Health
// @Description  Report status of the converter components.
// @Produce      json
// @Success      200 {object} healthResponse
// @Router       /health [get]
func (a *Actions) Health(ctx *gin.Context) {
	ans := healthResponse{
		TaggerConfigured: a.tagger != nil && a.tagger.IsConfigured(),
		DictionaryLoaded: a.store.Ready(),
		DictionarySize:   a.store.Len(),
		Version:          a.version,
	}
	if ans.DictionaryLoaded && ans.TaggerConfigured {
		ans.Status = healthStatusHealthy

	} else {
		ans.Status = healthStatusDegraded
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// Examples godoc
// @Summary      Examples
// @Description  Get example Vietnamese sentences suitable for conversion.
// @Produce      json
// @Param        limit query int false "maximum number of examples" minimum(1) default(5)
// @Success      200 {object} examplesResponse
// @Router       /examples [get]
func (a *Actions) Examples(ctx *gin.Context) {
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", len(exampleSentences))
	if !ok {
		return
	}
	if limit < 1 {
		uniresp.RespondWithErrorJSON(
			ctx, fmt.Errorf("invalid limit %d", limit), http.StatusBadRequest)
		return
	}
	ans := examplesResponse{Examples: exampleSentences}
	if limit < len(exampleSentences) {
		ans.Examples = exampleSentences[:limit]
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// ServerInfo provides basic information about the service
func (a *Actions) ServerInfo(ctx *gin.Context) {
	uniresp.WriteJSONResponse(
		ctx.Writer,
		map[string]any{
			"name":    "VSL-NLP - Vietnamese to sign language gloss converter",
			"version": a.version,
		},
	)
}
