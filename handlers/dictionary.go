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
	"vslnlp/dictionary"
	"vslnlp/gloss"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type dictionaryInfoResponse struct {
	dictionary.Info
	ConversionSystem string                `json:"conversionSystem"`
	ReorderStrategy  gloss.ReorderStrategy `json:"reorderStrategy"`
} // @name DictionaryInfoResponse

type reloadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	dictionary.ReloadResult
	Broadcast bool `json:"broadcast"`
} // @name ReloadResponse

// DictionaryInfo godoc
// @Summary      DictionaryInfo
// @Description  Get information about the currently loaded sign language dictionary.
// @Produce      json
// @Success      200 {object} dictionaryInfoResponse
// @Router       /sign-dictionary-info [get]
func (a *Actions) DictionaryInfo(ctx *gin.Context) {
	if !a.store.Ready() {
		uniresp.RespondWithErrorJSON(ctx, gloss.ErrNotInitialized, http.StatusServiceUnavailable)
		return
	}
	uniresp.WriteJSONResponse(
		ctx.Writer,
		dictionaryInfoResponse{
			Info:             a.store.Info(),
			ConversionSystem: gloss.ConversionDirection,
			ReorderStrategy:  gloss.DefaultReorderStrategy,
		},
	)
}

// ReloadDictionary godoc
// @Summary      ReloadDictionary
// @Description  Reload the sign language dictionary from its source. Other processes are notified via Redis (if configured).
// @Produce      json
// @Success      200 {object} reloadResponse
// @Router       /tools/reload-dictionary [post]
func (a *Actions) ReloadDictionary(ctx *gin.Context) {
	res, err := a.store.Reload(ctx.Request.Context())
	if errors.Is(err, dictionary.ErrNoSource) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusServiceUnavailable)
		return

	} else if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	ans := reloadResponse{
		Success:      true,
		Message:      "Dictionary reloaded successfully",
		ReloadResult: res,
	}
	if a.broadcaster != nil {
		if err := a.broadcaster.PublishDictionaryReload(); err != nil {
			log.Error().Err(err).Msg("failed to notify workers about dictionary reload")

		} else {
			ans.Broadcast = true
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}
