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
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"vslnlp/cnf"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/swaggo/swag"
)

func findHTTPProtocol(req *http.Request) string {
	if prot := req.Header.Get("x-forwarded-proto"); prot != "" {
		return prot
	}
	if req.TLS != nil {
		return "https"
	}
	return "http"
}

func findHTTPServer(req *http.Request) string {
	if serv := req.Header.Get("x-forwarded-host"); serv != "" {
		return serv
	}
	return req.Host
}

func findPath(req *http.Request) string {
	if path := req.Header.Get("x-original-path"); path != "" {
		return path
	}
	return req.URL.Path
}

// findCurrentPublicURL prefers the configured public URL in case
// the request came through it. Otherwise, the server root as seen
// by the client is returned.
func findCurrentPublicURL(conf *cnf.Conf, req *http.Request) string {
	root := fmt.Sprintf("%s://%s", findHTTPProtocol(req), findHTTPServer(req))
	curr, err := url.JoinPath(root, findPath(req))
	if err != nil {
		log.Warn().Err(err).Msg("cannot determine current public URL")
		return conf.PublicURL
	}
	if conf.PublicURL != "" && strings.HasPrefix(curr, conf.PublicURL) {
		return conf.PublicURL
	}
	return root
}

func MkHandleRequest(conf *cnf.Conf, ver string) func(ctx *gin.Context) {
	return func(ctx *gin.Context) {
		publicURL := findCurrentPublicURL(conf, ctx.Request)
		ans := NewResponse(ver, publicURL)
		uniresp.WriteJSONResponse(ctx.Writer, ans)
	}
}

// ----

type swaggerDoc struct {
	version   string
	publicURL string
}

func (doc *swaggerDoc) ReadDoc() string {
	data, err := sonic.Marshal(NewResponse(doc.version, doc.publicURL))
	if err != nil {
		log.Error().Err(err).Msg("failed to encode API documentation")
		return "{}"
	}
	return string(data)
}

// RegisterSwaggerDoc makes the API documentation available to
// the Swagger UI handler. It must be called at most once.
func RegisterSwaggerDoc(ver, publicURL string) {
	swag.Register(swag.Name, &swaggerDoc{version: ver, publicURL: publicURL})
}
