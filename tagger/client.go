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

package tagger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"vslnlp/gloss"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/httpclient"
	"github.com/rs/zerolog/log"
)

const (
	dfltRequestTimeoutSecs  = 10
	dfltIdleConnTimeoutSecs = 60
	maxErrorBodySize        = 512
)

var (
	ErrNotConfigured = errors.New("tagger not configured")
)

type Conf struct {
	URL                 string `json:"url" env:"VSL_TAGGER_URL"`
	Tagset              Tagset `json:"tagset"`
	RequestTimeoutSecs  int    `json:"requestTimeoutSecs"`
	IdleConnTimeoutSecs int    `json:"idleConnTimeoutSecs"`

	// CacheDir enables caching of tagging results on disk
	CacheDir string `json:"cacheDir"`
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.URL == "" {
		log.Warn().Msgf("%s.url not specified, text tagging will be unavailable", confContext)
	}
	if conf.Tagset == "" {
		conf.Tagset = TagsetVn
		log.Warn().
			Str("tagset", string(conf.Tagset)).
			Msgf("%s.tagset not specified, using default", confContext)

	} else if !conf.Tagset.Validate() {
		return fmt.Errorf("%s.tagset: unknown value `%s`", confContext, conf.Tagset)
	}
	if conf.RequestTimeoutSecs == 0 {
		conf.RequestTimeoutSecs = dfltRequestTimeoutSecs
		log.Warn().
			Int("value", conf.RequestTimeoutSecs).
			Msgf("%s.requestTimeoutSecs not specified, using default", confContext)
	}
	if conf.IdleConnTimeoutSecs == 0 {
		conf.IdleConnTimeoutSecs = dfltIdleConnTimeoutSecs
	}
	return nil
}

type tagRequest struct {
	Text string `json:"text"`
}

// Client calls an external POS tagging service. The service is expected
// to accept {"text": "..."} and respond with a list of [word, tag] pairs.
type Client struct {
	url        string
	tagset     Tagset
	httpClient *http.Client
	cache      *fileCache
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.url != ""
}

func (c *Client) request(ctx context.Context, text string) ([]gloss.Token, error) {
	body, err := sonic.Marshal(tagRequest{Text: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create tagger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call tagger: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("tagger responded with status %d: %s", resp.StatusCode, msg)
	}
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tagger response: %w", err)
	}
	var pairs [][]string
	if err := sonic.Unmarshal(respBody, &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode tagger response: %w", err)
	}
	ans := make([]gloss.Token, 0, len(pairs))
	for _, p := range pairs {
		if len(p) < 2 || strings.TrimSpace(p[0]) == "" {
			log.Warn().Strs("item", p).Msg("skipping invalid tagger output item")
			continue
		}
		ans = append(ans, gloss.Token{Word: p[0], Tag: c.tagset.Convert(p[1])})
	}
	return ans, nil
}

// TagOrErr tags the provided text. Results are cached if the client
// is configured with a cache directory.
func (c *Client) TagOrErr(ctx context.Context, text string) ([]gloss.Token, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if cached, ok := c.cache.Get(text); ok {
		log.Debug().Str("text", text).Msg("tagger cache hit")
		return cached, nil
	}
	ans, err := c.request(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(text, ans)
	return ans, nil
}

// Tag tags the provided text. Any failure results in an empty
// sequence so callers can treat it as "nothing to convert".
func (c *Client) Tag(ctx context.Context, text string) []gloss.Token {
	ans, err := c.TagOrErr(ctx, text)
	if err != nil {
		log.Warn().Err(err).Str("text", text).Msg("tagging failed")
		return []gloss.Token{}
	}
	return ans
}

func NewClient(conf *Conf) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = httpclient.TransportMaxIdleConns
	transport.MaxConnsPerHost = httpclient.TransportMaxConnsPerHost
	transport.MaxIdleConnsPerHost = httpclient.TransportMaxIdleConnsPerHost
	transport.IdleConnTimeout = time.Duration(conf.IdleConnTimeoutSecs) * time.Second
	tagset := conf.Tagset
	if tagset == "" {
		tagset = TagsetVn
	}
	return &Client{
		url:    conf.URL,
		tagset: tagset,
		httpClient: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
			Timeout:   time.Duration(conf.RequestTimeoutSecs) * time.Second,
			Transport: transport,
		},
		cache: newFileCache(conf.CacheDir),
	}
}
