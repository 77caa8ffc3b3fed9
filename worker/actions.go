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

package worker

import (
	"context"
	"strings"
	"time"
	"vslnlp/gloss"
	"vslnlp/merror"
	"vslnlp/rdb"
	"vslnlp/results"
)

var errEmptyText = merror.InputError{Msg: "text must not be empty"}

func (e *Executor) convertTokens(tokens []gloss.Token) *results.Conversion {
	ans := &results.Conversion{Tokens: tokens}
	res, err := e.converter.Convert(tokens)
	if err != nil {
		ans.Error = merror.Transportable(err)
		return ans
	}
	ans.Result = *res
	return ans
}

func (e *Executor) convert(args rdb.ConvertArgs) *results.Conversion {
	t0 := time.Now()
	ans := e.convertTokens(args.Tokens)
	ans.SetProcessingTime(time.Since(t0))
	return ans
}

func (e *Executor) tagAndConvert(ctx context.Context, args rdb.TagAndConvertArgs) *results.Conversion {
	t0 := time.Now()
	text := strings.TrimSpace(args.Text)
	if text == "" {
		return &results.Conversion{Error: errEmptyText}
	}
	ans := e.convertTokens(e.tagger.Tag(ctx, text))
	ans.Text = text
	ans.SetProcessingTime(time.Since(t0))
	return ans
}

func (e *Executor) analyze(ctx context.Context, args rdb.AnalyzeArgs) *results.TextAnalysis {
	t0 := time.Now()
	text := strings.TrimSpace(args.Text)
	if text == "" {
		return &results.TextAnalysis{Error: errEmptyText}
	}
	tokens := e.tagger.Tag(ctx, text)
	return &results.TextAnalysis{
		Text:       text,
		Tokens:     tokens,
		Statistics: results.NewTagStatistics(tokens, time.Since(t0)),
	}
}
