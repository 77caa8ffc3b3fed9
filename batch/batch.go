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

package batch

import (
	"fmt"
	"io"
	"vslnlp/gloss"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/tomachalek/vertigo/v5"
)

type sentenceRecord struct {
	Sentence int `json:"sentence"`
	Line     int `json:"line"`
	gloss.ConversionResult
}

type Stats struct {
	NumSentences int `json:"numSentences"`
	NumTokens    int `json:"numTokens"`
	NumDictHits  int `json:"numDictHits"`
}

// SentenceProcessor collects tokens of individual sentences
// from a vertical file and writes their conversions as JSON lines.
type SentenceProcessor struct {
	conf      *Conf
	converter *gloss.Converter
	out       io.Writer
	curr      []gloss.Token
	startLine int
	stats     Stats
}

func (sp *SentenceProcessor) flush() error {
	if len(sp.curr) == 0 {
		return nil
	}
	res, err := sp.converter.Convert(sp.curr)
	if err != nil {
		return fmt.Errorf("failed to convert sentence at line %d: %w", sp.startLine, err)
	}
	sp.stats.NumSentences++
	sp.stats.NumTokens += len(sp.curr)
	sp.stats.NumDictHits += res.StructureAnalysis.DictionaryHits
	data, err := sonic.Marshal(sentenceRecord{
		Sentence:         sp.stats.NumSentences,
		Line:             sp.startLine,
		ConversionResult: *res,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sentence at line %d: %w", sp.startLine, err)
	}
	if _, err := sp.out.Write(append(data, '\n')); err != nil {
		return err
	}
	sp.curr = sp.curr[:0]
	return nil
}

func (sp *SentenceProcessor) ProcToken(token *vertigo.Token, line int, err error) error {
	if err != nil {
		return err
	}
	if len(sp.curr) == 0 {
		sp.startLine = line
	}
	// `word` is separated in vertigo so the attribute index is shifted
	var rawTag string
	if len(token.Attrs) >= sp.conf.TagColumn {
		rawTag = token.Attrs[sp.conf.TagColumn-1]

	} else {
		log.Warn().Int("line", line).Msg("missing tag column, using X")
	}
	sp.curr = append(sp.curr, gloss.Token{Word: token.Word, Tag: sp.conf.Tagset.Convert(rawTag)})
	return nil
}

func (sp *SentenceProcessor) ProcStruct(strc *vertigo.Structure, line int, err error) error {
	if err != nil {
		return err
	}
	if strc.Name == sp.conf.SentenceStruct {
		// an unclosed previous sentence
		return sp.flush()
	}
	return nil
}

func (sp *SentenceProcessor) ProcStructClose(strc *vertigo.StructureClose, line int, err error) error {
	if err != nil {
		return err
	}
	if strc.Name == sp.conf.SentenceStruct {
		return sp.flush()
	}
	return nil
}

func (sp *SentenceProcessor) Stats() Stats {
	return sp.stats
}

func NewSentenceProcessor(conf *Conf, converter *gloss.Converter, out io.Writer) *SentenceProcessor {
	return &SentenceProcessor{
		conf:      conf,
		converter: converter,
		out:       out,
		curr:      make([]gloss.Token, 0, 50),
	}
}

// ConvertFile converts all the sentences of a vertical file and
// writes one JSON-encoded conversion per line to `out`.
func ConvertFile(vertPath string, conf *Conf, converter *gloss.Converter, out io.Writer) (Stats, error) {
	pc := &vertigo.ParserConf{
		InputFilePath:         vertPath,
		Encoding:              "utf-8",
		StructAttrAccumulator: "comb",
	}
	proc := NewSentenceProcessor(conf, converter, out)
	if err := vertigo.ParseVerticalFile(pc, proc); err != nil {
		return proc.Stats(), fmt.Errorf("failed to process vertical file %s: %w", vertPath, err)
	}
	// tokens outside of any sentence structure
	if err := proc.flush(); err != nil {
		return proc.Stats(), err
	}
	log.Info().
		Str("file", vertPath).
		Int("numSentences", proc.stats.NumSentences).
		Int("numTokens", proc.stats.NumTokens).
		Msg("vertical file converted")
	return proc.Stats(), nil
}
