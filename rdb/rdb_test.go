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

package rdb

import (
	"os"
	"testing"
	"time"
	"vslnlp/gloss"
	"vslnlp/merror"
	"vslnlp/results"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	results.RegisterGobTypes()
	RegisterArgsGobTypes()
	os.Exit(m.Run())
}

func TestQueryEncodeDecode(t *testing.T) {
	q := Query{
		Channel: "vslResults:1234",
		Func:    FuncTagAndConvert,
		Args:    TagAndConvertArgs{Text: "Tôi ăn cơm"},
	}
	data, err := q.Encode()
	require.NoError(t, err)
	q2, err := DecodeQuery(data)
	require.NoError(t, err)
	assert.Equal(t, q, q2)
	args, ok := q2.Args.(TagAndConvertArgs)
	assert.True(t, ok)
	assert.Equal(t, "Tôi ăn cơm", args.Text)
}

func TestQueryWithTokensEncodeDecode(t *testing.T) {
	q := Query{
		Func: FuncConvert,
		Args: ConvertArgs{Tokens: []gloss.Token{{Word: "mèo", Tag: gloss.TagNoun}}},
	}
	data, err := q.Encode()
	require.NoError(t, err)
	q2, err := DecodeQuery(data)
	require.NoError(t, err)
	assert.Equal(t, q.Args, q2.Args)
}

func TestDecodeInvalidQuery(t *testing.T) {
	_, err := DecodeQuery([]byte("{\"func\": \"convert\"}"))
	assert.Error(t, err)
}

func TestWorkerResultWithError(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	wr := CreateWorkerResult(
		&results.Conversion{Error: merror.InputError{Msg: "empty text"}},
		t0,
		t0.Add(time.Millisecond),
	)
	assert.True(t, wr.HasUserError)
	assert.Equal(t, time.Millisecond, wr.ProcTime())

	data, err := wr.encode()
	require.NoError(t, err)
	wr2, err := decodeWorkerResult(data)
	require.NoError(t, err)
	assert.True(t, wr2.HasUserError)
	assert.Equal(t, merror.InputError{Msg: "empty text"}, wr2.Value.Err())
	assert.Equal(t, results.ResultTypeConversion, wr2.Value.Type())
}

func TestWorkerResultWithConversion(t *testing.T) {
	buckets := gloss.NewBuckets()
	buckets.Add(gloss.BucketSubject, gloss.Token{Word: "mèo", Tag: gloss.TagNoun})
	wr := CreateWorkerResult(
		&results.Conversion{
			Tokens: []gloss.Token{{Word: "mèo", Tag: gloss.TagNoun}},
			Result: gloss.ConversionResult{
				OriginalSentence:     "mèo",
				SignLanguageSequence: []string{"MÈO"},
				POSStructure:         buckets,
			},
		},
		time.Now(),
		time.Now(),
	)
	assert.False(t, wr.HasUserError)
	data, err := wr.encode()
	require.NoError(t, err)
	wr2, err := decodeWorkerResult(data)
	require.NoError(t, err)
	conv, ok := wr2.Value.(*results.Conversion)
	require.True(t, ok)
	assert.Nil(t, conv.Error)
	assert.Equal(t, []string{"MÈO"}, conv.Result.SignLanguageSequence)
	assert.Equal(t, "mèo", conv.Result.POSStructure[gloss.BucketSubject][0].Word)
}

func TestConfValidateAndDefaults(t *testing.T) {
	conf := &Conf{Host: "localhost"}
	require.NoError(t, conf.ValidateAndDefaults("redis"))
	assert.Equal(t, 6379, conf.Port)
	assert.Equal(t, DefaultQueryChannel, conf.ChannelQuery)
	assert.Equal(t, DefaultResultChannelPrefix, conf.ChannelResultPrefix)
	assert.Equal(t, DefaultQueueKey, conf.QueueKey)
	assert.Equal(t, time.Duration(dfltQueryAnswerTimeoutSecs)*time.Second, conf.QueryAnswerTimeout())
	assert.Equal(t, "localhost:6379", conf.ServerInfo())

	assert.Error(t, (&Conf{}).ValidateAndDefaults("redis"))
}
