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
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	dfltQueryAnswerTimeoutSecs = 60
)

type Conf struct {
	Host                   string `json:"host" env:"VSL_REDIS_HOST"`
	Port                   int    `json:"port" env:"VSL_REDIS_PORT"`
	DB                     int    `json:"db" env:"VSL_REDIS_DB"`
	Password               string `json:"password" env:"VSL_REDIS_PASSWORD"`
	ChannelQuery           string `json:"channelQuery"`
	ChannelResultPrefix    string `json:"channelResultPrefix"`
	QueueKey               string `json:"queueKey"`
	QueryAnswerTimeoutSecs int    `json:"queryAnswerTimeoutSecs"`
}

func (conf *Conf) ServerInfo() string {
	return fmt.Sprintf("%s:%d", conf.Host, conf.Port)
}

func (conf *Conf) QueryAnswerTimeout() time.Duration {
	return time.Duration(conf.QueryAnswerTimeoutSecs) * time.Second
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf.Host == "" {
		return fmt.Errorf("%s.host: missing Redis host", confContext)
	}
	if conf.Port == 0 {
		conf.Port = 6379
		log.Warn().
			Int("port", conf.Port).
			Msgf("%s.port not specified, using default", confContext)
	}
	if conf.ChannelQuery == "" {
		conf.ChannelQuery = DefaultQueryChannel
		log.Warn().
			Str("channel", conf.ChannelQuery).
			Msgf("%s.channelQuery not specified, using default", confContext)
	}
	if conf.ChannelResultPrefix == "" {
		conf.ChannelResultPrefix = DefaultResultChannelPrefix
		log.Warn().
			Str("channel", conf.ChannelResultPrefix).
			Msgf("%s.channelResultPrefix not specified, using default", confContext)
	}
	if conf.QueueKey == "" {
		conf.QueueKey = DefaultQueueKey
	}
	if conf.QueryAnswerTimeoutSecs <= 0 {
		conf.QueryAnswerTimeoutSecs = dfltQueryAnswerTimeoutSecs
		log.Warn().
			Int("value", conf.QueryAnswerTimeoutSecs).
			Msgf("%s.queryAnswerTimeoutSecs not specified, using default", confContext)
	}
	return nil
}
