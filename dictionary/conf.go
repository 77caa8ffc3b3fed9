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

package dictionary

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

type SourceType string

const (
	SourceTypeFile  SourceType = "file"
	SourceTypeRedis SourceType = "redis"
	SourceTypeMySQL SourceType = "mysql"
	SourceTypeSeed  SourceType = "seed"

	DefaultRedisKey = "vslDictionary"
	DefaultDBTable  = "vsl_dictionary"
)

type DBConf struct {
	Host     string `json:"host" env:"VSL_DICT_DB_HOST"`
	Name     string `json:"name" env:"VSL_DICT_DB_NAME"`
	User     string `json:"user" env:"VSL_DICT_DB_USER"`
	Password string `json:"password" env:"VSL_DICT_DB_PASSWORD"`
	Table    string `json:"table"`
}

type Conf struct {
	SourceType SourceType `json:"sourceType" env:"VSL_DICT_SOURCE_TYPE"`

	// FilePath is a path to a `word = GLOSS` text file
	FilePath string `json:"filePath" env:"VSL_DICT_FILE_PATH"`

	// RedisKey is a hash containing word => gloss pairs
	RedisKey string `json:"redisKey"`

	DB *DBConf `json:"db"`

	// Joiner replaces whitespace in multi-word keys
	Joiner string `json:"joiner"`

	// TimeWords overrides the default list of temporal expressions
	TimeWords []string `json:"timeWords"`
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.SourceType == "" {
		conf.SourceType = SourceTypeFile
		log.Warn().
			Str("sourceType", string(conf.SourceType)).
			Msgf("%s.sourceType not specified, using default", confContext)
	}
	switch conf.SourceType {
	case SourceTypeFile:
		if conf.FilePath == "" {
			return fmt.Errorf("%s.filePath must be specified for source type `file`", confContext)
		}
	case SourceTypeRedis:
		if conf.RedisKey == "" {
			conf.RedisKey = DefaultRedisKey
			log.Warn().
				Str("redisKey", conf.RedisKey).
				Msgf("%s.redisKey not specified, using default", confContext)
		}
	case SourceTypeMySQL:
		if conf.DB == nil {
			return fmt.Errorf("%s.db must be specified for source type `mysql`", confContext)
		}
		if conf.DB.Table == "" {
			conf.DB.Table = DefaultDBTable
			log.Warn().
				Str("table", conf.DB.Table).
				Msgf("%s.db.table not specified, using default", confContext)
		}
	case SourceTypeSeed:
	default:
		return fmt.Errorf("%s.sourceType: unknown value `%s`", confContext, conf.SourceType)
	}
	if conf.Joiner == "" {
		conf.Joiner = DefaultJoiner
	}
	return nil
}
