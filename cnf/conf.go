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

package cnf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"vslnlp/batch"
	"vslnlp/dictionary"
	"vslnlp/monitoring"
	"vslnlp/rdb"
	"vslnlp/tagger"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"
)

const (
	dfltServerWriteTimeoutSecs = 30
	dfltServerReadTimeoutSecs  = 10
	dfltListenPort             = 8080
	dfltJobTimeoutSecs         = 30
	dfltMaxNumConcurrentJobs   = 4
	dfltTimeZone               = "Asia/Ho_Chi_Minh"
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string           `json:"listenAddress" env:"VSL_LISTEN_ADDRESS"`
	PublicURL              string           `json:"publicUrl" env:"VSL_PUBLIC_URL"`
	ListenPort             int              `json:"listenPort" env:"VSL_LISTEN_PORT"`
	ServerReadTimeoutSecs  int              `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int              `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string         `json:"corsAllowedOrigins"`
	AuthHeaderName         string           `json:"authHeaderName"`
	AuthTokens             []string         `json:"authTokens" env:"VSL_AUTH_TOKENS"`
	LogFile                string           `json:"logFile" env:"VSL_LOG_FILE"`
	LogLevel               logging.LogLevel `json:"logLevel" env:"VSL_LOG_LEVEL"`
	TimeZone               string           `json:"timeZone" env:"VSL_TIME_ZONE"`

	// APIDocsURLPath is appended to PublicURL in the API documentation
	// in case the server runs behind a proxy with a path prefix
	APIDocsURLPath string `json:"apiDocsUrlPath"`

	// Redis is optional. Without it, all the jobs run
	// within the API server process.
	Redis *rdb.Conf `json:"redis"`

	Dictionary           *dictionary.Conf `json:"dictionary"`
	Tagger               *tagger.Conf     `json:"tagger"`
	Monitoring           *monitoring.Conf `json:"monitoring"`
	JobTimeoutSecs       int              `json:"jobTimeoutSecs"`
	MaxNumConcurrentJobs int              `json:"maxNumConcurrentJobs"`

	// Batch describes input files for the `batch` action
	Batch *batch.Conf `json:"batch"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

func (conf *Conf) UsesRedis() bool {
	return conf.Redis != nil
}

func (conf *Conf) JobTimeout() time.Duration {
	return time.Duration(conf.JobTimeoutSecs) * time.Second
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call ValidateAndDefaults()
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

// LoadConfig reads a JSON configuration file. Values marked
// with the `env` tag can be overridden by environment variables.
func LoadConfig(path string) (*Conf, error) {
	if path == "" {
		return nil, fmt.Errorf("cannot load config - path not specified")
	}
	var conf Conf
	if err := cleanenv.ReadConfig(path, &conf); err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	conf.srcPath = path
	return &conf, nil
}

func (conf *Conf) validateAndDefaults() error {
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s:%d", conf.ListenAddress, conf.ListenPort)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if len(conf.AuthTokens) > 0 && conf.AuthHeaderName == "" {
		return fmt.Errorf("authTokens specified but authHeaderName is empty")
	}
	if conf.JobTimeoutSecs <= 0 {
		conf.JobTimeoutSecs = dfltJobTimeoutSecs
		log.Warn().Msgf("jobTimeoutSecs not specified, using default: %d", dfltJobTimeoutSecs)
	}
	if conf.MaxNumConcurrentJobs <= 0 {
		conf.MaxNumConcurrentJobs = dfltMaxNumConcurrentJobs
		log.Warn().Msgf(
			"maxNumConcurrentJobs not specified, using default: %d",
			dfltMaxNumConcurrentJobs,
		)
	}
	if conf.Redis != nil {
		if err := conf.Redis.ValidateAndDefaults("redis"); err != nil {
			return err
		}
		if conf.Redis.QueryAnswerTimeoutSecs < conf.JobTimeoutSecs {
			log.Warn().
				Int("queryAnswerTimeoutSecs", conf.Redis.QueryAnswerTimeoutSecs).
				Int("jobTimeoutSecs", conf.JobTimeoutSecs).
				Msg("server may stop waiting for jobs before they time out")
		}
	}
	if err := conf.Dictionary.ValidateAndDefaults("dictionary"); err != nil {
		return err
	}
	if conf.Dictionary.SourceType == dictionary.SourceTypeRedis && conf.Redis == nil {
		return fmt.Errorf("dictionary.sourceType `redis` requires the `redis` section")
	}
	if conf.Tagger == nil {
		conf.Tagger = &tagger.Conf{}
	}
	if err := conf.Tagger.ValidateAndDefaults("tagger"); err != nil {
		return err
	}
	if conf.Batch == nil {
		conf.Batch = &batch.Conf{}
	}
	if err := conf.Batch.ValidateAndDefaults("batch"); err != nil {
		return err
	}
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}

// ValidateAndDefaults checks the configuration and fills in default
// values. Invalid configuration terminates the process.
func ValidateAndDefaults(conf *Conf) {
	if err := conf.validateAndDefaults(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
}
