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

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"vslnlp/batch"
	"vslnlp/cnf"
	"vslnlp/dictionary"
	"vslnlp/general"
	"vslnlp/gloss"
	"vslnlp/monitoring"
	"vslnlp/rdb"
	"vslnlp/results"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	redisConnectionTestTimeout = 120 * time.Second
	shutdownTimeout            = 10 * time.Second
)

var (
	version   string
	buildDate string
	gitCommit string
)

func init() {
	results.RegisterGobTypes()
	rdb.RegisterArgsGobTypes()
}

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

func getEnv(name string) string {
	for _, p := range os.Environ() {
		items := strings.SplitN(p, "=", 2)
		if len(items) == 2 && items[0] == name {
			return items[1]
		}
	}
	return ""
}

func getRequestOrigin(ctx *gin.Context) string {
	currOrigin, ok := ctx.Request.Header["Origin"]
	if ok {
		return currOrigin[0]
	}
	return ""
}

func additionalLogEvents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logging.AddLogEvent(ctx, "userAgent", ctx.Request.UserAgent())
		logging.AddLogEvent(ctx, "workerId", ctx.Param("workerId"))
		ctx.Next()
	}
}

func CORSMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if strings.HasSuffix(ctx.Request.URL.Path, "/openapi") {
			ctx.Header("Access-Control-Allow-Origin", "*")
			ctx.Header("Access-Control-Allow-Methods", "GET")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		} else {
			var allowedOrigin string
			currOrigin := getRequestOrigin(ctx)
			for _, origin := range conf.CorsAllowedOrigins {
				if currOrigin == origin || origin == "*" {
					allowedOrigin = currOrigin
					break
				}
			}
			if allowedOrigin != "" {
				ctx.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
				ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				ctx.Writer.Header().Set(
					"Access-Control-Allow-Headers",
					"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With",
				)
				ctx.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
			}

			if ctx.Request.Method == "OPTIONS" {
				ctx.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		ctx.Next()
	}
}

func AuthRequired(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if len(conf.AuthHeaderName) > 0 && !collections.SliceContains(conf.AuthTokens, ctx.GetHeader(conf.AuthHeaderName)) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ctx.Next()
	}
}

// newDictionary creates a dictionary store and performs the initial
// load. The store is always usable afterwards (possibly with the seed
// mapping only).
func newDictionary(ctx context.Context, conf *cnf.Conf, rc *redis.Client) *dictionary.Store {
	store := dictionary.NewStore(conf.Dictionary.Joiner)
	src, err := dictionary.NewSource(conf.Dictionary, rc)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize dictionary source")
	}
	store.Load(ctx, src)
	return store
}

func newConverter(conf *cnf.Conf, store *dictionary.Store) *gloss.Converter {
	timeWords := gloss.DefaultTimeWords
	if len(conf.Dictionary.TimeWords) > 0 {
		timeWords = conf.Dictionary.TimeWords
	}
	return gloss.NewConverter(store, timeWords)
}

// newStatusWriter provides TimescaleDB writer in case it is configured.
// Otherwise, job statistics are not persisted.
func newStatusWriter(ctx context.Context, conf *cnf.Conf) (monitoring.StatusWriter, service) {
	if !conf.Monitoring.IsTimescaleEnabled() {
		return &monitoring.NullStatusWriter{}, nil
	}
	tsWriter, err := monitoring.NewTimescaleDBWriter(ctx, *conf.Monitoring.DB, conf.TimezoneLocation())
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize TimescaleDB writer, job statistics won't be stored")
		return &monitoring.NullStatusWriter{}, nil
	}
	return tsWriter, tsWriter
}

func runServices(ctx context.Context, services []service) {
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}

func runBatch(conf *cnf.Conf, vertPath string) {
	if vertPath == "" {
		log.Fatal().Msg("missing path to a vertical file")
		return
	}
	ctx := context.Background()
	var rc *redis.Client
	if conf.UsesRedis() {
		radapter := rdb.NewAdapter(conf.Redis, ctx)
		defer radapter.Close()
		rc = radapter.Client()
	}
	store := newDictionary(ctx, conf, rc)
	stats, err := batch.ConvertFile(vertPath, conf.Batch, newConverter(conf, store), os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("batch conversion failed")
		return
	}
	log.Info().
		Int("numSentences", stats.NumSentences).
		Int("numTokens", stats.NumTokens).
		Int("numDictHits", stats.NumDictHits).
		Msg("batch conversion done")
}

func main() {
	version := general.NewVersionInfo(version, buildDate, gitCommit)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "VSL-NLP - Vietnamese to sign language gloss conversion\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t%s [options] server [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] worker [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] batch [config.json] [file.vert]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] test [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] version\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("vsl-nlp %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return
	}
	conf, err := cnf.LoadConfig(flag.Arg(1))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
		return
	}

	switch action {
	case "worker":
		var wPath string
		if conf.LogFile != "" {
			wPath = filepath.Join(filepath.Dir(conf.LogFile), "worker.log")
		}
		logging.SetupLogging(wPath, conf.LogLevel)
		log.Logger = log.Logger.With().Str("worker", getWorkerID()).Logger()
	case "test":
		cnf.ValidateAndDefaults(conf)
		log.Info().Msg("config OK")
		return
	default:
		logging.SetupLogging(conf.LogFile, conf.LogLevel)
	}

	log.Info().Str("version", version.Version).Msg("Starting VSL-NLP")
	cnf.ValidateAndDefaults(conf)

	switch action {
	case "server":
		runApiServer(conf, version)
	case "worker":
		if !conf.UsesRedis() {
			log.Fatal().Msg("worker mode requires the `redis` configuration section")
			return
		}
		runWorker(conf)
	case "batch":
		runBatch(conf, flag.Arg(2))
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
