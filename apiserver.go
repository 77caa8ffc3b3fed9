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
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"
	"vslnlp/cnf"
	"vslnlp/dictionary"
	"vslnlp/general"
	"vslnlp/handlers"
	"vslnlp/monitoring"
	monitoringActions "vslnlp/monitoring/handlers"
	"vslnlp/openapi"
	"vslnlp/rdb"
	"vslnlp/tagger"
	"vslnlp/worker"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	localWorkerID = "local"
)

type apiServer struct {
	server      *http.Server
	conf        *cnf.Conf
	version     general.VersionInfo
	store       *dictionary.Store
	publisher   handlers.QueryPublisher
	broadcaster handlers.ReloadBroadcaster
	tagger      *tagger.Client
	jobLogger   *monitoring.WorkerJobLogger
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	protected := engine.Group("/tools").Use(AuthRequired(api.conf))

	actions := handlers.NewActions(
		api.store, api.publisher, api.broadcaster, api.tagger, api.version)

	engine.GET("/", actions.ServerInfo)

	docsURL := api.conf.PublicURL
	if api.conf.APIDocsURLPath != "" {
		var err error
		docsURL, err = url.JoinPath(api.conf.PublicURL, api.conf.APIDocsURLPath)
		if err != nil {
			log.Error().Err(err).Msg("invalid apiDocsUrlPath, using publicUrl for API docs")
			docsURL = api.conf.PublicURL
		}
	}
	openapi.RegisterSwaggerDoc(api.version.Version, docsURL)
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/openapi", openapi.MkHandleRequest(api.conf, api.version.Version))

	engine.POST(
		"/convert-sign-language", actions.ConvertText)

	engine.POST(
		"/convert", actions.Convert)

	engine.POST(
		"/analyze", actions.Analyze)

	engine.GET(
		"/sign-dictionary-info", actions.DictionaryInfo)

	engine.GET(
		"/health", actions.Health)

	engine.GET(
		"/examples", actions.Examples)

	protected.POST(
		"/reload-dictionary", actions.ReloadDictionary)

	monitorActions := monitoringActions.NewActions(api.jobLogger, api.conf.TimezoneLocation())

	engine.GET(
		"/monitoring/workers-load", monitorActions.WorkersLoad)

	engine.GET(
		"/monitoring/workers-load/:workerId", monitorActions.SingleWorkerLoad)

	engine.GET(
		"/monitoring/jobs", monitorActions.Jobs)

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down VSL-NLP HTTP API server")
	return api.server.Shutdown(ctx)
}

func runApiServer(conf *cnf.Conf, version general.VersionInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statusWriter, tsService := newStatusWriter(ctx, conf)
	jobLogger := monitoring.NewWorkerJobLogger(statusWriter, conf.TimezoneLocation())
	services := []service{jobLogger}
	if tsService != nil {
		services = append(services, tsService)
	}

	var rc *redis.Client
	var radapter *rdb.Adapter
	if conf.UsesRedis() {
		radapter = rdb.NewAdapter(conf.Redis, ctx)
		if err := radapter.TestConnection(redisConnectionTestTimeout); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
			return
		}
		rc = radapter.Client()
	}

	store := newDictionary(ctx, conf, rc)
	taggerClient := tagger.NewClient(conf.Tagger)
	if !taggerClient.IsConfigured() {
		log.Warn().Msg("tagger URL not configured, text endpoints will respond with 503")
	}

	server := &apiServer{
		conf:      conf,
		version:   version,
		store:     store,
		tagger:    taggerClient,
		jobLogger: jobLogger,
	}
	if radapter != nil {
		server.publisher = monitoring.NewMonitoredPublisher(radapter, jobLogger)
		server.broadcaster = radapter
		log.Info().Str("server", conf.Redis.ServerInfo()).Msg("jobs will be processed by remote workers")

	} else {
		executor := worker.NewExecutor(newConverter(conf, store), taggerClient, conf.JobTimeout())
		server.publisher = worker.NewLocalRunner(
			ctx, localWorkerID, executor, jobLogger, conf.MaxNumConcurrentJobs)
		log.Info().
			Int("maxNumConcurrentJobs", conf.MaxNumConcurrentJobs).
			Msg("Redis not configured, jobs will be processed locally")
	}

	services = append(services, server)
	runServices(ctx, services)
	if radapter != nil {
		if err := radapter.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis connection")
		}
	}
}
