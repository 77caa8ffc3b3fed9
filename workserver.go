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
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"vslnlp/cnf"
	"vslnlp/monitoring"
	"vslnlp/rdb"
	"vslnlp/tagger"
	"vslnlp/worker"

	"github.com/rs/zerolog/log"
)

func getWorkerID() (workerID string) {
	workerID = getEnv("WORKER_ID")
	if workerID == "" {
		workerID = strconv.Itoa(os.Getpid())
	}
	return
}

func runWorker(conf *cnf.Conf) {
	workerID := getWorkerID()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	radapter := rdb.NewAdapter(conf.Redis, ctx)
	err := radapter.TestConnection(redisConnectionTestTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	statusWriter, tsService := newStatusWriter(ctx, conf)
	jobLogger := monitoring.NewWorkerJobLogger(statusWriter, conf.TimezoneLocation())

	store := newDictionary(ctx, conf, radapter.Client())
	executor := worker.NewExecutor(
		newConverter(conf, store), tagger.NewClient(conf.Tagger), conf.JobTimeout())

	ch := radapter.Subscribe()
	wrk := worker.NewWorker(workerID, radapter, ch, executor, store, jobLogger)

	services := []service{jobLogger, wrk}
	if tsService != nil {
		services = append(services, tsService)
	}
	runServices(ctx, services)
}
