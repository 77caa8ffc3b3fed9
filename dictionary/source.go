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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSourceNotFound = errors.New("dictionary source not found")
)

// Source provides raw dictionary entries. Implementations
// should respect ctx for any I/O they perform.
type Source interface {
	Load(ctx context.Context) ([]Entry, error)
	String() string
}

// ----------------------------------

type FileSource struct {
	Path string
}

func (src FileSource) Load(ctx context.Context) ([]Entry, error) {
	isFile, err := fs.IsFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to check dictionary file %s: %w", src.Path, err)
	}
	if !isFile {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src.Path)
	}
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file: %w", err)
	}
	defer f.Close()
	return ParseEntries(f, src.Path)
}

func (src FileSource) String() string {
	return fmt.Sprintf("file:%s", src.Path)
}

// ----------------------------------

// RedisSource reads entries from a Redis hash (field = word, value = gloss)
type RedisSource struct {
	Client *redis.Client
	Key    string
}

func (src RedisSource) Load(ctx context.Context) ([]Entry, error) {
	exists, err := src.Client.Exists(ctx, src.Key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary from Redis: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: redis key %s", ErrSourceNotFound, src.Key)
	}
	data, err := src.Client.HGetAll(ctx, src.Key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary from Redis: %w", err)
	}
	ans := make([]Entry, 0, len(data))
	for k, v := range data {
		ans = append(ans, Entry{Word: k, Gloss: v})
	}
	return ans, nil
}

func (src RedisSource) String() string {
	return fmt.Sprintf("redis:%s", src.Key)
}

// ----------------------------------

// SQLSource reads entries from a two-column (word, gloss) table
type SQLSource struct {
	DB    *sql.DB
	Table string
}

func (src SQLSource) Load(ctx context.Context) ([]Entry, error) {
	rows, err := src.DB.QueryContext(
		ctx,
		fmt.Sprintf("SELECT word, gloss FROM %s", src.Table),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary from database: %w", err)
	}
	defer rows.Close()
	ans := make([]Entry, 0, 1000)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Word, &entry.Gloss); err != nil {
			return nil, fmt.Errorf("failed to load dictionary from database: %w", err)
		}
		ans = append(ans, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load dictionary from database: %w", err)
	}
	return ans, nil
}

func (src SQLSource) String() string {
	return fmt.Sprintf("mysql:%s", src.Table)
}

// OpenDB opens a MySQL connection pool for SQLSource
func OpenDB(conf *DBConf) (*sql.DB, error) {
	mconf := mysql.NewConfig()
	mconf.Net = "tcp"
	mconf.Addr = conf.Host
	mconf.User = conf.User
	mconf.Passwd = conf.Password
	mconf.DBName = conf.Name
	mconf.ParseTime = true
	mconf.Loc = time.Local
	mconf.Params = map[string]string{"autocommit": "true"}
	db, err := sql.Open("mysql", mconf.FormatDSN())
	if err != nil {
		return nil, err
	}
	return db, nil
}

// NewSource creates a source based on configuration. The Redis client
// is required only for the `redis` source type.
func NewSource(conf *Conf, rc *redis.Client) (Source, error) {
	switch conf.SourceType {
	case SourceTypeFile:
		return FileSource{Path: conf.FilePath}, nil
	case SourceTypeRedis:
		if rc == nil {
			return nil, errors.New("dictionary source `redis` requires configured Redis connection")
		}
		return RedisSource{Client: rc, Key: conf.RedisKey}, nil
	case SourceTypeMySQL:
		db, err := OpenDB(conf.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to open dictionary database: %w", err)
		}
		return SQLSource{DB: db, Table: conf.DB.Table}, nil
	case SourceTypeSeed:
		return SeedSource{}, nil
	default:
		return nil, fmt.Errorf("unknown dictionary source type %s", conf.SourceType)
	}
}
