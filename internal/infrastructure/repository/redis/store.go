// Package redis stores games in a hash keyed by game id plus a list that keeps insertion
// order. Teams are one JSON document.
package redis

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/roster"
	"github.com/riskibarqy/court-sense/internal/infrastructure/repository/document"
)

const maxWatchRetries = 5

type Store struct {
	client   goredis.UniversalClient
	gamesKey string
	orderKey string
	teamsKey string
}

func New(client goredis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "court-sense"
	}
	return &Store{
		client:   client,
		gamesKey: fmt.Sprintf("%s:games", prefix),
		orderKey: fmt.Sprintf("%s:games:order", prefix),
		teamsKey: fmt.Sprintf("%s:teams", prefix),
	}
}

// Open parses a redis URL and verifies the connection.
func Open(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return client, nil
}

func (s *Store) LoadGames(ctx context.Context) ([]game.Game, error) {
	var (
		orderCmd *goredis.StringSliceCmd
		docsCmd  *goredis.MapStringStringCmd
	)
	_, err := s.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		orderCmd = pipe.LRange(ctx, s.orderKey, 0, -1)
		docsCmd = pipe.HGetAll(ctx, s.gamesKey)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "load games")
	}

	docs := docsCmd.Val()
	out := make([]game.Game, 0, len(docs))
	for _, id := range orderCmd.Val() {
		raw, ok := docs[id]
		if !ok {
			continue
		}
		g, err := document.DecodeGame([]byte(raw))
		if err != nil {
			return nil, errors.Wrapf(err, "game %s", id)
		}
		out = append(out, g)
	}
	return out, nil
}

// SaveGames replaces every stored game in one transaction.
func (s *Store) SaveGames(ctx context.Context, games []game.Game) error {
	fields := make([]any, 0, len(games)*2)
	ids := make([]any, 0, len(games))
	for _, g := range games {
		raw, err := document.EncodeGame(g)
		if err != nil {
			return err
		}
		fields = append(fields, g.ID, raw)
		ids = append(ids, g.ID)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, s.gamesKey, s.orderKey)
		if len(ids) > 0 {
			pipe.HSet(ctx, s.gamesKey, fields...)
			pipe.RPush(ctx, s.orderKey, ids...)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "save games")
	}
	return nil
}

func (s *Store) GetGame(ctx context.Context, id string) (game.Game, bool, error) {
	raw, err := s.client.HGet(ctx, s.gamesKey, id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return game.Game{}, false, nil
	}
	if err != nil {
		return game.Game{}, false, errors.Wrapf(err, "get game %s", id)
	}

	g, err := document.DecodeGame(raw)
	if err != nil {
		return game.Game{}, false, errors.Wrapf(err, "game %s", id)
	}
	return g, true, nil
}

// SaveGame upserts one game. A new id is appended to the order list in the same
// transaction, retried when another writer touches the hash first.
func (s *Store) SaveGame(ctx context.Context, g game.Game) error {
	raw, err := document.EncodeGame(g)
	if err != nil {
		return err
	}

	upsert := func(tx *goredis.Tx) error {
		exists, err := tx.HExists(ctx, s.gamesKey, g.ID).Result()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, s.gamesKey, g.ID, raw)
			if !exists {
				pipe.RPush(ctx, s.orderKey, g.ID)
			}
			return nil
		})
		return err
	}

	for range maxWatchRetries {
		err = s.client.Watch(ctx, upsert, s.gamesKey)
		if !errors.Is(err, goredis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return errors.Wrapf(err, "save game %s", g.ID)
	}
	return nil
}

func (s *Store) DeleteGame(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HDel(ctx, s.gamesKey, id)
		pipe.LRem(ctx, s.orderKey, 0, id)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "delete game %s", id)
	}
	return nil
}

func (s *Store) LoadTeams(ctx context.Context) ([]roster.Team, error) {
	raw, err := s.client.Get(ctx, s.teamsKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []roster.Team{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "load teams")
	}

	var records []document.TeamRecord
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrap(err, "decode teams")
	}
	out := make([]roster.Team, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Team())
	}
	return out, nil
}

func (s *Store) SaveTeams(ctx context.Context, teams []roster.Team) error {
	raw, err := sonic.Marshal(document.TeamRecords(teams))
	if err != nil {
		return errors.Wrap(err, "encode teams")
	}
	if err := s.client.Set(ctx, s.teamsKey, raw, 0).Err(); err != nil {
		return errors.Wrap(err, "save teams")
	}
	return nil
}
