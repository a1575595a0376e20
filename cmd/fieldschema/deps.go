package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Gobd/fieldschema"
	"github.com/Gobd/fieldschema/classifier"
	"github.com/Gobd/fieldschema/internal/config"
	"github.com/Gobd/fieldschema/s3file"
	"github.com/Gobd/fieldschema/store"
	"github.com/Gobd/fieldschema/store/gormstore"
	"github.com/Gobd/fieldschema/store/mongostore"
	"github.com/Gobd/fieldschema/store/osstore"
	"github.com/Gobd/fieldschema/store/pgstore"
	"github.com/redis/go-redis/v9"
)

// dependencies connects the store, classifier and S3 describer selected by
// the configuration. The caller must close the result.
func (a *app) dependencies(ctx context.Context) (*deps, error) {
	d := &deps{eval: []fieldschema.EvalOption{fieldschema.WithCallTimeout(a.cfg.CallTimeout)}}

	st, err := a.openStore(ctx, d)
	if err != nil {
		d.close()
		return nil, err
	}
	if st != nil {
		d.eval = append(d.eval, fieldschema.WithStore(st))
	}

	cl, err := a.openClassifier(ctx)
	if err != nil {
		d.close()
		return nil, err
	}
	if cl != nil {
		d.eval = append(d.eval, fieldschema.WithClassifier(cl))
	}

	if len(a.cfg.S3Fields) > 0 {
		s3cfg, err := config.Load[s3file.Config]()
		if err != nil {
			d.close()
			return nil, err
		}
		client, err := s3file.NewClient(ctx, s3cfg)
		if err != nil {
			d.close()
			return nil, err
		}
		desc := s3file.New(client, s3cfg.Bucket, s3file.WithLogger(a.log))
		d.extra = append(d.extra, desc.Normalizer(a.cfg.S3Fields...))
	}
	return d, nil
}

func (a *app) openStore(ctx context.Context, d *deps) (fieldschema.Store, error) {
	var st fieldschema.Store
	switch a.cfg.Store {
	case "none":
		return nil, nil
	case "postgres":
		cfg, err := config.Load[pgstore.Config]()
		if err != nil {
			return nil, err
		}
		pool, err := pgstore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, pool.Close)
		st = pgstore.New(pool, pgstore.FromConfig(cfg)...)
	case "mongo":
		cfg, err := config.Load[mongostore.Config]()
		if err != nil {
			return nil, err
		}
		db, err := mongostore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = db.Client().Disconnect(context.Background()) })
		st = mongostore.New(db)
	case "gorm":
		cfg, err := config.Load[gormstore.Config]()
		if err != nil {
			return nil, err
		}
		db, err := gormstore.Open(cfg)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			d.closers = append(d.closers, func() { _ = sqlDB.Close() })
		}
		st = gormstore.New(db, cfg.IDColumn)
	case "opensearch":
		cfg, err := config.Load[osstore.Config]()
		if err != nil {
			return nil, err
		}
		client, err := osstore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		st = osstore.New(client, cfg.IDField)
	default:
		return nil, fmt.Errorf("unknown store %q", a.cfg.Store)
	}

	if a.cfg.RedisURL == "" {
		return st, nil
	}
	opt, err := redis.ParseURL(a.cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	d.closers = append(d.closers, func() { _ = rdb.Close() })
	a.log.DebugContext(ctx, "caching declared types in redis", slog.Duration("ttl", a.cfg.TypeTTL))
	return store.NewTypeCache(st, rdb, store.WithTTL(a.cfg.TypeTTL), store.WithLogger(a.log)), nil
}

func (a *app) openClassifier(ctx context.Context) (fieldschema.Classifier, error) {
	switch a.cfg.Classifier {
	case "none":
		return nil, nil
	case "openai":
		var opts []classifier.OpenAIOption
		if a.cfg.OpenAIModel != "" {
			opts = append(opts, classifier.WithOpenAIModel(a.cfg.OpenAIModel))
		}
		return classifier.NewOpenAI(a.cfg.OpenAIKey, opts...)
	case "google":
		var opts []classifier.GoogleOption
		if a.cfg.GoogleModel != "" {
			opts = append(opts, classifier.WithGoogleModel(a.cfg.GoogleModel))
		}
		return classifier.NewGoogle(ctx, a.cfg.GoogleKey, opts...)
	}
	return nil, fmt.Errorf("unknown classifier %q", a.cfg.Classifier)
}
