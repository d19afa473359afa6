package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterfield/pkg/cache"
	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/pipeline"
	"github.com/matzehuels/scatterfield/pkg/server"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr        string
	redisURL    string
	redisAddr   string
	mongoURI    string
	cachePrefix string
	noCache     bool
	maxInFlight int
	timeout     time.Duration
	maxBody     int64
}

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:        "127.0.0.1:8080",
		redisAddr:   os.Getenv(envRedisAddr),
		mongoURI:    os.Getenv(envMongoURI),
		maxInFlight: server.DefaultMaxInFlight,
		timeout:     server.DefaultTimeout,
		maxBody:     server.DefaultMaxBodyBytes,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement API over HTTP",
		Long: `Serve the placement API over HTTP. Scenes are cached in Redis when
--redis-url or --redis-addr (or ` + envRedisAddr + `) is set, in MongoDB when
--mongo-uri (or ` + envMongoURI + `) is set, and in the local file cache
otherwise.`,
		Example: `  scatterfield serve --addr :8080
  ` + envRedisAddr + `=localhost:6379 scatterfield serve --cache-prefix staging`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL, e.g. redis://:secret@localhost:6379/0")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "Redis host:port (env "+envRedisAddr+")")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB URI (env "+envMongoURI+")")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", "", "namespace for cache keys")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&opts.maxInFlight, "max-in-flight", opts.maxInFlight, "concurrent generation requests")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request deadline")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "request body limit in bytes")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()

	backend, err := c.serverCache(cmd, opts)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if opts.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), opts.cachePrefix)
	}
	runner := pipeline.NewRunner(cache.Instrument(backend), keyer, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger, server.Options{
		MaxBodyBytes: opts.maxBody,
		MaxInFlight:  opts.maxInFlight,
		Timeout:      opts.timeout,
	})
	printInfo(cmd.OutOrStdout(), "Serving on http://%s", opts.addr)
	return srv.ListenAndServe(ctx, opts.addr)
}

// serverCache picks the cache backend: Redis or MongoDB when configured, the
// file cache otherwise.
func (c *CLI) serverCache(cmd *cobra.Command, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	useRedis := opts.redisURL != "" || opts.redisAddr != ""
	if useRedis && opts.mongoURI != "" {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "choose either Redis or MongoDB, not both")
	}
	if opts.mongoURI != "" {
		return c.mongoCache(cmd, opts.mongoURI)
	}
	if !useRedis {
		return newCache(false)
	}

	spinner := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Connecting to Redis...")
	spinner.Start()
	rc, err := cache.NewRedisCache(cmd.Context(), cache.RedisOptions{
		URL:  opts.redisURL,
		Addr: opts.redisAddr,
	})
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache", "addr", opts.redisAddr, "url", opts.redisURL != "")
	return rc, nil
}

func (c *CLI) mongoCache(cmd *cobra.Command, uri string) (cache.Cache, error) {
	spinner := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Connecting to MongoDB...")
	spinner.Start()
	mc, err := cache.NewMongoCache(cmd.Context(), cache.MongoOptions{URI: uri})
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using mongo cache", "database", cache.DefaultMongoDatabase)
	return mc, nil
}
