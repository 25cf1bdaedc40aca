// Command iconseek-resolve resolves icons for site URLs given on the command line
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"iconseek/internal/platform/config"
	"iconseek/internal/platform/logger"

	"iconseek/internal/services/resolve/domain"
	resolvemod "iconseek/internal/services/resolve/module"
	resolvesvc "iconseek/internal/services/resolve/service"
)

func main() {
	size := flag.Int("size", 0, "preferred icon size in px (overrides RESOLVER_ICON_SIZE)")
	timeout := flag.Duration("timeout", time.Minute, "overall budget per URL")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: iconseek-resolve [-size N] [-timeout D] URL [URL...]")
		os.Exit(2)
	}

	l := logger.Get()

	opts := resolvemod.FromConfig(config.New())
	if *size > 0 {
		opts.IconSize = *size
	}
	svc := resolvesvc.New(opts.ResolverConfig())

	for _, raw := range flag.Args() {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		res, err := svc.Resolve(ctx, domain.ResolveInput{URL: raw})
		cancel()
		if err != nil {
			l.Error().Err(err).Str("url", raw).Msg("resolution failed")
			continue
		}
		fmt.Printf("%s -> %s (%s, %d probes, %dms)\n",
			res.URL, res.IconURL, res.Source, res.Probes, res.ElapsedMs)
	}
}
