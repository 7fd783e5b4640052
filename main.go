// Command tally demonstrates the live progress engine. With URL arguments it
// downloads them concurrently under a live multi-task display; with no
// arguments it runs a simulated workload.
package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/pkg/columns"
	"tally/pkg/progress"
	"tally/pkg/transfer"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return simulate()
	}
	return download(ctx, args)
}

func download(ctx context.Context, urls []string) error {
	session, err := progress.New(
		progress.WithColumns(
			columns.Description(30),
			columns.Bar(40),
			columns.Percentage(),
			columns.DownloadSize(),
			columns.TransferSpeed(),
			columns.Remaining(),
		),
	)
	if err != nil {
		return err
	}

	client := transfer.NewClient()
	return session.Run(func() error {
		g, ctx := errgroup.WithContext(ctx)
		for _, url := range urls {
			url := url
			g.Go(func() error {
				name := path.Base(url)
				f, err := os.Create(name)
				if err != nil {
					return err
				}
				defer f.Close()
				return client.Fetch(ctx, session, name, url, f)
			})
		}
		return g.Wait()
	})
}

func simulate() error {
	session, err := progress.New(
		progress.WithColumns(
			columns.Spinner(),
			columns.Description(0),
			columns.Bar(40),
			columns.Percentage(),
			columns.Elapsed(),
			columns.Remaining(),
		),
	)
	if err != nil {
		return err
	}

	type job struct {
		name  string
		total float64
		step  float64
		every time.Duration
	}
	jobs := []job{
		{"Downloading", 1000, 7, 23 * time.Millisecond},
		{"Processing", 400, 1, 11 * time.Millisecond},
		{"Cooking", 250, 2, 41 * time.Millisecond},
	}

	return session.Run(func() error {
		g := new(errgroup.Group)
		for _, j := range jobs {
			j := j
			g.Go(func() error {
				id := session.Add(j.name, progress.WithTotal(j.total))
				for done := 0.0; done < j.total; done += j.step {
					time.Sleep(j.every)
					if err := session.Advance(id, j.step); err != nil {
						return err
					}
				}
				return nil
			})
		}
		return g.Wait()
	})
}
