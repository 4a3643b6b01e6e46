// MIT License

// Copyright (c) 2023 wetrycode

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	rf "github.com/wetrycode/resourcefeed"
	"github.com/wetrycode/resourcefeed/providers"
)

var logger = rf.GetLogger("command")

const (
	sinkAPI   = "api"
	sinkRedis = "redis"
)

// crawlFlags flags of the crawl command
type crawlFlags struct {
	submit        bool
	sink          string
	rejectPolicy  string
	failurePolicy string
	report        string
}

// NewRootCmd command tree reading settings through config and files through fs
func NewRootCmd(config *rf.Configuration, fs afero.Fs) *cobra.Command {
	var configPath string
	rootCmd := &cobra.Command{
		Use:          "resourcefeed",
		Short:        "resourcefeed crawls provider feeds into the resource api",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			config.SetFs(fs)
			if configPath != "" {
				if err := config.LoadFile(configPath); err != nil {
					return err
				}
			}
			return rf.SetLogLevel(config.GetString("log.level"))
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file, default ./settings.yaml")
	rootCmd.AddCommand(newCrawlCmd(config, fs), newProvidersCmd(config, fs))
	return rootCmd
}

func newCrawlCmd(config *rf.Configuration, fs afero.Fs) *cobra.Command {
	flags := &crawlFlags{}
	crawlCmd := &cobra.Command{
		Use:   "crawl providerName",
		Short: "Crawl the feed of a provider, dry run unless --submit is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Infof("准备启动%s", args[0])
			return runCrawl(cmd, config, fs, flags, args[0])
		},
	}
	crawlCmd.Flags().BoolVar(&flags.submit, "submit", false, "submit accepted resources instead of logging them")
	crawlCmd.Flags().StringVar(&flags.sink, "sink", sinkAPI, "sink receiving submitted resources: api or redis")
	crawlCmd.Flags().StringVar(&flags.rejectPolicy, "reject-policy", "", "drop or log rejected resources")
	crawlCmd.Flags().StringVar(&flags.failurePolicy, "failure-policy", "", "abort or continue on submission failures")
	crawlCmd.Flags().StringVar(&flags.report, "report", "", "write dry run resources to this file as json lines")
	return crawlCmd
}

func newProvidersCmd(config *rf.Configuration, fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the configured providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := loadProviders(config, fs)
			if err != nil {
				return err
			}
			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func loadProviders(config *rf.Configuration, fs afero.Fs) (*rf.Providers, error) {
	settings, err := config.ProviderSettings()
	if err != nil {
		return nil, fmt.Errorf("decode providers: %w", err)
	}
	downloader := rf.NewDownloader(rf.DownloadWithTimeout(config.GetDuration("feed.timeout")))
	registry := rf.NewProviders()
	if err := providers.Load(registry, settings, fs, downloader); err != nil {
		return nil, err
	}
	return registry, nil
}

func newSink(config *rf.Configuration, kind string) (rf.TargetSink, error) {
	switch kind {
	case sinkAPI:
		api := config.APISettings()
		if api.URL == "" {
			return nil, fmt.Errorf("api.url is not set")
		}
		return rf.NewResourceAPI(api.URL,
			rf.ResourceAPIWithToken(api.Token),
			rf.ResourceAPIWithDownloader(rf.NewDownloader(rf.DownloadWithTimeout(api.Timeout))),
			rf.ResourceAPIWithLimiter(rf.NewDefaultLimiter(api.Rate)),
		), nil
	case sinkRedis:
		redisConfig := config.RedisSettings()
		rdb, err := rf.NewRdbClient(redisConfig)
		if err != nil {
			return nil, err
		}
		return rf.NewRedisSink(rdb, redisConfig.Key, nil), nil
	}
	return nil, fmt.Errorf("unknown sink %q", kind)
}

func runCrawl(cmd *cobra.Command, config *rf.Configuration, fs afero.Fs, flags *crawlFlags, name string) error {
	registry, err := loadProviders(config, fs)
	if err != nil {
		return err
	}
	provider, err := registry.GetProvider(name)
	if err != nil {
		return err
	}

	settings := config.CrawlerSettings()
	dryRun := settings.DryRun && !flags.submit
	if flags.rejectPolicy != "" {
		settings.RejectPolicy = flags.rejectPolicy
	}
	if flags.failurePolicy != "" {
		settings.FailurePolicy = flags.failurePolicy
	}
	rejectPolicy, err := rf.ParseRejectPolicy(settings.RejectPolicy)
	if err != nil {
		return err
	}
	failurePolicy, err := rf.ParseFailurePolicy(settings.FailurePolicy)
	if err != nil {
		return err
	}

	opts := []rf.CrawlerOption{
		rf.CrawlerWithDryRun(dryRun),
		rf.CrawlerWithRejectPolicy(rejectPolicy),
		rf.CrawlerWithFailurePolicy(failurePolicy),
	}
	var sink rf.TargetSink
	if dryRun {
		// dry runs never write, the sink is not connected
		if flags.sink != sinkAPI && flags.sink != sinkRedis {
			return fmt.Errorf("unknown sink %q", flags.sink)
		}
		opts = append(opts, rf.CrawlerWithValidator(rf.NewDefaultValidator()))
	} else if sink, err = newSink(config, flags.sink); err != nil {
		return err
	}
	if flags.report != "" {
		file, err := fs.Create(flags.report)
		if err != nil {
			return err
		}
		defer file.Close()
		opts = append(opts, rf.CrawlerWithReportWriter(file))
	}

	report, err := rf.NewCrawler(provider, sink, opts...).Run(cmd.Context())
	if report != nil {
		writeReport(cmd.OutOrStdout(), report)
	}
	return err
}

func writeReport(w io.Writer, report *rf.RunReport) {
	data, err := jsoniter.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Errorf("encode report error %s", err.Error())
		return
	}
	fmt.Fprintln(w, string(data))
}

// Execute runs the command line with the global settings
func Execute() {
	rootCmd := NewRootCmd(rf.Config, afero.NewOsFs())
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
