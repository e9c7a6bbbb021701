package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/gemledger-lab/gemledger/pkg/cli/config"
	httpctrl "github.com/gemledger-lab/gemledger/pkg/controller/http"
	"github.com/gemledger-lab/gemledger/pkg/usecase"
	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var authnCfg config.Authn
	var storageCfg config.Storage
	var openaiCfg config.OpenAI

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("GEMLEDGER_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authnCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, openaiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			verifier, err := authnCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			var ucOpts []usecase.Option

			store, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure storage")
			}
			if store != nil {
				ucOpts = append(ucOpts, usecase.WithBlobStore(store))
				logging.Default().Info("Blob storage enabled")
			} else {
				logging.Default().Info("Storage disabled, upload and signed URL endpoints will reject requests")
			}

			llmClient, err := openaiCfg.ConfigureLLM(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM client")
			}
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithLLMClient(llmClient))
				logging.Default().Info("Chat assistant enabled")
			} else {
				logging.Default().Info("OpenAI API key not configured, chat assistant disabled")
			}

			transcriber, err := openaiCfg.ConfigureTranscriber()
			if err != nil {
				return goerr.Wrap(err, "failed to configure transcriber")
			}
			if transcriber != nil {
				ucOpts = append(ucOpts, usecase.WithTranscriber(transcriber))
				logging.Default().Info("Voice transcription enabled")
			}

			extractor, err := openaiCfg.ConfigureBillExtractor()
			if err != nil {
				return goerr.Wrap(err, "failed to configure bill extractor")
			}
			if extractor != nil {
				ucOpts = append(ucOpts, usecase.WithBillExtractor(extractor))
				logging.Default().Info("Bill extraction enabled")
			}

			uc := usecase.New(repo, ucOpts...)
			srv := httpctrl.New(uc, verifier)

			server := &http.Server{
				Addr:              addr,
				Handler:           srv,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
