// Command send submits a single SMS through Zenvia and prints the result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/oggyb/zenvia-sms/internal/config"
	"github.com/oggyb/zenvia-sms/internal/logger"
	"github.com/oggyb/zenvia-sms/pkg/sms"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Printf("[Send] %v", err)
		os.Exit(1)
	}
}

// run prints the SendResult JSON on out; logs and traces go to errOut only.
func run(args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)

	var msg sms.Message
	fs.StringVar(&msg.To, "to", "", "recipient with country and area codes")
	fs.StringVar(&msg.From, "from", "", "sender label")
	fs.StringVar(&msg.Msg, "msg", "", "message body (max 140 characters)")
	fs.StringVar(&msg.ID, "id", "", "client message id (generated when empty)")
	fs.StringVar(&msg.AggregateID, "aggregate-id", "", "opaque aggregate id")
	timeout := fs.Duration("timeout", 0, "overall deadline for the send (0 uses the HTTP client timeout)")
	verbose := fs.Bool("v", false, "trace the request on stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	lg, err := logger.New(logger.Options{
		Level:       level,
		FileName:    cfg.Log.FileName,
		Development: true,
		Console:     zapcore.Lock(zapcore.AddSync(errOut)),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	smsCfg := cfg.SMS()
	smsCfg.Log = logger.EventLogger(lg)
	smsCfg.Tracer = lg
	client := sms.NewZenviaClient(smsCfg)

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send failed after %s: %w", time.Since(start).Round(time.Millisecond), err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
